package models

import (
	"github.com/goccy/go-json"
)

// Comment represents a single comment on a post as served by the upstream API
type Comment struct {
	ID     int    `json:"id"`
	PostID int    `json:"postId"`
	Name   string `json:"name,omitempty"`
	Email  string `json:"email,omitempty"`
	Body   string `json:"body,omitempty"`
}

// Post represents a post as served by the upstream API. Comments are only
// populated when a post is composed with its comments.
type Post struct {
	UserID int    `json:"userId"`
	ID     int    `json:"id"`
	Title  string `json:"title,omitempty"`
	Body   string `json:"body,omitempty"`

	comments []Comment
}

// Comments returns a copy of the post's comments. It is never nil.
func (p Post) Comments() []Comment {
	out := make([]Comment, len(p.comments))
	copy(out, p.comments)
	return out
}

// WithComments returns a copy of p carrying a copy of comments.
func (p Post) WithComments(comments []Comment) Post {
	p.comments = make([]Comment, len(comments))
	copy(p.comments, comments)
	return p
}

// postJSON is the wire shape of Post
type postJSON struct {
	UserID   int       `json:"userId"`
	ID       int       `json:"id"`
	Title    string    `json:"title,omitempty"`
	Body     string    `json:"body,omitempty"`
	Comments []Comment `json:"comments,omitempty"`
}

// MarshalJSON implements json.Marshaler
func (p Post) MarshalJSON() ([]byte, error) {
	return json.Marshal(postJSON{
		UserID:   p.UserID,
		ID:       p.ID,
		Title:    p.Title,
		Body:     p.Body,
		Comments: p.comments,
	})
}

// UnmarshalJSON implements json.Unmarshaler
func (p *Post) UnmarshalJSON(data []byte) error {
	var raw postJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = Post{
		UserID: raw.UserID,
		ID:     raw.ID,
		Title:  raw.Title,
		Body:   raw.Body,
	}.WithComments(raw.Comments)
	return nil
}
