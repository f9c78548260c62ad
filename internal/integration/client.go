// Package integration talks to the upstream posts/comments API and turns
// every failure into a normalized *Error.
package integration

import (
	"context"
	"fmt"

	"github.com/JonnyWalker81/audition/backend/internal/logger"
	"github.com/JonnyWalker81/audition/backend/internal/models"
	"github.com/JonnyWalker81/audition/backend/pkg/jsonplaceholder"
)

// Upstream URI templates
const (
	pathPosts          = "/posts"
	pathPost           = "/posts/{id}"
	pathPostsByUser    = "/posts{?userId}"
	pathPostComments   = "/posts/{postId}/comments"
	pathCommentsByPost = "/comments{?postId}"
)

// Getter is the transport used by Client. *jsonplaceholder.Client satisfies it.
type Getter interface {
	Get(ctx context.Context, template string, vars jsonplaceholder.Vars, out any) (*jsonplaceholder.Response, error)
}

// Client performs one upstream GET per operation. It holds no mutable state
// and is safe for concurrent use.
type Client struct {
	api         Getter
	serviceName string
	log         logger.Logger
}

// Option configures a Client
type Option func(*Client)

// WithServiceName overrides the upstream name used in error titles
func WithServiceName(name string) Option {
	return func(c *Client) {
		if name != "" {
			c.serviceName = name
		}
	}
}

// WithLogger sets the logger used when the request context carries none
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// NewClient creates a new integration client
func NewClient(api Getter, opts ...Option) *Client {
	c := &Client{
		api:         api,
		serviceName: DefaultServiceName,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ServiceName returns the upstream name used in error titles
func (c *Client) ServiceName() string {
	return c.serviceName
}

// ListPosts fetches every post
func (c *Client) ListPosts(ctx context.Context) ([]models.Post, error) {
	return fetch[[]models.Post](ctx, c, pathPosts, nil, "posts")
}

// GetPost fetches a single post. A 404 or an empty body fails with a 404 Error.
func (c *Client) GetPost(ctx context.Context, id int) (models.Post, error) {
	return fetch[models.Post](ctx, c, pathPost,
		jsonplaceholder.Vars{"id": id},
		fmt.Sprintf("post with id %d", id))
}

// ListPostsByUser fetches the posts written by userID
func (c *Client) ListPostsByUser(ctx context.Context, userID int) ([]models.Post, error) {
	return fetch[[]models.Post](ctx, c, pathPostsByUser,
		jsonplaceholder.Vars{"userId": userID},
		fmt.Sprintf("posts for user id %d", userID))
}

// ListCommentsByPost fetches the comments of postID
func (c *Client) ListCommentsByPost(ctx context.Context, postID int) ([]models.Comment, error) {
	return fetch[[]models.Comment](ctx, c, pathCommentsByPost,
		jsonplaceholder.Vars{"postId": postID},
		fmt.Sprintf("comments for post id %d", postID))
}

// GetPostWithComments fetches a post, then its comments, and attaches them.
// The calls run sequentially; if either fails no post is returned.
func (c *Client) GetPostWithComments(ctx context.Context, postID int) (models.Post, error) {
	c.logger(ctx).Debug("fetching post with comments", logger.Int("post_id", postID))

	post, err := c.GetPost(ctx, postID)
	if err != nil {
		return models.Post{}, err
	}

	comments, err := fetch[[]models.Comment](ctx, c, pathPostComments,
		jsonplaceholder.Vars{"postId": postID},
		fmt.Sprintf("comments for post id %d", postID))
	if err != nil {
		return models.Post{}, err
	}

	return post.WithComments(comments), nil
}

func fetch[T any](ctx context.Context, c *Client, template string, vars jsonplaceholder.Vars, resource string) (T, error) {
	var out T
	log := c.logger(ctx).With(logger.String("resource", resource))
	log.Debug("fetching from upstream",
		logger.String("service", c.serviceName),
		logger.String("template", template),
	)

	resp, err := c.api.Get(ctx, template, vars, &out)
	outcome := Outcome{Response: resp, Err: err}

	if nerr := classify(outcome, c.serviceName, resource); nerr != nil {
		fields := []logger.Field{
			logger.String("kind", string(nerr.Kind)),
			logger.String("rule", ruleFor(outcome)),
			logger.Int("status", nerr.StatusCode),
			logger.String("title", nerr.Title),
			logger.String("message", nerr.Message),
		}
		if nerr.Cause != nil {
			fields = append(fields, logger.Err(nerr.Cause))
		}
		if nerr.Kind == KindResourceMissing {
			log.Warn("upstream returned success without data", fields...)
		} else {
			log.Error("upstream call failed", fields...)
		}

		var zero T
		return zero, nerr
	}

	log.Debug("fetched from upstream", logger.Int("status", resp.StatusCode))
	return out, nil
}

func (c *Client) logger(ctx context.Context) logger.Logger {
	if c.log != nil {
		return c.log.WithContext(ctx)
	}
	return logger.Ctx(ctx)
}
