package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JonnyWalker81/audition/backend/internal/service"
)

type PostHandler struct {
	postService service.PostService
}

// NewPostHandler creates a new post handler
func NewPostHandler(postService service.PostService) *PostHandler {
	return &PostHandler{
		postService: postService,
	}
}

// GetPosts handles GET /posts and GET /posts?userId=
func (h *PostHandler) GetPosts(c *gin.Context) {
	raw, filtered := c.GetQuery("userId")
	if !filtered {
		posts, err := h.postService.GetPosts(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, posts)
		return
	}

	userID, ok := bindID(c, raw, "userId", labelUserID)
	if !ok {
		return
	}

	posts, err := h.postService.GetPostsByUser(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, posts)
}

// GetPost handles GET /posts/:id
func (h *PostHandler) GetPost(c *gin.Context) {
	postID, ok := bindID(c, c.Param("id"), "id", labelPostID)
	if !ok {
		return
	}

	post, err := h.postService.GetPost(c.Request.Context(), postID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// GetPostWithComments handles GET /posts/:id/comments
func (h *PostHandler) GetPostWithComments(c *gin.Context) {
	postID, ok := bindID(c, c.Param("id"), "id", labelPostID)
	if !ok {
		return
	}

	post, err := h.postService.GetPostWithComments(c.Request.Context(), postID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}
