package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JonnyWalker81/audition/backend/internal/service"
)

type CommentHandler struct {
	postService service.PostService
}

// NewCommentHandler creates a new comment handler
func NewCommentHandler(postService service.PostService) *CommentHandler {
	return &CommentHandler{
		postService: postService,
	}
}

// GetComments handles GET /comments?postId=
func (h *CommentHandler) GetComments(c *gin.Context) {
	postID, ok := bindID(c, c.Query("postId"), "postId", labelPostID)
	if !ok {
		return
	}

	comments, err := h.postService.GetCommentsByPost(c.Request.Context(), postID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, comments)
}
