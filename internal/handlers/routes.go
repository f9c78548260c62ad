package handlers

import "github.com/gin-gonic/gin"

// Handlers groups the endpoint handlers mounted by RegisterRoutes.
type Handlers struct {
	Posts    *PostHandler
	Comments *CommentHandler
	Health   *HealthHandler
}

// RegisterRoutes mounts the post and comment routes on r.
func RegisterRoutes(r gin.IRoutes, h Handlers) {
	r.GET("/posts", h.Posts.GetPosts)
	r.GET("/posts/:id", h.Posts.GetPost)
	r.GET("/posts/:id/comments", h.Posts.GetPostWithComments)
	r.GET("/comments", h.Comments.GetComments)
}

// NewRouter builds an engine with the public routes at the root and under
// /api/v1. NoRoute and NoMethod render problem responses.
func NewRouter(h Handlers, middleware ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.CustomRecovery(Recovery))
	router.Use(middleware...)

	router.GET("/health", h.Health.Health)
	RegisterRoutes(router, h)
	RegisterRoutes(router.Group("/api/v1"), h)

	router.NoRoute(NoRoute)
	router.NoMethod(NoMethod)
	return router
}
