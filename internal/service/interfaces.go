package service

import (
	"context"

	"github.com/JonnyWalker81/audition/backend/internal/models"
)

//go:generate mockgen -destination=mocks/post_client.go -package=mocks . PostClient

// PostClient is the upstream access the facade depends on.
// *integration.Client satisfies it.
type PostClient interface {
	ListPosts(ctx context.Context) ([]models.Post, error)
	GetPost(ctx context.Context, id int) (models.Post, error)
	ListPostsByUser(ctx context.Context, userID int) ([]models.Post, error)
	ListCommentsByPost(ctx context.Context, postID int) ([]models.Comment, error)
	GetPostWithComments(ctx context.Context, postID int) (models.Post, error)
}

// PostService defines the interface for post and comment use cases
type PostService interface {
	GetPosts(ctx context.Context) ([]models.Post, error)
	GetPostsByUser(ctx context.Context, userID int) ([]models.Post, error)
	GetPost(ctx context.Context, postID int) (models.Post, error)
	GetPostWithComments(ctx context.Context, postID int) (models.Post, error)
	GetCommentsByPost(ctx context.Context, postID int) ([]models.Comment, error)
}
