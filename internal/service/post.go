package service

import (
	"context"

	"github.com/JonnyWalker81/audition/backend/internal/logger"
	"github.com/JonnyWalker81/audition/backend/internal/models"
)

type postService struct {
	client PostClient
}

// NewPostService creates a new post service
func NewPostService(client PostClient) PostService {
	return &postService{client: client}
}

func (s *postService) GetPosts(ctx context.Context) ([]models.Post, error) {
	logger.Ctx(ctx).Info("fetching all posts")
	return s.client.ListPosts(ctx)
}

func (s *postService) GetPostsByUser(ctx context.Context, userID int) ([]models.Post, error) {
	logger.Ctx(ctx).Info("fetching posts by user", logger.Int("user_id", userID))
	return s.client.ListPostsByUser(ctx, userID)
}

func (s *postService) GetPost(ctx context.Context, postID int) (models.Post, error) {
	logger.Ctx(ctx).Info("fetching post", logger.Int("post_id", postID))
	return s.client.GetPost(ctx, postID)
}

func (s *postService) GetPostWithComments(ctx context.Context, postID int) (models.Post, error) {
	logger.Ctx(ctx).Info("fetching post with comments", logger.Int("post_id", postID))
	return s.client.GetPostWithComments(ctx, postID)
}

func (s *postService) GetCommentsByPost(ctx context.Context, postID int) ([]models.Comment, error) {
	logger.Ctx(ctx).Info("fetching comments for post", logger.Int("post_id", postID))
	return s.client.ListCommentsByPost(ctx, postID)
}
