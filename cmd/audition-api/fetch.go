package main

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/JonnyWalker81/audition/backend/internal/config"
	"github.com/JonnyWalker81/audition/backend/internal/handlers"
	"github.com/JonnyWalker81/audition/backend/internal/integration"
)

// newFetchCmd builds `fetch`, which calls the upstream through the same
// integration client the server uses and prints the result as JSON.
func newFetchCmd() *cobra.Command {
	fetchCmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch posts or comments from the upstream API",
	}

	var userID string
	postsCmd := &cobra.Command{
		Use:   "posts",
		Short: "List posts, optionally for one user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := cmd.Flags().Changed("user-id")
			var id int
			if filter {
				parsed, err := parseArgID(userID)
				if err != nil {
					return err
				}
				id = parsed
			}
			a, err := loadApp()
			if err != nil {
				return err
			}
			if filter {
				posts, err := a.posts.GetPostsByUser(cmd.Context(), id)
				return printResult(cmd.OutOrStdout(), posts, err)
			}
			posts, err := a.posts.GetPosts(cmd.Context())
			return printResult(cmd.OutOrStdout(), posts, err)
		},
	}
	postsCmd.Flags().StringVar(&userID, "user-id", "", "Only list posts by this user")

	var withComments bool
	postCmd := &cobra.Command{
		Use:   "post <id>",
		Short: "Get one post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseArgID(args[0])
			if err != nil {
				return err
			}
			a, err := loadApp()
			if err != nil {
				return err
			}
			if withComments {
				post, err := a.posts.GetPostWithComments(cmd.Context(), id)
				return printResult(cmd.OutOrStdout(), post, err)
			}
			post, err := a.posts.GetPost(cmd.Context(), id)
			return printResult(cmd.OutOrStdout(), post, err)
		},
	}
	postCmd.Flags().BoolVar(&withComments, "comments", false, "Include the post's comments")

	commentsCmd := &cobra.Command{
		Use:   "comments <postId>",
		Short: "List comments for a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseArgID(args[0])
			if err != nil {
				return err
			}
			a, err := loadApp()
			if err != nil {
				return err
			}
			comments, err := a.posts.GetCommentsByPost(cmd.Context(), id)
			return printResult(cmd.OutOrStdout(), comments, err)
		},
	}

	fetchCmd.AddCommand(postsCmd, postCmd, commentsCmd)
	return fetchCmd
}

func loadApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	// stdout is reserved for results
	return newApp(cfg, os.Stderr), nil
}

func parseArgID(raw string) (int, error) {
	id, err := handlers.ParseID(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: must contain only digits (0-9)", raw)
	}
	return id, nil
}

// printResult writes v as indented JSON to out, or reports the normalized
// failure when err is set.
func printResult(out io.Writer, v any, err error) error {
	if err != nil {
		if nerr, ok := integration.AsError(err); ok {
			return fmt.Errorf("%d %s: %s", nerr.StatusCode, nerr.Title, nerr.Message)
		}
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}
