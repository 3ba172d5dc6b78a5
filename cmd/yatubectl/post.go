package main

import (
	"fmt"
	"strconv"

	"github.com/navbryce/yatube/db"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func init() {
	postCmd.AddCommand(postDeleteCmd)
	RootCmd.AddCommand(postCmd)
}

var postCmd = &cobra.Command{
	Use:   "post",
	Short: "Moderate posts",
}

var postDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a post together with its comments",
	Args:  cobra.ExactArgs(1),
	RunE:  deletePost,
}

func deletePost(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return errors.Errorf("invalid post id %q", args[0])
	}
	return withDatabase(func(database db.Database) error {
		post, err := database.GetPostById(cmd.Context(), id)
		if err != nil {
			return err
		}
		if post == nil {
			return errors.Errorf("post %d not found", id)
		}
		if err := database.DeletePost(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted post %d by %v: %v\n", id, post.Author.Username, post)
		return nil
	})
}
