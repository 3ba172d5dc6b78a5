package main

import (
	"fmt"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/navbryce/yatube/db"
	"github.com/navbryce/yatube/model"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	groupTitle       string
	groupDescription string
)

func init() {
	groupCreateCmd.Flags().StringVar(&groupTitle, "title", "", "group title (required)")
	groupCreateCmd.Flags().StringVar(&groupDescription, "description", "", "group description")
	groupCreateCmd.MarkFlagRequired("title")

	groupCmd.AddCommand(groupCreateCmd, groupListCmd, groupDeleteCmd)
	RootCmd.AddCommand(groupCmd)
}

var groupCmd = &cobra.Command{
	Use:   "group",
	Short: "Manage post groups",
}

var groupCreateCmd = &cobra.Command{
	Use:   "create SLUG",
	Short: "Create a group",
	Args:  cobra.ExactArgs(1),
	RunE:  createGroup,
}

var groupListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List every group",
	Args:    cobra.NoArgs,
	RunE:    listGroups,
}

var groupDeleteCmd = &cobra.Command{
	Use:   "delete SLUG",
	Short: "Delete a group, keeping its posts",
	Args:  cobra.ExactArgs(1),
	RunE:  deleteGroup,
}

func createGroup(cmd *cobra.Command, args []string) error {
	slug := args[0]
	if err := validateGroup(groupTitle, slug); err != nil {
		return err
	}
	return withDatabase(func(database db.Database) error {
		id, err := database.CreateGroup(cmd.Context(), &db.CreateGroup{
			Title:       groupTitle,
			Slug:        slug,
			Description: groupDescription,
		})
		if db.IsDupKeyErr(err) {
			return errors.Errorf("group %q already exists", slug)
		} else if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created group %v (id %d)\n", slug, id)
		return nil
	})
}

func listGroups(cmd *cobra.Command, args []string) error {
	return withDatabase(func(database db.Database) error {
		groups, err := database.GetGroups(cmd.Context())
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSLUG\tTITLE")
		for _, group := range groups {
			fmt.Fprintf(w, "%d\t%v\t%v\n", group.Id, group.Slug, group.Title)
		}
		return w.Flush()
	})
}

func deleteGroup(cmd *cobra.Command, args []string) error {
	return withDatabase(func(database db.Database) error {
		group, err := database.GetGroupBySlug(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if group == nil {
			return errors.Errorf("group %q not found", args[0])
		}
		if err := database.DeleteGroup(cmd.Context(), group.Id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted group %v\n", group.Slug)
		return nil
	})
}

func validateGroup(title, slug string) error {
	switch {
	case title == "":
		return errors.New("the title must not be empty")
	case utf8.RuneCountInString(title) > model.GroupTitleMaxLen:
		return errors.Errorf("the title must be at most %d characters", model.GroupTitleMaxLen)
	case !model.ValidSlug(slug):
		return errors.Errorf("invalid slug %q: use at most %d latin letters, digits, - and _", slug, model.GroupSlugMaxLen)
	}
	return nil
}
