package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/navbryce/yatube/auth"
	"github.com/navbryce/yatube/db"
	"github.com/navbryce/yatube/forms"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	userDisplayName string
	userPassword    string
)

func init() {
	userCreateCmd.Flags().StringVar(&userDisplayName, "display-name", "", "name shown on the profile")
	userCreateCmd.Flags().StringVar(&userPassword, "password", "", "password for the local auth provider")

	userCmd.AddCommand(userCreateCmd)
	RootCmd.AddCommand(userCmd)
}

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage accounts",
}

var userCreateCmd = &cobra.Command{
	Use:   "create USERNAME",
	Short: "Create an account that signs in with a password",
	Args:  cobra.ExactArgs(1),
	RunE:  createUser,
}

func createUser(cmd *cobra.Command, args []string) error {
	username := args[0]
	if msg := forms.UsernameError(username); msg != "" {
		return errors.New(msg)
	}
	if len([]rune(userPassword)) < forms.PasswordMinLen {
		return errors.New(forms.ErrPasswordTooShort)
	}
	hash, err := auth.HashPassword(userPassword)
	if err != nil {
		return err
	}
	return withDatabase(func(database db.Database) error {
		user, err := database.CreateUser(cmd.Context(), &db.CreateUser{
			Id:           uuid.NewString(),
			Username:     username,
			DisplayName:  userDisplayName,
			PasswordHash: hash,
		})
		if db.IsDupKeyErr(err) {
			return errors.New(forms.ErrUsernameTaken)
		} else if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created user %v (id %v)\n", user.Username, user.Id)
		return nil
	})
}
