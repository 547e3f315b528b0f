package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/ent-client/pkg/ent"
)

// NewUsersCommand creates the users command group.
func NewUsersCommand() *cobra.Command {
	return newUsersCommand(newSession)
}

func newUsersCommand(create sessionFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "users",
		Aliases: []string{"user"},
		Short:   "Search and message users",
		Long:    "Search the directory, display profiles and message users",
	}

	cmd.AddCommand(newUsersSearchCommand(create))
	cmd.AddCommand(newUsersShowCommand(create))
	cmd.AddCommand(newUsersMessageCommand(create))

	return cmd
}

func newUsersSearchCommand(create sessionFactory) *cobra.Command {
	var query ent.SearchQuery

	cmd := &cobra.Command{
		Use:   "search [TEXT]",
		Short: "Search users",
		Long:  "Search the users visible to the current account",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				query.Search = args[0]
			}

			session, err := create()
			if err != nil {
				return err
			}

			users, err := session.SearchUsers(context.Background(), &query)
			if err != nil {
				return fmt.Errorf("failed to search users: %w", err)
			}

			return renderUserPreviews(cmd.OutOrStdout(), viper.GetString("output"), users)
		},
	}

	cmd.Flags().StringSliceVar(&query.Classes, "class", nil, "class ids")
	cmd.Flags().StringSliceVar(&query.Functions, "function", nil, "function ids")
	cmd.Flags().StringSliceVar(&query.Profiles, "profile", nil, "profiles (Student, Teacher, Relative, Personnel, Guest)")

	return cmd
}

func renderUserPreviews(out io.Writer, format string, users []*ent.UserPreview) error {
	if len(users) == 0 && printEmpty(out, format, "No users found") {
		return nil
	}

	return render(out, format, users, func(table *tablewriter.Table) {
		table.Header("ID", "Name", "Profile", "Group")

		for _, user := range users {
			_ = table.Append(user.ID, user.DisplayName, user.Profile, user.GroupDisplayName)
		}
	})
}

func newUsersShowCommand(create sessionFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "show USER_ID",
		Short: "Show a user profile",
		Long:  "Display the profile of a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := create()
			if err != nil {
				return err
			}

			user, err := session.FetchUser(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to fetch user: %w", err)
			}

			return renderUser(cmd.OutOrStdout(), viper.GetString("output"), user)
		},
	}
}

func renderUser(out io.Writer, format string, user *ent.User) error {
	return render(out, format, user, func(table *tablewriter.Table) {
		schools := make([]string, 0, len(user.Schools))
		for _, school := range user.Schools {
			schools = append(schools, school.Name)
		}

		table.Header("Property", "Value")
		_ = table.Append("ID", user.ID)
		_ = table.Append("Login", user.Login)
		_ = table.Append("Name", user.DisplayName)
		_ = table.Append("Type", strings.Join(user.Type, ", "))
		_ = table.Append("Schools", strings.Join(schools, ", "))
		_ = table.Append("Email", formatConfigValue(user.Email))
		_ = table.Append("Motto", formatConfigValue(user.Motto))
		_ = table.Append("Avatar", user.AvatarURL())
	})
}

func newUsersMessageCommand(create sessionFactory) *cobra.Command {
	var flags messageFlags

	cmd := &cobra.Command{
		Use:   "message USER_ID",
		Short: "Send a message to a user",
		Long:  "Send a message to a user, in addition to any --cc or --bcc recipient",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := create()
			if err != nil {
				return err
			}

			ctx := context.Background()

			user, err := session.FetchUser(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to fetch user: %w", err)
			}

			id, err := user.SendMessage(ctx, flags.config())
			if err != nil {
				return fmt.Errorf("failed to send message: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Message sent to %s: %s\n", user.DisplayName, id)

			return nil
		},
	}

	flags.register(cmd, false)

	return cmd
}
