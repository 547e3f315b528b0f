package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/ent-client/internal/constants"
)

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	return newLoginCommand(newSession)
}

func newLoginCommand(create sessionFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Check the portal credentials",
		Long:  "Log in to the portal and report whether the credentials are accepted",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := create()
			if err != nil {
				return err
			}

			err = session.Authenticate(context.Background())
			if err != nil {
				return fmt.Errorf("failed to log in: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Logged in to %s\n", session.BaseURL())

			return nil
		},
	}
}

// NewWhoamiCommand creates the whoami command.
func NewWhoamiCommand() *cobra.Command {
	return newWhoamiCommand(newSession)
}

func newWhoamiCommand(create sessionFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current user",
		Long:  "Display information about the logged-in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := create()
			if err != nil {
				return err
			}

			info, err := session.FetchUserInfo(context.Background())
			if err != nil {
				return fmt.Errorf("failed to fetch user info: %w", err)
			}

			return render(cmd.OutOrStdout(), viper.GetString("output"), info, func(table *tablewriter.Table) {
				birthDate := constants.NotAvailable
				if !info.BirthDate.IsZero() {
					birthDate = info.BirthDate.Format("2006-01-02")
				}

				table.Header("Property", "Value")
				_ = table.Append("User ID", info.UserID)
				_ = table.Append("Login", info.Login)
				_ = table.Append("Name", strings.TrimSpace(info.FirstName+" "+info.LastName))
				_ = table.Append("Type", info.Type)
				_ = table.Append("Level", formatConfigValue(info.Level))
				_ = table.Append("Birth date", birthDate)
				_ = table.Append("Schools", strings.Join(info.StructureNames, ", "))
				_ = table.Append("Classes", strings.Join(info.ClassNames, ", "))
				_ = table.Append("Apps", fmt.Sprintf("%d", len(info.Apps)))
			})
		},
	}
}

// NewLanguageCommand creates the language command.
func NewLanguageCommand() *cobra.Command {
	return newLanguageCommand(newSession)
}

func newLanguageCommand(create sessionFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "language",
		Short: "Show the preferred language",
		Long:  "Display the language preference of the current user",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := create()
			if err != nil {
				return err
			}

			language, err := session.FetchLanguage(context.Background())
			if err != nil {
				return fmt.Errorf("failed to fetch language: %w", err)
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), formatConfigValue(language))

			return nil
		},
	}
}
