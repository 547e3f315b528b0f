package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/ent-client/internal/constants"
	"github.com/fivetwenty-io/ent-client/pkg/ent"
)

// NewAppsCommand creates the apps command group.
func NewAppsCommand() *cobra.Command {
	return newAppsCommand(newSession)
}

func newAppsCommand(create sessionFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "apps",
		Aliases: []string{"app"},
		Short:   "Manage applications",
		Long:    "List the application catalog and manage pinned applications",
	}

	cmd.AddCommand(newAppsListCommand(create))
	cmd.AddCommand(newAppsPinnedCommand(create))
	cmd.AddCommand(newAppsPinCommand(create, true))
	cmd.AddCommand(newAppsPinCommand(create, false))

	return cmd
}

func newAppsListCommand(create sessionFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List applications",
		Long:  "List the application catalog, marking pinned applications",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := create()
			if err != nil {
				return err
			}

			ctx := context.Background()

			apps, err := session.FetchApps(ctx)
			if err != nil {
				return fmt.Errorf("failed to list applications: %w", err)
			}

			pinned, err := session.FetchPinnedApps(ctx)
			if err != nil {
				return fmt.Errorf("failed to list pinned applications: %w", err)
			}

			return renderApps(cmd.OutOrStdout(), viper.GetString("output"), apps, pinned)
		},
	}
}

func newAppsPinnedCommand(create sessionFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "pinned",
		Short: "List pinned applications",
		Long:  "List the applications pinned by the current user",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := create()
			if err != nil {
				return err
			}

			pinned, err := session.FetchPinnedApps(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list pinned applications: %w", err)
			}

			return renderApps(cmd.OutOrStdout(), viper.GetString("output"), pinned, pinned)
		},
	}
}

func renderApps(out io.Writer, format string, apps, pinned []*ent.App) error {
	if len(apps) == 0 && printEmpty(out, format, "No applications found") {
		return nil
	}

	pinnedNames := make(map[string]bool, len(pinned))
	for _, app := range pinned {
		pinnedNames[app.Name] = true
	}

	return render(out, format, apps, func(table *tablewriter.Table) {
		table.Header("Name", "Display Name", "Address", "Pinned", "External")

		for _, app := range apps {
			_ = table.Append(
				app.Name,
				app.DisplayName,
				app.FullAddress(),
				boolMark(pinnedNames[app.Name]),
				boolMark(app.IsExternal),
			)
		}
	})
}

func newAppsPinCommand(create sessionFactory, pin bool) *cobra.Command {
	use, short, done := "pin", "Pin an application", "Pinned"
	if !pin {
		use, short, done = "unpin", "Unpin an application", "Unpinned"
	}

	return &cobra.Command{
		Use:   use + " APP_NAME",
		Short: short,
		Long:  short + " by its catalog name or display name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := create()
			if err != nil {
				return err
			}

			ctx := context.Background()

			apps, err := session.FetchApps(ctx)
			if err != nil {
				return fmt.Errorf("failed to list applications: %w", err)
			}

			app, err := findApp(apps, args[0])
			if err != nil {
				return err
			}

			if pin {
				err = app.Pin(ctx)
			} else {
				err = app.Unpin(ctx)
			}

			if err != nil {
				return fmt.Errorf("failed to %s %s: %w", use, app.Name, err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", done, app.Name)

			return nil
		},
	}
}

func findApp(apps []*ent.App, name string) (*ent.App, error) {
	for _, app := range apps {
		if app.Name == name {
			return app, nil
		}
	}

	for _, app := range apps {
		if strings.EqualFold(app.DisplayName, name) || strings.EqualFold(app.Name, name) {
			return app, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", constants.ErrAppNotFound, name)
}
