package commands

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/ent-client/internal/constants"
	"github.com/fivetwenty-io/ent-client/internal/docs"
)

// NewDocsCommand creates the docs command.
func NewDocsCommand() *cobra.Command {
	var html bool

	cmd := &cobra.Command{
		Use:   "docs [TYPE]",
		Short: "Show the library reference",
		Long: `Show the method reference of Session, Message, App, User and UserPreview.

Without TYPE, list the documented types. With --html, render the reference
of TYPE as an HTML fragment instead of markdown.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				return renderDocTypes(out, viper.GetString("output"), docs.Types())
			}

			documented, err := docs.Lookup(args[0])
			if err != nil {
				return err
			}

			return renderDocType(out, viper.GetString("output"), documented, html)
		},
	}

	cmd.Flags().BoolVar(&html, "html", false, "render the reference as HTML")

	return cmd
}

func renderDocTypes(out io.Writer, format string, types []docs.Type) error {
	return render(out, format, types, func(table *tablewriter.Table) {
		table.Header("Type", "Methods", "Description")

		for _, documented := range types {
			_ = table.Append(documented.Name, fmt.Sprintf("%d", len(documented.Methods)), documented.Description)
		}
	})
}

func renderDocType(out io.Writer, format string, documented *docs.Type, html bool) error {
	if format == constants.FormatJSON || format == constants.FormatYAML {
		return render(out, format, documented, nil)
	}

	if !html {
		_, _ = io.WriteString(out, docs.Markdown(documented))

		return nil
	}

	fragment, err := docs.HTML(documented)
	if err != nil {
		return err
	}

	_, _ = io.WriteString(out, fragment)

	return nil
}
