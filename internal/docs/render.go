package docs

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/fivetwenty-io/ent-client/internal/constants"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.Table))

// Types returns every documented type.
func Types() []Type {
	return reference
}

// Lookup finds a documented type by name, case-insensitively.
func Lookup(name string) (*Type, error) {
	for i := range reference {
		if strings.EqualFold(reference[i].Name, name) {
			return &reference[i], nil
		}
	}

	return nil, fmt.Errorf("%w: %s", constants.ErrUnknownDocType, name)
}

// Markdown renders the reference of t.
func Markdown(t *Type) string {
	var out strings.Builder

	fmt.Fprintf(&out, "# %s\n\n%s\n", t.Name, t.Description)

	for _, method := range t.Methods {
		fmt.Fprintf(&out, "\n## %s\n\n%s\n\nReturns `%s`.\n", method.Name, method.Description, method.Returns)

		if len(method.Params) == 0 {
			continue
		}

		out.WriteString("\n| Parameter | Type | Required | Default | Description |\n")
		out.WriteString("|---|---|---|---|---|\n")

		for _, param := range method.Params {
			required := "no"
			if param.Required {
				required = "yes"
			}

			defaultValue := param.Default
			if defaultValue == "" {
				defaultValue = "-"
			}

			fmt.Fprintf(&out, "| %s | `%s` | %s | %s | %s |\n",
				param.Name, param.Type, required, defaultValue, param.Description)
		}
	}

	return out.String()
}

// HTML renders the reference of t as an HTML fragment.
func HTML(t *Type) (string, error) {
	var out bytes.Buffer

	err := markdown.Convert([]byte(Markdown(t)), &out)
	if err != nil {
		return "", fmt.Errorf("rendering %s reference: %w", t.Name, err)
	}

	return out.String(), nil
}
