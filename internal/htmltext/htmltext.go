// Package htmltext converts message bodies from HTML to plain text.
package htmltext

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// Tags that start a new line when opened.
var openBreaks = map[string]bool{
	"br": true, "p": true, "div": true, "li": true, "tr": true, "hr": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"blockquote": true, "ul": true, "ol": true, "table": true,
}

// Tags that end the current line when closed.
var closeBreaks = map[string]bool{
	"p": true, "div": true, "li": true, "tr": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"blockquote": true, "ul": true, "ol": true, "table": true,
}

// Convert strips tags, script and style blocks from src, turns block and
// line-break tags into newlines and decodes entities. Runs of blank lines
// collapse to a single blank line.
func Convert(src string) string {
	var out strings.Builder

	tokenizer := html.NewTokenizer(strings.NewReader(src))
	hidden := 0

	for {
		tokenType := tokenizer.Next()

		switch tokenType {
		case html.ErrorToken:
			return normalize(out.String())

		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := tokenizer.TagName()
			tag := string(name)

			if tag == "script" || tag == "style" {
				if tokenType == html.StartTagToken {
					hidden++
				}

				continue
			}

			if openBreaks[tag] {
				out.WriteByte('\n')
			}

		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			tag := string(name)

			if tag == "script" || tag == "style" {
				if hidden > 0 {
					hidden--
				}

				continue
			}

			if closeBreaks[tag] {
				out.WriteByte('\n')
			}

		case html.TextToken:
			if hidden == 0 {
				out.WriteString(collapseSpace(string(tokenizer.Text())))
			}

		case html.CommentToken, html.DoctypeToken:
		}
	}
}

// collapseSpace folds every whitespace run, non-breaking spaces included,
// into a single space.
func collapseSpace(text string) string {
	var out strings.Builder

	space := false

	for _, r := range text {
		if unicode.IsSpace(r) {
			if !space {
				out.WriteByte(' ')
			}

			space = true

			continue
		}

		space = false

		out.WriteRune(r)
	}

	return out.String()
}

func normalize(text string) string {
	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))
	blank := true

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			if !blank {
				kept = append(kept, "")
			}

			blank = true

			continue
		}

		blank = false

		kept = append(kept, line)
	}

	return strings.TrimRight(strings.Join(kept, "\n"), "\n")
}
