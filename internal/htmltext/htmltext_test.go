package htmltext_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fivetwenty-io/ent-client/internal/htmltext"
)

func TestConvert(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "plain text",
			html: "Bonjour",
			want: "Bonjour",
		},
		{
			name: "paragraphs",
			html: "<p>Hello&nbsp;<b>world</b></p><p>Line&amp;two</p>",
			want: "Hello world\n\nLine&two",
		},
		{
			name: "line breaks",
			html: "a<br>b<br/>c",
			want: "a\nb\nc",
		},
		{
			name: "script and style removed",
			html: "<style>p { color: red; }</style><div>kept</div><script>alert('x')</script>",
			want: "kept",
		},
		{
			name: "numeric entities",
			html: "<div>caf&#233; &#x263A; &lt;tag&gt; &quot;q&quot;</div>",
			want: "café ☺ <tag> \"q\"",
		},
		{
			name: "whitespace collapsed",
			html: "<div>\n   spaced\n   out   </div>",
			want: "spaced out",
		},
		{
			name: "portal message markup",
			html: `<div class="ng-scope">first</div><div class="ng-scope">second</div>` +
				`<div class="signature new-signature ng-scope">sig</div>`,
			want: "first\n\nsecond\n\nsig",
		},
		{
			name: "empty",
			html: "",
			want: "",
		},
	}

	for _, testCase := range tests {

		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.want, htmltext.Convert(testCase.html))
		})
	}
}
