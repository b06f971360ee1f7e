package htmltext

import (
	"testing"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

// assertText compares multi-line output and prints a character diff on
// mismatch, which is far easier to read than two quoted blobs.
func assertText(t *testing.T, want, got string) {
	t.Helper()
	if want == got {
		return
	}
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(want, got, false)
	t.Errorf("output mismatch (-want +got):\n%s\nwant: %q\ngot:  %q", dmp.DiffPrettyText(diffs), want, got)
}

func TestMarkdown(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text", "just some words", "just some words"},
		{"plain text trimmed", "  padded words \n", "padded words"},
		{"h1", "<h1>Title</h1><p>Body</p>", "# Title\n\nBody"},
		{"h2", "<h2> Section </h2>", "## Section"},
		{"h3", "<h3>Sub</h3>text", "### Sub\n\ntext"},
		{"h4 unwrapped", "<h4>Minor</h4>", "Minor"},
		{"bold and italic", "<p>This is <strong>bold</strong> and <em>slanted</em></p>", "This is **bold** and *slanted*"},
		{"b and i", "<b>B</b> <i>I</i>", "**B** *I*"},
		{"nested markup flattened", "<b>a <i>b</i></b>", "**a b**"},
		{"unordered list", "<ul><li>One</li><li> Two </li></ul>", "- One\n- Two"},
		{"list whitespace ignored", "<ul>\n  <li>One</li>\n  <li>Two</li>\n</ul>", "- One\n- Two"},
		{"ordered list", "<ol><li>First</li><li>Second</li><li>Third</li></ol>", "1. First\n2. Second\n3. Third"},
		{"list then paragraph", "<ul><li>A</li></ul><p>After</p>", "- A\n\nAfter"},
		{"list item markup", "<ul><li>See <a href=\"/x\">this</a></li></ul>", "- See [this](/x)"},
		{"line break", "line one<br>line two", "line one\nline two"},
		{"link", `<a href="https://example.com">site</a>`, "[site](https://example.com)"},
		{"link without href", "<a>bare</a>", "bare"},
		{"containers unwrapped", "<div><span>Hi</span> there</div>", "Hi there"},
		{"blank runs collapsed", "<p>a</p><br><br><br><p>b</p>", "a\n\nb"},
		{"paragraphs", "<p>a</p>\n<p>b</p>", "a\n\nb"},
		{"entities decoded", "<p>Tom &amp; Jerry</p>", "Tom & Jerry"},
		{"comment dropped", "before<!-- hidden -->after", "beforeafter"},
		{"dollar digits escaped", "<p>Pay $1 or $25 but not $ or $x</p>", `Pay \$1 or \$25 but not $ or $x`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assertText(t, tc.want, Markdown(ptr(tc.in)))
		})
	}

	t.Run("nil", func(t *testing.T) {
		assert.Equal(t, "", Markdown(nil))
	})

	t.Run("realistic description", func(t *testing.T) {
		in := `<h2>Lab 3</h2>
<p>Write a <strong>short</strong> report covering:</p>
<ol>
  <li>Your hypothesis</li>
  <li>The <em>method</em></li>
</ol>
<p>Submit via <a href="https://canvas.example.edu/files/1">the template</a>.<br>Late work loses 10%.</p>`
		want := "## Lab 3\n\nWrite a **short** report covering:\n\n1. Your hypothesis\n2. The *method*\n\nSubmit via [the template](https://canvas.example.edu/files/1).\nLate work loses 10%."
		assertText(t, want, Markdown(ptr(in)))
	})
}

func TestPlainText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"paragraphs", "<p>Hello <b>world</b></p><p>Again</p>", "Hello worldAgain"},
		{"entities", "a &lt; b", "a < b"},
		{"dollar digits", "<span>costs $1</span>", `costs \$1`},
		{"plain", "no tags", "no tags"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, PlainText(ptr(tc.in)))
		})
	}

	t.Run("nil is empty", func(t *testing.T) {
		assert.Equal(t, "", PlainText(nil))
	})
}

func TestLinks(t *testing.T) {
	t.Run("order and missing href", func(t *testing.T) {
		got := Links(ptr(`<a href="x">t</a><a>u</a>`))
		assert.Equal(t, []Link{{Text: "t", Href: "x"}, {Text: "u", Href: ""}}, got)
	})

	t.Run("nested text", func(t *testing.T) {
		got := Links(ptr(`<p>See <a href="/y"><b>bold</b> link</a> and <a href="/z">$1 off</a></p>`))
		require.Len(t, got, 2)
		assert.Equal(t, Link{Text: "bold link", Href: "/y"}, got[0])
		assert.Equal(t, Link{Text: `\$1 off`, Href: "/z"}, got[1])
	})

	t.Run("none", func(t *testing.T) {
		assert.Empty(t, Links(ptr("<p>nothing here</p>")))
		assert.Nil(t, Links(nil))
	})
}

func TestRender(t *testing.T) {
	in := ptr("<p>Read <b>this</b></p>")
	assert.Equal(t, "Read **this**", Render(in, FormatMarkdown))
	assert.Equal(t, "Read this", Render(in, FormatText))
	assert.Equal(t, "<p>Read <b>this</b></p>", Render(in, FormatHTML))
	assert.Equal(t, "", Render(nil, FormatHTML))
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatMarkdown, false},
		{"markdown", FormatMarkdown, false},
		{"Text", FormatText, false},
		{"plain", FormatText, false},
		{"html", FormatHTML, false},
		{"pdf", "", true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseFormat(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
