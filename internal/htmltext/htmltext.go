// Package htmltext converts instructor-authored HTML fragments (assignment
// descriptions) into plain text, a small Markdown dialect, and a list of
// links.
//
// The conversions are deliberately forgiving. Descriptions are free-form
// HTML pasted from word processors and rich text editors, so unknown tags
// are unwrapped rather than rejected and nothing here returns an error.
//
// Every conversion escapes "$" followed by a digit as "\$". Clients feed the
// output into templating and Markdown engines that would otherwise treat
// "$1" as a capture group reference.
package htmltext

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Link is an anchor found in a fragment.
type Link struct {
	Text string `json:"text"`
	Href string `json:"href"`
}

// Format names an output rendering for Render.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
	FormatHTML     Format = "html"
)

// Formats lists the accepted Format values in display order.
func Formats() []Format {
	return []Format{FormatMarkdown, FormatText, FormatHTML}
}

// ParseFormat validates a format name. Empty selects markdown.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatMarkdown:
		return FormatMarkdown, nil
	case FormatText, "plain":
		return FormatText, nil
	case FormatHTML:
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("unknown format %q (valid: %v)", s, Formats())
	}
}

var (
	dollarDigit = regexp.MustCompile(`\$(\d)`)
	extraBlank  = regexp.MustCompile(`\n{3,}`)
)

// escapeDollars rewrites "$<digit>" as "\$<digit>".
func escapeDollars(s string) string {
	return dollarDigit.ReplaceAllString(s, `\$$$1`)
}

// parse returns the top-level nodes of an HTML fragment parsed in a <body>
// context. A nil result means the fragment was empty or unparseable.
func parse(s string) []*html.Node {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(s), body)
	if err != nil {
		return nil
	}
	return nodes
}

// Render converts s using the named format. HTML is returned unchanged.
func Render(s *string, f Format) string {
	switch f {
	case FormatText:
		return PlainText(s)
	case FormatHTML:
		if s == nil {
			return ""
		}
		return *s
	default:
		return Markdown(s)
	}
}

// PlainText returns the text content of the fragment.
func PlainText(s *string) string {
	if s == nil || *s == "" {
		return ""
	}
	nodes := parse(*s)
	if nodes == nil {
		return escapeDollars(*s)
	}
	var b strings.Builder
	for _, n := range nodes {
		textContent(&b, n)
	}
	return escapeDollars(b.String())
}

// Links returns every anchor in document order. An anchor without an href
// is kept with an empty Href.
func Links(s *string) []Link {
	if s == nil || *s == "" {
		return nil
	}
	var links []Link
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.A {
			href, _ := attr(n, "href")
			links = append(links, Link{
				Text: escapeDollars(strings.TrimSpace(text(n))),
				Href: escapeDollars(href),
			})
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range parse(*s) {
		walk(n)
	}
	return links
}

// textContent appends the concatenated text nodes beneath n.
func textContent(b *strings.Builder, n *html.Node) {
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		textContent(b, c)
	}
}

func text(n *html.Node) string {
	var b strings.Builder
	textContent(&b, n)
	return b.String()
}

// attr returns the value of the named attribute and whether it was present.
func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}
