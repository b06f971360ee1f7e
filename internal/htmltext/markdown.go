// markdown.go implements the HTML to Markdown transform.
//
// Only the handful of tags that instructors actually use in descriptions get
// Markdown syntax: headings h1-h3, bold, italic, lists, paragraphs, line
// breaks and links. Every other element contributes its converted children
// with no markup, which keeps all text even when structure is lost.
//
// Bold, italic, headings and link text use the element's text content, so
// markup nested inside them is flattened.

package htmltext

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Markdown converts the fragment to Markdown.
func Markdown(s *string) string {
	if s == nil || *s == "" {
		return ""
	}
	nodes := parse(*s)
	if nodes == nil {
		return strings.TrimSpace(escapeDollars(*s))
	}
	var b strings.Builder
	for _, n := range nodes {
		b.WriteString(markdown(n))
	}
	out := extraBlank.ReplaceAllString(b.String(), "\n\n")
	return strings.TrimSpace(escapeDollars(out))
}

func markdown(n *html.Node) string {
	switch n.Type {
	case html.TextNode:
		return n.Data
	case html.ElementNode:
		return element(n)
	case html.DocumentNode:
		return children(n)
	default:
		// Comments and doctypes carry no visible content.
		return ""
	}
}

func element(n *html.Node) string {
	switch n.DataAtom {
	case atom.H1:
		return "# " + strings.TrimSpace(text(n)) + "\n\n"
	case atom.H2:
		return "## " + strings.TrimSpace(text(n)) + "\n\n"
	case atom.H3:
		return "### " + strings.TrimSpace(text(n)) + "\n\n"
	case atom.Strong, atom.B:
		return "**" + text(n) + "**"
	case atom.Em, atom.I:
		return "*" + text(n) + "*"
	case atom.Ul:
		return list(n, func(int) string { return "- " })
	case atom.Ol:
		return list(n, func(i int) string { return strconv.Itoa(i+1) + ". " })
	case atom.Li:
		return strings.TrimSpace(children(n))
	case atom.P:
		return children(n) + "\n\n"
	case atom.Br:
		return "\n"
	case atom.A:
		if href, ok := attr(n, "href"); ok {
			return "[" + text(n) + "](" + href + ")"
		}
		return text(n)
	default:
		return children(n)
	}
}

// list renders each element child of n on its own line behind a marker.
// Text between items (usually indentation whitespace) is dropped.
func list(n *html.Node, marker func(i int) string) string {
	var items []string
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		items = append(items, marker(len(items))+markdown(c))
	}
	return strings.Join(items, "\n") + "\n\n"
}

func children(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(markdown(c))
	}
	return b.String()
}
