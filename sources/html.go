package sources

import (
	"strings"

	"golang.org/x/net/html"
)

// Walking helpers for the scraped origins. ccRepo has no API, so the
// listing and the downloads both go through parsed HTML.

// findByID returns the first element with the given id attribute.
func findByID(root *html.Node, id string) *html.Node {
	var found *html.Node
	var find func(*html.Node)
	find = func(node *html.Node) {
		if found != nil {
			return
		}
		if node.Type == html.ElementNode && attrVal(node, "id") == id {
			found = node
			return
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			find(c)
		}
	}
	find(root)
	return found
}

// findByClass returns the first element carrying the class name.
func findByClass(root *html.Node, class string) *html.Node {
	var found *html.Node
	var find func(*html.Node)
	find = func(node *html.Node) {
		if found != nil {
			return
		}
		if node.Type == html.ElementNode && hasClass(node, class) {
			found = node
			return
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			find(c)
		}
	}
	find(root)
	return found
}

// findFirst returns the first element with the given tag name.
func findFirst(root *html.Node, tag string) *html.Node {
	var found *html.Node
	var find func(*html.Node)
	find = func(node *html.Node) {
		if found != nil {
			return
		}
		if node.Type == html.ElementNode && node.Data == tag {
			found = node
			return
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			find(c)
		}
	}
	find(root)
	return found
}

// findAll returns every element with the given tag name, in document order.
func findAll(root *html.Node, tag string) []*html.Node {
	var out []*html.Node
	var collect func(*html.Node)
	collect = func(node *html.Node) {
		if node.Type == html.ElementNode && node.Data == tag {
			out = append(out, node)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(root)
	return out
}

// attrVal returns the value of the named attribute, or "".
func attrVal(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// hasClass reports whether the node carries the class name.
func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attrVal(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// textOf collects the text content of a subtree, depth first.
func textOf(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// textWithBreaks collects text content, turning br elements into newlines.
// ccRepo serves preformatted basis set text inside nobr blocks, with br
// separators and non-breaking spaces for alignment.
func textWithBreaks(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		switch {
		case node.Type == html.TextNode:
			sb.WriteString(node.Data)
		case node.Type == html.ElementNode && node.Data == "br":
			sb.WriteByte('\n')
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	text := strings.NewReplacer(" ", " ", "\r", "").Replace(sb.String())
	return strings.Trim(text, "\n")
}
