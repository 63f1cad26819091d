package compose

import (
	"bytes"
	"fmt"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// attrs is a small alias for readable element construction.
type attrs []html.Attribute

func a(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

// el builds an element node with the given attributes and children.
func el(tag string, attributes attrs, children ...*html.Node) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
		Attr:     attributes,
	}
	for _, c := range children {
		if c != nil {
			n.AppendChild(c)
		}
	}
	return n
}

// txt builds a text node.
func txt(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// Render serializes a composed node to markup.
func Render(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", fmt.Errorf("failed to render document markup: %w", err)
	}
	return buf.String(), nil
}
