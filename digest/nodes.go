package digest

import (
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/net/html"
)

// telegraphNode mirrors the Telegraph NodeElement type. Children hold either
// nested telegraphNode values or plain strings for text nodes, matching the
// mixed array the API expects.
type telegraphNode struct {
	Tag      string            `json:"tag,omitempty"`
	Attrs    map[string]string `json:"attrs,omitempty"`
	Children []interface{}     `json:"children,omitempty"`
}

// htmlToNodes parses an HTML fragment into the node array Telegraph's
// createPage accepts as content.
func htmlToNodes(fragment string) ([]interface{}, error) {
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return nil, errors.Wrap(err, "fail to parse digest html")
	}

	body := findBody(doc)
	if body == nil {
		return nil, errors.New("no body in parsed digest html")
	}

	nodes := []interface{}{}
	for child := body.FirstChild; child != nil; child = child.NextSibling {
		if node := convertNode(child); node != nil {
			nodes = append(nodes, node)
		}
	}
	return nodes, nil
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if body := findBody(child); body != nil {
			return body
		}
	}
	return nil
}

func convertNode(n *html.Node) interface{} {
	switch n.Type {
	case html.TextNode:
		if strings.TrimSpace(n.Data) == "" {
			return nil
		}
		return n.Data
	case html.ElementNode:
		node := &telegraphNode{Tag: n.Data}
		for _, attr := range n.Attr {
			if attr.Key == "href" || attr.Key == "src" {
				if node.Attrs == nil {
					node.Attrs = map[string]string{}
				}
				node.Attrs[attr.Key] = attr.Val
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			if converted := convertNode(child); converted != nil {
				node.Children = append(node.Children, converted)
			}
		}
		return node
	}
	return nil
}
