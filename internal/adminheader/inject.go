package adminheader

import (
	"bytes"
	"io"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func init() {
	// Fragment is static: a parse failure is a programming error.
	if _, err := parseFragment(&html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}); err != nil {
		panic(errors.WithStack(err))
	}
}

// Inject replaces the content of the document's container element with
// Fragment, parsed in the context of the container. The document must be fully
// parsed. It reports whether the container was found; a missing container, or
// a fragment that cannot be parsed in its context, leaves doc untouched.
func Inject(doc *html.Node) (bool, error) {
	container := FindByID(doc, ContainerID)
	if container == nil {
		return false, nil
	}

	nodes, err := parseFragment(container)
	if err != nil {
		return true, errors.Wrapf(err, "could not parse header in '%s' container", container.Data)
	}

	for child := container.FirstChild; child != nil; {
		next := child.NextSibling
		container.RemoveChild(child)
		child = next
	}

	for _, n := range nodes {
		container.AppendChild(n)
	}

	return true, nil
}

// Rewrite parses the document read from r, injects the header and renders the
// result to w. Documents without container are copied verbatim.
func Rewrite(r io.Reader, w io.Writer) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return errors.WithStack(err)
	}

	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return errors.WithStack(err)
	}

	found, err := Inject(doc)
	if err != nil {
		return errors.WithStack(err)
	}

	if !found {
		if _, err := w.Write(data); err != nil {
			return errors.WithStack(err)
		}

		return nil
	}

	if err := html.Render(w, doc); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// FindByID returns the first element of the tree rooted at n whose id
// attribute equals id, or nil.
func FindByID(n *html.Node, id string) *html.Node {
	if n == nil {
		return nil
	}

	if n.Type == html.ElementNode && getAttr(n, "id") == id {
		return n
	}

	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if found := FindByID(child, id); found != nil {
			return found
		}
	}

	return nil
}

func parseFragment(context *html.Node) ([]*html.Node, error) {
	nodes, err := html.ParseFragment(strings.NewReader(Fragment), context)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return nodes, nil
}

func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}

	return ""
}
