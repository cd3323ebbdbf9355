package adminheader

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func TestInject(t *testing.T) {
	type testCase struct {
		Document string
		Found    bool
	}

	testCases := []testCase{
		{
			Document: `<div id="global-admin-header"></div>`,
			Found:    true,
		},
		{
			Document: `<!DOCTYPE html><html><head><title>Admin</title></head><body><div id="global-admin-header"><span>stale</span> text</div><main>content</main></body></html>`,
			Found:    true,
		},
		{
			Document: `<body><section><div><nav id="global-admin-header">loading…</nav></div></section></body>`,
			Found:    true,
		},
		{
			Document: `<body><div id="admin-header"></div></body>`,
			Found:    false,
		},
	}

	for idx, tc := range testCases {
		t.Run(fmt.Sprintf("Case #%d", idx), func(t *testing.T) {
			doc, err := html.Parse(strings.NewReader(tc.Document))
			if err != nil {
				t.Fatalf("%+v", errors.WithStack(err))
			}

			found, err := Inject(doc)
			if err != nil {
				t.Fatalf("%+v", errors.WithStack(err))
			}

			if e, g := tc.Found, found; e != g {
				t.Fatalf("Inject(): expected '%v', got '%v'", e, g)
			}

			if !tc.Found {
				return
			}

			if e, g := Fragment, renderChildren(t, FindByID(doc, ContainerID)); e != g {
				t.Errorf("container content: expected '%v', got '%v'", e, g)
			}
		})
	}
}

func TestInjectTwice(t *testing.T) {
	doc, err := html.Parse(strings.NewReader(`<body><div id="global-admin-header"></div><p>after</p></body>`))
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if _, err := Inject(doc); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	var first bytes.Buffer
	if err := html.Render(&first, doc); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if _, err := Inject(doc); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	var second bytes.Buffer
	if err := html.Render(&second, doc); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := first.String(), second.String(); e != g {
		t.Errorf("document after second injection: expected '%v', got '%v'", e, g)
	}
}

func TestInjectInconsistentContainer(t *testing.T) {
	container := &html.Node{
		Type: html.ElementNode,
		Data: "div",
		Attr: []html.Attribute{{Key: "id", Val: ContainerID}},
	}
	container.AppendChild(&html.Node{Type: html.TextNode, Data: "loading"})

	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(container)

	found, err := Inject(doc)
	if err == nil {
		t.Fatalf("expected an error for a container without atom")
	}

	if e, g := true, found; e != g {
		t.Errorf("found: expected '%v', got '%v'", e, g)
	}

	if e, g := "loading", renderChildren(t, container); e != g {
		t.Errorf("container content: expected '%v', got '%v'", e, g)
	}

	var output bytes.Buffer
	if err := html.Render(&output, doc); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if err := Rewrite(strings.NewReader(output.String()), &bytes.Buffer{}); err != nil {
		t.Errorf("%+v", errors.WithStack(err))
	}
}

func TestRewriteWithoutContainer(t *testing.T) {
	document := "<!DOCTYPE html>\n<html><body>\n  <h1>Offres</h1>\n  <p class=muted>Aucune offre</p>\n</body></html>\n"

	var output bytes.Buffer
	if err := Rewrite(strings.NewReader(document), &output); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := document, output.String(); e != g {
		t.Errorf("output: expected '%v', got '%v'", e, g)
	}
}

func TestRewrite(t *testing.T) {
	document := `<html><body><div id="global-admin-header"></div><h1>Tableau de bord</h1></body></html>`

	var output bytes.Buffer
	if err := Rewrite(strings.NewReader(document), &output); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	expected := `<html><head></head><body><div id="global-admin-header">` + Fragment + `</div><h1>Tableau de bord</h1></body></html>`

	if e, g := expected, output.String(); e != g {
		t.Errorf("output: expected '%v', got '%v'", e, g)
	}
}

func TestFragmentLinks(t *testing.T) {
	doc, err := html.Parse(strings.NewReader(`<div id="global-admin-header"></div>`))
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if _, err := Inject(doc); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	anchors := collectElements(FindByID(doc, ContainerID), "a")

	if e, g := len(Links), len(anchors); e != g {
		t.Fatalf("len(anchors): expected '%v', got '%v'", e, g)
	}

	for idx, link := range Links {
		anchor := anchors[idx]

		if e, g := link.URL, getAttr(anchor, "href"); e != g {
			t.Errorf("anchors[%d].href: expected '%v', got '%v'", idx, e, g)
		}

		if e, g := link.Label, textContent(anchor); e != g {
			t.Errorf("anchors[%d] text: expected '%v', got '%v'", idx, e, g)
		}
	}
}

func TestFragmentIsInert(t *testing.T) {
	nodes, err := html.ParseFragment(strings.NewReader(Fragment), &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div})
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	allowedTargets := map[string]bool{}
	for _, link := range Links {
		allowedTargets[link.URL] = true
	}

	forbiddenElements := map[string]bool{
		"script": true, "iframe": true, "object": true, "embed": true,
		"img": true, "link": true, "style": true, "form": true,
	}

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if forbiddenElements[n.Data] {
				t.Errorf("unexpected element '%s' in fragment", n.Data)
			}

			for _, attr := range n.Attr {
				switch {
				case strings.HasPrefix(attr.Key, "on"):
					t.Errorf("unexpected event handler attribute '%s' on '%s'", attr.Key, n.Data)
				case attr.Key == "src" || attr.Key == "style":
					t.Errorf("unexpected attribute '%s' on '%s'", attr.Key, n.Data)
				case attr.Key == "href" && !allowedTargets[attr.Val]:
					t.Errorf("unexpected link target '%s'", attr.Val)
				}
			}
		}

		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}

	for _, n := range nodes {
		walk(n)
	}
}

func renderChildren(t *testing.T, n *html.Node) string {
	t.Helper()

	if n == nil {
		t.Fatal("container not found")
	}

	var buff bytes.Buffer
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if err := html.Render(&buff, child); err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}
	}

	return buff.String()
}

func collectElements(n *html.Node, tag string) []*html.Node {
	elements := make([]*html.Node, 0)

	if n.Type == html.ElementNode && n.Data == tag {
		elements = append(elements, n)
	}

	for child := n.FirstChild; child != nil; child = child.NextSibling {
		elements = append(elements, collectElements(child, tag)...)
	}

	return elements
}

func textContent(n *html.Node) string {
	var sb strings.Builder

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}

		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}

	walk(n)

	return sb.String()
}
