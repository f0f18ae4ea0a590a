package htmlutil

import (
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestGetAnchors(t *testing.T) {
	doc := mustDoc(t, `
		<div>
			<a href="/aluno/form/1">Clique	aqui</a>
			<a href="https://example.org/abs">absolute</a>
			<a>no href</a>
		</div>
	`)
	base, _ := url.Parse("https://cpa.cefet-rj.br")

	anchors := GetAnchors(doc.Find("a"), base)
	if len(anchors) != 3 {
		t.Fatalf("expected 3 anchors, got %d", len(anchors))
	}
	if anchors[0].Href != "https://cpa.cefet-rj.br/aluno/form/1" {
		t.Fatalf("relative href not resolved: %q", anchors[0].Href)
	}
	if anchors[0].Text != "Clique aqui" {
		t.Fatalf("unexpected anchor text: %q", anchors[0].Text)
	}
	if anchors[1].Href != "https://example.org/abs" {
		t.Fatalf("absolute href mangled: %q", anchors[1].Href)
	}
}

func TestGetAnchorsWhitespace(t *testing.T) {
	doc := mustDoc(t, "<a href=\"/x\">\n\tPara continuar\n\tclique aqui\n</a>")
	base, _ := url.Parse("https://cpa.cefet-rj.br")

	anchors := GetAnchors(doc.Find("a"), base)
	if len(anchors) != 1 {
		t.Fatalf("expected 1 anchor, got %d", len(anchors))
	}
	if anchors[0].Text != "Para continuar clique aqui" {
		t.Fatalf("whitespace not normalized: %q", anchors[0].Text)
	}
}

func TestFindAnchorByText(t *testing.T) {
	doc := mustDoc(t, `
		<p><a href="/nada">outro link</a></p>
		<p><a href="/aluno/validar/ok">acesse AQUI para continuar</a></p>
	`)
	base, _ := url.Parse("https://cpa.cefet-rj.br")

	a, ok := FindAnchorByText(doc.Find("a"), base, "aqui")
	if !ok {
		t.Fatal("expected to find anchor")
	}
	if a.Href != "https://cpa.cefet-rj.br/aluno/validar/ok" {
		t.Fatalf("unexpected href: %q", a.Href)
	}

	_, ok = FindAnchorByText(doc.Find("a"), base, "inexistente")
	if ok {
		t.Fatal("expected no match")
	}
}
