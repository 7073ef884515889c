package page

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/matzehuels/stc/pkg/errors"
	"github.com/matzehuels/stc/pkg/httputil"
)

// Document is a parsed page plus its listener registry.
type Document struct {
	doc       *goquery.Document
	url       string
	listeners map[ListenerID]*registration
	byNode    map[*html.Node][]ListenerID
	nextID    ListenerID
	nav       string
}

// Parse reads HTML from r.
func Parse(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse page")
	}
	return newDocument(doc, ""), nil
}

// Open parses the HTML file at path.
func Open(path string) (*Document, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeNotFound, err, "page %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()

	d, err := Parse(f)
	if err != nil {
		return nil, err
	}
	d.url = "file://" + path
	return d, nil
}

// Fetch downloads and parses the page at url.
func Fetch(ctx context.Context, f *httputil.Fetcher, url string) (*Document, error) {
	snap, _, err := f.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	d, err := Parse(bytes.NewReader(snap.Body))
	if err != nil {
		return nil, err
	}
	d.url = url
	return d, nil
}

// Load opens target as a URL when it has an http(s) scheme and as a local
// file otherwise.
func Load(ctx context.Context, f *httputil.Fetcher, target string) (*Document, error) {
	if IsURL(target) {
		return Fetch(ctx, f, target)
	}
	return Open(target)
}

// IsURL reports whether target names a remote page.
func IsURL(target string) bool {
	return strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://")
}

func newDocument(doc *goquery.Document, url string) *Document {
	return &Document{
		doc:       doc,
		url:       url,
		listeners: make(map[ListenerID]*registration),
		byNode:    make(map[*html.Node][]ListenerID),
	}
}

// URL returns the address the document was loaded from, if any.
func (d *Document) URL() string { return d.url }

// HTML serialises the current tree, including any class changes.
func (d *Document) HTML() (string, error) {
	return d.doc.Html()
}

// QueryAll returns the elements matching selector in document order.
func (d *Document) QueryAll(selector string) ([]*html.Node, error) {
	m, err := cascadia.Compile(selector)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSelector, err, "invalid selector %q", selector)
	}
	return d.doc.FindMatcher(m).Nodes, nil
}

// AddClass adds class to n if it is not already present.
func (d *Document) AddClass(n *html.Node, class string) {
	d.doc.FindNodes(n).AddClass(class)
}

// RemoveClass removes class from n.
func (d *Document) RemoveClass(n *html.Node, class string) {
	d.doc.FindNodes(n).RemoveClass(class)
}

// HasClass reports whether n carries class.
func (d *Document) HasClass(n *html.Node, class string) bool {
	return d.doc.FindNodes(n).HasClass(class)
}

// ElementsWithClass returns every element carrying class, in document order.
func (d *Document) ElementsWithClass(class string) []*html.Node {
	return d.doc.Find("*").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.HasClass(class)
	}).Nodes
}

// Describe returns a short CSS-like label for n, such as "div#p1.post".
func Describe(n *html.Node) string {
	if n == nil || n.Type != html.ElementNode {
		return ""
	}
	var b strings.Builder
	b.WriteString(n.Data)
	s := goquery.NewDocumentFromNode(n).Selection
	if id, ok := s.Attr("id"); ok && id != "" {
		b.WriteString("#" + id)
	}
	if class, ok := s.Attr("class"); ok {
		for _, c := range strings.Fields(class) {
			b.WriteString("." + c)
		}
	}
	return b.String()
}
