package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/stc/pkg/errors"
	"github.com/matzehuels/stc/pkg/selection"
	"github.com/matzehuels/stc/pkg/storage"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"line one\n  line two", 40, "line one line two"},
		{"abcdefghij", 5, "abcd…"},
		{"héllo wörld", 6, "héllo…"},
		{"anything", 0, "anything"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestItemsTable(t *testing.T) {
	var items selection.Set
	for i := 0; i < 12; i++ {
		items = items.Append(selection.Item{Type: selection.TypeTestimonial, Text: fmt.Sprintf("post %d\nsecond line", i)})
	}
	items = items.Append(selection.Item{Type: selection.TypeMember, Text: "Jane"})

	out := itemsTable(items, 40)
	for _, want := range []string{"#", "Type", "post 0 second line", "member", "Jane", "13"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestParseModeFlag(t *testing.T) {
	tests := []struct {
		in      string
		want    selection.Mode
		wantErr bool
	}{
		{"testimonial", selection.ModeTestimonial, false},
		{"Member", selection.ModeMember, false},
		{"none", selection.ModeNone, false},
		{"", selection.ModeNone, false},
		{"bogus", selection.ModeNone, true},
	}
	for _, tt := range tests {
		got, err := parseModeFlag(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseModeFlag(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if tt.wantErr && !errors.Is(err, errors.ErrCodeInvalidMode) {
			t.Errorf("parseModeFlag(%q) code = %s, want INVALID_MODE", tt.in, errors.GetCode(err))
		}
		if got != tt.want {
			t.Errorf("parseModeFlag(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// testCLI returns a CLI whose file store and page cache live in temp dirs.
func testCLI(t *testing.T) (*CLI, string) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	prev := out
	out = io.Discard
	t.Cleanup(func() { out = prev })

	dir := t.TempDir()
	c := New(io.Discard, LogInfo)
	c.cfg = DefaultConfig()
	c.cfg.Storage.Dir = dir
	return c, dir
}

func storedItems(t *testing.T, dir string) selection.Set {
	t.Helper()
	store, err := storage.NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	items, err := selection.NewRepository(store).Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	return items
}

func writeFeed(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "feed.html")
	if err := os.WriteFile(path, []byte(feed), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunCapture(t *testing.T) {
	c, dir := testCLI(t)
	ctx := withLogger(context.Background(), c.Logger)
	path := writeFeed(t)

	if err := c.runCapture(ctx, path, selection.ModeTestimonial, []string{"#p2", "#m1", "#p1"}); err != nil {
		t.Fatalf("runCapture() error: %v", err)
	}

	items := storedItems(t, dir)
	want := []string{"Best decision this year.", "Great community, learned a lot."}
	if len(items) != len(want) {
		t.Fatalf("stored %d items, want %d: %+v", len(items), len(want), items)
	}
	for i, w := range want {
		if items[i].Text != w || items[i].Type != selection.TypeTestimonial {
			t.Errorf("item %d = %+v, want testimonial %q", i, items[i], w)
		}
	}

	// A second run appends to the persisted selection.
	if err := c.runCapture(ctx, path, selection.ModeMember, []string{"div.member"}); err != nil {
		t.Fatal(err)
	}
	items = storedItems(t, dir)
	if len(items) != 3 || items[2] != (selection.Item{Type: selection.TypeMember, Text: "Jane Doe"}) {
		t.Errorf("after member capture: %+v", items)
	}
}

func TestRunCapture_MissingPage(t *testing.T) {
	c, _ := testCLI(t)
	ctx := withLogger(context.Background(), c.Logger)

	err := c.runCapture(ctx, filepath.Join(t.TempDir(), "missing.html"), selection.ModeTestimonial, []string{"div"})
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("error = %v, want NOT_FOUND", err)
	}
}

func TestOpenStore_Ephemeral(t *testing.T) {
	c, dir := testCLI(t)
	store, err := c.openStore(context.Background(), true)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	if _, ok := store.(*storage.MemoryStore); !ok {
		t.Errorf("ephemeral store is %T, want *storage.MemoryStore", store)
	}
	if entries, _ := os.ReadDir(dir); len(entries) != 0 {
		t.Error("ephemeral store should not touch the storage dir")
	}
}
