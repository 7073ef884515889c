package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func testStoreContract(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	data, ok, err := s.Get(ctx, "selectedItems")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if ok || data != nil {
		t.Fatalf("Get on empty store = (%q, %v), want miss", data, ok)
	}

	if err := s.Set(ctx, "selectedItems", []byte(`[{"type":"member","text":"x"}]`)); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, ok, err = s.Get(ctx, "selectedItems")
	if err != nil || !ok {
		t.Fatalf("Get after Set = (%v, %v)", ok, err)
	}
	if string(data) != `[{"type":"member","text":"x"}]` {
		t.Errorf("Get = %q", data)
	}

	// Last write wins.
	if err := s.Set(ctx, "selectedItems", []byte(`[]`)); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, _, _ = s.Get(ctx, "selectedItems")
	if string(data) != `[]` {
		t.Errorf("Get after overwrite = %q, want []", data)
	}

	if err := s.Delete(ctx, "selectedItems"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "selectedItems"); ok {
		t.Error("key should be gone after Delete")
	}
	if err := s.Delete(ctx, "selectedItems"); err != nil {
		t.Errorf("Delete of missing key should not fail: %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	testStoreContract(t, s)
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	buf := []byte("abc")
	_ = s.Set(ctx, "k", buf)
	buf[0] = 'z'

	got, _, _ := s.Get(ctx, "k")
	if string(got) != "abc" {
		t.Errorf("stored value mutated through caller slice: %q", got)
	}
	got[1] = 'z'
	again, _, _ := s.Get(ctx, "k")
	if string(again) != "abc" {
		t.Errorf("stored value mutated through returned slice: %q", again)
	}
}

func TestMemoryStoreClosed(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	s.Close()

	if _, _, err := s.Get(ctx, "k"); err != ErrClosed {
		t.Errorf("Get after Close = %v, want ErrClosed", err)
	}
	if err := s.Set(ctx, "k", nil); err != ErrClosed {
		t.Errorf("Set after Close = %v, want ErrClosed", err)
	}
}

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	testStoreContract(t, s)
}

func TestFileStoreSharedDirectory(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	a, _ := NewFileStore(dir)
	b, _ := NewFileStore(dir)

	if err := a.Set(ctx, "selectedItems", []byte(`[1]`)); err != nil {
		t.Fatal(err)
	}
	got, ok, err := b.Get(ctx, "selectedItems")
	if err != nil || !ok || string(got) != `[1]` {
		t.Errorf("second store Get = (%q, %v, %v)", got, ok, err)
	}
}

func TestFileStoreCorruptEntry(t *testing.T) {
	ctx := context.Background()
	s, _ := NewFileStore(t.TempDir())

	path := s.path("selectedItems")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, _, err := s.Get(ctx, "selectedItems"); err == nil {
		t.Error("Get should report a corrupt entry")
	}
}

func TestFileStorePathLayout(t *testing.T) {
	dir := t.TempDir()
	s, _ := NewFileStore(dir)

	p := s.path("selectedItems")
	hash := Hash([]byte("selectedItems"))
	want := filepath.Join(dir, hash[:2], hash[2:]+".json")
	if p != want {
		t.Errorf("path = %q, want %q", p, want)
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, Config{Backend: BackendMemory})
	if err != nil {
		t.Fatalf("Open(memory): %v", err)
	}
	if _, ok := s.(*MemoryStore); !ok {
		t.Errorf("Open(memory) = %T", s)
	}

	s, err = Open(ctx, Config{Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("Open(default): %v", err)
	}
	if _, ok := s.(*FileStore); !ok {
		t.Errorf("Open(default) = %T, want *FileStore", s)
	}

	if _, err := Open(ctx, Config{Backend: BackendFile}); err == nil {
		t.Error("Open(file) without dir should fail")
	}
	if _, err := Open(ctx, Config{Backend: "etcd"}); err == nil {
		t.Error("Open(etcd) should fail")
	}
}
