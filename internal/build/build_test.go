package build

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func testWorkspace(t *testing.T) *Workspace {
	t.Helper()
	tmp := t.TempDir()
	w, err := OpenAt(filepath.Join(tmp, "builds"), filepath.Join(tmp, "sources"))
	if err != nil {
		t.Fatal(err)
	}
	return w
}

func TestWorkspaceLayout(t *testing.T) {
	w := testWorkspace(t)

	src := w.SourceDir("gmp", "6.3.0")
	if got := filepath.Base(src); got != "gmp-6.3.0" {
		t.Errorf("SourceDir base = %q, want %q", got, "gmp-6.3.0")
	}
	install := w.InstallDir("gmp", "6.3.0", "ab12cd34ef56")
	if got := filepath.Base(install); got != "gmp@6.3.0-ab12cd34ef56" {
		t.Errorf("InstallDir base = %q, want %q", got, "gmp@6.3.0-ab12cd34ef56")
	}
	if got := w.BuildDir("gmp", "6.3.0", "ab12cd34ef56"); got != install+".build" {
		t.Errorf("BuildDir = %q, want %q", got, install+".build")
	}
}

func TestCacheRoundTrip(t *testing.T) {
	w := testWorkspace(t)

	cache, err := w.LoadCache()
	if err != nil {
		t.Fatalf("LoadCache on empty workspace: %v", err)
	}
	if _, ok := cache.Get("6.3.0", "id"); ok {
		t.Error("empty cache reported a hit")
	}

	entry := &Entry{ID: "linux-x86_64|cxx=false", Metadata: "{}", BuildTime: time.Now()}
	cache.Set("6.3.0", "id", entry)
	if err := w.SaveCache(cache); err != nil {
		t.Fatalf("SaveCache: %v", err)
	}

	loaded, err := w.LoadCache()
	if err != nil {
		t.Fatalf("LoadCache: %v", err)
	}
	got, ok := loaded.Get("6.3.0", "id")
	if !ok {
		t.Fatal("saved entry not found")
	}
	if got.ID != entry.ID {
		t.Errorf("ID = %q, want %q", got.ID, entry.ID)
	}
}

func TestCacheKeysAreVariantScoped(t *testing.T) {
	cache := &Cache{}
	cache.Set("6.3.0", "aaa", &Entry{ID: "a"})
	cache.Set("6.2.1", "aaa", &Entry{ID: "b"})
	cache.Set("6.3.0", "bbb", &Entry{ID: "c"})

	for _, tc := range []struct {
		version, id, want string
	}{
		{"6.3.0", "aaa", "a"},
		{"6.2.1", "aaa", "b"},
		{"6.3.0", "bbb", "c"},
	} {
		entry, ok := cache.Get(tc.version, tc.id)
		if !ok || entry.ID != tc.want {
			t.Errorf("Get(%s, %s) = %+v, want ID %q", tc.version, tc.id, entry, tc.want)
		}
	}
}

func TestLock(t *testing.T) {
	w := testWorkspace(t)
	ctx := context.Background()

	unlock, err := w.Lock(ctx, "gmp", "6.3.0", "id")
	if err != nil {
		t.Fatalf("Lock: %v", err)
	}

	// A second lock attempt must block until released or the context ends.
	ctx2, cancel := context.WithTimeout(ctx, 300*time.Millisecond)
	defer cancel()
	if _, err := w.Lock(ctx2, "gmp", "6.3.0", "id"); err == nil {
		t.Fatal("second Lock succeeded while held")
	}

	unlock()
	unlock2, err := w.Lock(ctx, "gmp", "6.3.0", "id")
	if err != nil {
		t.Fatalf("Lock after unlock: %v", err)
	}
	unlock2()

	if _, err := os.Stat(w.InstallDir("gmp", "6.3.0", "id") + ".lock"); !os.IsNotExist(err) {
		t.Error("lock file left behind after unlock")
	}
}
