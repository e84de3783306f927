package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func newTestLocal(t *testing.T) *Local {
	t.Helper()
	s, err := NewLocal(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func writeFile(t *testing.T, s FileStore, path, data string) {
	t.Helper()
	w, err := s.Write(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := io.WriteString(w, data); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestLocalWriteAndRead(t *testing.T) {
	s := newTestLocal(t)
	ctx := context.Background()

	writeFile(t, s, "songs/tune.mid", "MThd fake")

	r, err := s.Read(ctx, "songs/tune.mid")
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "MThd fake" {
		t.Fatalf("got %q", got)
	}
}

func TestLocalReadNotExist(t *testing.T) {
	s := newTestLocal(t)
	if _, err := s.Read(context.Background(), "no-such.mid"); !os.IsNotExist(err) {
		t.Fatalf("expected os.ErrNotExist, got %v", err)
	}
}

func TestLocalExistsDelete(t *testing.T) {
	s := newTestLocal(t)
	ctx := context.Background()

	ok, err := s.Exists(ctx, "tune.mid")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("expected false before write")
	}

	writeFile(t, s, "tune.mid", "x")
	ok, err = s.Exists(ctx, "tune.mid")
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected true after write")
	}

	if err := s.Delete(ctx, "tune.mid"); err != nil {
		t.Fatal(err)
	}
	// Idempotent.
	if err := s.Delete(ctx, "tune.mid"); err != nil {
		t.Fatal(err)
	}
	ok, _ = s.Exists(ctx, "tune.mid")
	if ok {
		t.Fatal("file should be gone")
	}
}

func TestLocalList(t *testing.T) {
	s := newTestLocal(t)
	ctx := context.Background()

	writeFile(t, s, "b.mid", "bb")
	writeFile(t, s, "a.mid", "aa")
	writeFile(t, s, "nested/c.midi", "cc")
	writeFile(t, s, "notes.txt", "not midi")

	files, err := s.List(ctx, ".mid", ".midi")
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, f := range files {
		names = append(names, f.Name)
		if f.Size == 0 {
			t.Errorf("%s has zero size", f.Name)
		}
		if f.ModTime.IsZero() {
			t.Errorf("%s has zero mod time", f.Name)
		}
	}
	want := []string{"a.mid", "b.mid", "nested/c.midi"}
	if len(names) != len(want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}

	// Empty suffix list matches everything.
	all, err := s.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 4 {
		t.Errorf("unfiltered list = %d entries, want 4", len(all))
	}
}

func TestLocalAbs(t *testing.T) {
	s := newTestLocal(t)
	abs, err := s.Abs("tune.mid")
	if err != nil {
		t.Fatal(err)
	}
	if abs == "tune.mid" {
		t.Error("Abs should return an absolute path")
	}
}

func TestLocalRejectsEscapingPaths(t *testing.T) {
	s := newTestLocal(t)
	ctx := context.Background()

	bad := []string{
		"../escape.mid",
		"nested/../../escape.mid",
		"/etc/escape.mid",
		"..",
	}
	for _, path := range bad {
		t.Run(path, func(t *testing.T) {
			if _, err := s.Write(ctx, path); !errors.Is(err, ErrInvalidPath) {
				t.Errorf("Write: err = %v, want ErrInvalidPath", err)
			}
			if _, err := s.Read(ctx, path); !errors.Is(err, ErrInvalidPath) {
				t.Errorf("Read: err = %v, want ErrInvalidPath", err)
			}
			if err := s.Delete(ctx, path); !errors.Is(err, ErrInvalidPath) {
				t.Errorf("Delete: err = %v, want ErrInvalidPath", err)
			}
			if _, err := s.Exists(ctx, path); !errors.Is(err, ErrInvalidPath) {
				t.Errorf("Exists: err = %v, want ErrInvalidPath", err)
			}
			if _, err := s.Abs(path); !errors.Is(err, ErrInvalidPath) {
				t.Errorf("Abs: err = %v, want ErrInvalidPath", err)
			}
		})
	}

	// Nothing may appear next to the store root.
	if _, err := os.Stat(filepath.Join(filepath.Dir(s.Root()), "escape.mid")); !os.IsNotExist(err) {
		t.Fatalf("escape.mid exists outside the root: %v", err)
	}

	// Dot traversal that stays inside the root is still local.
	w, err := s.Write(ctx, "nested/../ok.mid")
	if err != nil {
		t.Fatalf("in-root traversal rejected: %v", err)
	}
	w.Close()
}
