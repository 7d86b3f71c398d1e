package archive

import (
	"archive/zip"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/text/encoding/charmap"
)

type zipEntry struct {
	name    string
	content string
	nonUTF8 bool
	dir     bool
}

func writeZip(t *testing.T, entries []zipEntry) string {
	t.Helper()

	zipPath := filepath.Join(t.TempDir(), "test.zip")
	zf, err := os.Create(zipPath)
	if err != nil {
		t.Fatalf("Failed to create zip file: %v", err)
	}
	defer zf.Close()

	w := zip.NewWriter(zf)
	for _, e := range entries {
		hdr := &zip.FileHeader{Name: e.name, NonUTF8: e.nonUTF8, Method: zip.Deflate}
		if e.dir {
			hdr.SetMode(os.ModeDir | 0755)
		}
		fw, err := w.CreateHeader(hdr)
		if err != nil {
			t.Fatalf("Failed to create %s in zip: %v", e.name, err)
		}
		if !e.dir {
			if _, err := fw.Write([]byte(e.content)); err != nil {
				t.Fatalf("Failed to write %s: %v", e.name, err)
			}
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to finish zip: %v", err)
	}
	return zipPath
}

func collect(t *testing.T, zipPath, prefix string, opts ...Option) []string {
	t.Helper()

	var visited []string
	err := Walk(context.Background(), zipPath, prefix, func(archive string, e Entry) error {
		if archive != zipPath {
			t.Errorf("archive = %s, want %s", archive, zipPath)
		}
		visited = append(visited, e.Path)
		return nil
	}, opts...)
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	return visited
}

func TestWalk(t *testing.T) {
	zipPath := writeZip(t, []zipEntry{
		{name: "letters/", dir: true},
		{name: "letters/first.wri", content: "first"},
		{name: "letters/second.wri", content: "second"},
		{name: "Memos/memo.doc", content: "memo"},
		{name: "readme.txt", content: "readme"},
	})

	tests := []struct {
		name   string
		prefix string
		want   []string
	}{
		{"prefix", "letters/", []string{"letters/first.wri", "letters/second.wri"}},
		{"single file", "letters/second.wri", []string{"letters/second.wri"}},
		{"case sensitive", "memos/", nil},
		{"no match", "missing/", nil},
		{"everything", "", []string{"letters/first.wri", "letters/second.wri", "Memos/memo.doc", "readme.txt"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := collect(t, zipPath, tt.prefix)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("visited %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWalk_CodePage(t *testing.T) {
	raw, err := charmap.CodePage866.NewEncoder().String("Книги/письмо.wri")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	zipPath := writeZip(t, []zipEntry{
		{name: raw, content: "letter", nonUTF8: true},
		{name: "Книги/заметка.wri", content: "note"},
	})

	got := collect(t, zipPath, "Книги/", WithCodePage(charmap.CodePage866))
	want := []string{"Книги/письмо.wri", "Книги/заметка.wri"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("with code page visited %v, want %v", got, want)
	}

	got = collect(t, zipPath, "Книги/")
	if len(got) != 1 || got[0] != "Книги/заметка.wri" {
		t.Errorf("without code page visited %v", got)
	}
}

func TestWalk_UnsafePath(t *testing.T) {
	for _, name := range []string{"../evil.wri", "docs/../../evil.wri", "/etc/evil.wri"} {
		t.Run(name, func(t *testing.T) {
			zipPath := writeZip(t, []zipEntry{{name: "good.wri", content: "x"}, {name: name, content: "x"}})
			err := Walk(context.Background(), zipPath, "", func(string, Entry) error { return nil })
			if err == nil {
				t.Error("expected error for unsafe entry path")
			}
		})
	}
}

func TestWalk_Errors(t *testing.T) {
	zipPath := writeZip(t, []zipEntry{
		{name: "a.wri", content: "a"},
		{name: "b.wri", content: "b"},
		{name: "c.wri", content: "c"},
	})

	t.Run("walkFn stops walk", func(t *testing.T) {
		stop := errors.New("stop walking")
		visited := 0
		err := Walk(context.Background(), zipPath, "", func(string, Entry) error {
			visited++
			if visited == 2 {
				return stop
			}
			return nil
		})
		if !errors.Is(err, stop) {
			t.Errorf("Walk() error = %v, want %v", err, stop)
		}
		if visited != 2 {
			t.Errorf("visited %d files, want 2", visited)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := Walk(ctx, zipPath, "", func(string, Entry) error {
			t.Error("walkFn must not be called")
			return nil
		})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Walk() error = %v, want context.Canceled", err)
		}
	})

	t.Run("nonexistent file", func(t *testing.T) {
		if err := Walk(context.Background(), filepath.Join(t.TempDir(), "missing.zip"), "", func(string, Entry) error { return nil }); err == nil {
			t.Error("expected error for nonexistent file")
		}
	})

	t.Run("not a zip", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.zip")
		if err := os.WriteFile(bad, []byte("not a zip file"), 0644); err != nil {
			t.Fatal(err)
		}
		if err := Walk(context.Background(), bad, "", func(string, Entry) error { return nil }); err == nil {
			t.Error("expected error for invalid zip file")
		}
	})
}

func TestEntry_ReadAll(t *testing.T) {
	zipPath := writeZip(t, []zipEntry{{name: "doc.wri", content: "document content"}})

	tests := []struct {
		name    string
		limit   uint64
		wantErr bool
	}{
		{"no limit", 0, false},
		{"within limit", 1024, false},
		{"too large", 4, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Walk(context.Background(), zipPath, "", func(_ string, e Entry) error {
				data, err := e.ReadAll(tt.limit)
				if tt.wantErr {
					if err == nil {
						t.Error("expected error")
					}
					return nil
				}
				if err != nil {
					return err
				}
				if string(data) != "document content" {
					t.Errorf("content = %q", data)
				}
				return nil
			})
			if err != nil {
				t.Errorf("Walk() error = %v", err)
			}
		})
	}
}
