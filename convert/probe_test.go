package convert

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestProbeFile(t *testing.T) {
	dir := t.TempDir()
	doc := writeSample(t, dir, "letter.wri")
	text := filepath.Join(dir, "readme.txt")
	if err := os.WriteFile(text, []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		want string
	}{
		{"write", doc, `letter.wri: supported text document, creator "write3", code page not recorded`},
		{"text", text, "readme.txt: not supported"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := probeFile(&buf, tt.path); err != nil {
				t.Fatalf("probeFile() error = %v", err)
			}
			if got := strings.TrimSpace(buf.String()); !strings.HasSuffix(got, tt.want) {
				t.Errorf("probeFile() = %q, want suffix %q", got, tt.want)
			}
		})
	}

	if err := probeFile(&bytes.Buffer{}, filepath.Join(dir, "missing.wri")); err == nil {
		t.Error("Expected error for non-existent file")
	}
}
