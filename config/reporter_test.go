package config

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readArchive(t *testing.T, name string) map[string]string {
	t.Helper()
	zr, err := zip.OpenReader(name)
	if err != nil {
		t.Fatalf("open report: %v", err)
	}
	defer zr.Close()

	out := make(map[string]string)
	for _, f := range zr.File {
		r, err := f.Open()
		if err != nil {
			t.Fatalf("open entry %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(r)
		r.Close()
		if err != nil {
			t.Fatalf("read entry %s: %v", f.Name, err)
		}
		out[f.Name] = string(data)
	}
	return out
}

func TestReport_StoreAndClose(t *testing.T) {
	tmpDir := t.TempDir()

	conf := ReporterConfig{Destination: filepath.Join(tmpDir, "report.zip")}
	r, err := conf.Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	logFile := filepath.Join(tmpDir, "final.log")
	if err := os.WriteFile(logFile, []byte("log line"), 0644); err != nil {
		t.Fatalf("write log: %v", err)
	}

	r.Store("final.log", logFile)
	r.Store("missing.log", filepath.Join(tmpDir, "does-not-exist"))
	r.StoreData("trace/doc.dump", []byte("openDocument"))
	r.StoreData("trace/doc.dump", []byte("second"))

	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	files := readArchive(t, conf.Destination)
	if files["final.log"] != "log line" {
		t.Errorf("final.log = %q, want %q", files["final.log"], "log line")
	}
	if files["trace/doc.dump"] != "openDocument" {
		t.Errorf("trace/doc.dump = %q", files["trace/doc.dump"])
	}
	if _, ok := files["missing.log"]; ok {
		t.Error("absent file must not be archived")
	}
	versioned := 0
	for name := range files {
		if strings.HasPrefix(name, "trace/doc.dump-") {
			versioned++
		}
	}
	if versioned != 1 {
		t.Errorf("expected one versioned duplicate entry, got %d", versioned)
	}
	if !strings.Contains(files["MANIFEST"], "final.log") {
		t.Errorf("MANIFEST does not mention stored file: %q", files["MANIFEST"])
	}
}

func TestReport_StoreConflict(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	r.Store("a", "/tmp/one")

	defer func() {
		if recover() == nil {
			t.Error("expected panic when overwriting stored path")
		}
	}()
	r.Store("a", "/tmp/two")
}

func TestReportClose_NilReport(t *testing.T) {
	var r *Report
	if err := r.Close(); err != nil {
		t.Errorf("Close() on nil report = %v", err)
	}
	if r.Name() != "" {
		t.Errorf("Name() on nil report = %q", r.Name())
	}
	// must not panic
	r.Store("x", "y")
	r.StoreData("x", []byte("y"))
}

func TestReportClose_NilFile(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	if err := r.Close(); err != nil {
		t.Errorf("Close() with nil file = %v", err)
	}
}
