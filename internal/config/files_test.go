package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func touch(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("x"), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestExpandGlobs(t *testing.T) {
	dir := t.TempDir()
	a := touch(t, dir, "a.html")
	b := touch(t, dir, "b.html")
	touch(t, dir, "c.txt")

	files, err := ExpandGlobs([]string{filepath.Join(dir, "*.html")})
	if err != nil {
		t.Fatalf("ExpandGlobs() error = %v", err)
	}
	if len(files) != 2 || files[0] != a || files[1] != b {
		t.Errorf("ExpandGlobs() = %v, want [%s %s]", files, a, b)
	}
}

func TestExpandGlobsDeduplicates(t *testing.T) {
	dir := t.TempDir()
	a := touch(t, dir, "a.html")

	files, err := ExpandGlobs([]string{a, filepath.Join(dir, "*.html")})
	if err != nil {
		t.Fatalf("ExpandGlobs() error = %v", err)
	}
	if len(files) != 1 {
		t.Errorf("ExpandGlobs() = %v, want a single entry", files)
	}
}

func TestExpandGlobsErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name     string
		patterns []string
	}{
		{"empty input", nil},
		{"missing file", []string{filepath.Join(dir, "absent.html")}},
		{"glob without matches", []string{filepath.Join(dir, "*.html")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ExpandGlobs(tt.patterns); err == nil {
				t.Error("ExpandGlobs() expected error, got nil")
			}
		})
	}
}

func TestDeriveOutputPath(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		outputDir string
		want      string
	}{
		{"next to input", filepath.Join("logs", "round.html"), "", filepath.Join("logs", "filtered_round.html")},
		{"bare name", "round.html", "", "filtered_round.html"},
		{"output dir", filepath.Join("logs", "round.html"), "out", filepath.Join("out", "filtered_round.html")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveOutputPath(tt.input, tt.outputDir)
			if got != tt.want {
				t.Errorf("DeriveOutputPath(%q, %q) = %q, want %q", tt.input, tt.outputDir, got, tt.want)
			}
		})
	}
}

func TestWriteDocumentRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := touch(t, dir, "filtered_round.html")

	err := WriteDocument(path, "new content", false)
	if err == nil {
		t.Fatal("WriteDocument() expected error, got nil")
	}

	data, readErr := os.ReadFile(path)
	if readErr != nil {
		t.Fatalf("ReadFile() error = %v", readErr)
	}
	if string(data) != "x" {
		t.Errorf("existing file was modified: %q", data)
	}
}

func TestWriteDocumentOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := touch(t, dir, "filtered_round.html")

	if err := WriteDocument(path, "new content", true); err != nil {
		t.Fatalf("WriteDocument() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "new content" {
		t.Errorf("file content = %q, want %q", data, "new content")
	}
}

func TestWriteDocumentCreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "deeper", "filtered_round.html")

	if err := WriteDocument(path, "content", false); err != nil {
		t.Fatalf("WriteDocument() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), "content") {
		t.Errorf("file content = %q, want %q", data, "content")
	}
}
