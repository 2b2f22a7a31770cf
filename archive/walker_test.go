package archive

import (
	"archive/zip"
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

type zipEntry struct {
	name    string
	content string
}

func makeZip(t *testing.T, entries []zipEntry) string {
	t.Helper()

	zipPath := filepath.Join(t.TempDir(), "styles.zip")
	zipFile, err := os.Create(zipPath)
	if err != nil {
		t.Fatalf("Failed to create zip file: %v", err)
	}
	defer zipFile.Close()

	w := zip.NewWriter(zipFile)
	for _, e := range entries {
		fw, err := w.Create(e.name)
		if err != nil {
			t.Fatalf("Failed to create %s in zip: %v", e.name, err)
		}
		if _, err := fw.Write([]byte(e.content)); err != nil {
			t.Fatalf("Failed to write %s: %v", e.name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to finish zip: %v", err)
	}
	return zipPath
}

func isCSS(name string) bool {
	return strings.HasSuffix(name, ".css")
}

func collect(t *testing.T, zipPath, prefix string, match MatchFunc) []string {
	t.Helper()

	var visited []string
	err := Walk(zipPath, prefix, match, func(archive string, file *zip.File) error {
		if archive != zipPath {
			t.Errorf("archive = %s, want %s", archive, zipPath)
		}
		visited = append(visited, file.Name)
		return nil
	})
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	return visited
}

func TestWalk(t *testing.T) {
	zipPath := makeZip(t, []zipEntry{
		{"site/a10.css", "a10"},
		{"site/a2.css", "a2"},
		{"site/readme.txt", "readme"},
		{"site/a1.css", "a1"},
		{"other/b.css", "b"},
		{"top.css", "top"},
		{"site/", ""},
	})

	tests := []struct {
		name   string
		prefix string
		match  MatchFunc
		want   []string
	}{
		{"prefix and match in natural order", "site/", isCSS, []string{"site/a1.css", "site/a2.css", "site/a10.css"}},
		{"prefix without match", "site/", nil, []string{"site/a1.css", "site/a2.css", "site/a10.css", "site/readme.txt"}},
		{"everything css", "", isCSS, []string{"other/b.css", "site/a1.css", "site/a2.css", "site/a10.css", "top.css"}},
		{"single file", "top.css", isCSS, []string{"top.css"}},
		{"nothing", "missing/", nil, nil},
		{"case sensitive prefix", "Site/", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := collect(t, zipPath, tt.prefix, tt.match); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("visited %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWalk_Content(t *testing.T) {
	zipPath := makeZip(t, []zipEntry{{"a.css", "a { color: red }"}})

	err := Walk(zipPath, "", nil, func(_ string, file *zip.File) error {
		r, err := file.Open()
		if err != nil {
			return err
		}
		defer r.Close()
		data, err := io.ReadAll(r)
		if err != nil {
			return err
		}
		if string(data) != "a { color: red }" {
			t.Errorf("content = %q", data)
		}
		return nil
	})
	if err != nil {
		t.Errorf("Walk() error = %v", err)
	}
}

func TestWalk_EarlyTermination(t *testing.T) {
	zipPath := makeZip(t, []zipEntry{{"1.css", ""}, {"2.css", ""}, {"3.css", ""}})

	stopErr := errors.New("stop")
	count := 0
	err := Walk(zipPath, "", nil, func(string, *zip.File) error {
		if count++; count == 2 {
			return stopErr
		}
		return nil
	})
	if !errors.Is(err, stopErr) {
		t.Errorf("Walk() error = %v, want %v", err, stopErr)
	}
	if count != 2 {
		t.Errorf("visited %d files, want 2", count)
	}
}

func TestWalk_UnsafeEntries(t *testing.T) {
	for _, name := range []string{"../evil.css", "a/../../evil.css", "/etc/evil.css", `..\evil.css`} {
		t.Run(name, func(t *testing.T) {
			zipPath := makeZip(t, []zipEntry{{"good.css", ""}, {name, ""}})
			visited := 0
			err := Walk(zipPath, "", nil, func(string, *zip.File) error {
				visited++
				return nil
			})
			if err == nil {
				t.Error("expected error for unsafe entry")
			}
			if visited != 0 {
				t.Errorf("visited %d files before rejecting archive", visited)
			}
		})
	}
}

func TestWalk_InvalidArchive(t *testing.T) {
	noop := func(string, *zip.File) error { return nil }

	if err := Walk("/nonexistent/file.zip", "", nil, noop); err == nil {
		t.Error("expected error for missing archive")
	}

	notZip := filepath.Join(t.TempDir(), "fake.zip")
	if err := os.WriteFile(notZip, []byte("a { color: red }"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	if err := Walk(notZip, "", nil, noop); err == nil {
		t.Error("expected error for invalid archive")
	}
}
