package split

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zaptest"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
	"golang.org/x/text/transform"
)

func encodeWithTransformer(t *testing.T, data []byte, encoder transform.Transformer) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := transform.NewWriter(&buf, encoder)
	if _, err := w.Write(data); err != nil {
		t.Fatalf("encode sample: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("finalize encoded sample: %v", err)
	}
	return buf.Bytes()
}

func TestDetectUTF(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
		want srcEncoding
	}{
		{"UTF-8 BOM", []byte{0xEF, 0xBB, 0xBF, 0x40}, encUTF8},
		{"UTF-16 BE BOM", []byte{0xFE, 0xFF, 0x00, 0x40}, encUTF16BigEndian},
		{"UTF-16 LE BOM", []byte{0xFF, 0xFE, 0x40, 0x00}, encUTF16LittleEndian},
		{"UTF-32 BE BOM", []byte{0x00, 0x00, 0xFE, 0xFF}, encUTF32BigEndian},
		{"UTF-32 LE BOM", []byte{0xFF, 0xFE, 0x00, 0x00}, encUTF32LittleEndian},
		{"no BOM", []byte("a{}"), encUnknown},
		{"short", []byte{0xEF}, encUnknown},
		{"empty", nil, encUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := detectUTF(tt.buf); got != tt.want {
				t.Errorf("detectUTF() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSelectReader_Panic(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic for invalid encoding")
		}
	}()
	selectReader(bytes.NewReader(nil), srcEncoding(999))
}

func TestCharsetLabel(t *testing.T) {
	tests := []struct {
		head string
		want string
	}{
		{`@charset "windows-1251";`, "windows-1251"},
		{`@charset "UTF-8"; a{}`, "UTF-8"},
		{`@charset 'utf-8';`, ""},
		{`@charset "";`, ""},
		{`@charset "koi8-r"`, ""},
		{` @charset "utf-8";`, ""},
		{`a{}`, ""},
	}
	for _, tt := range tests {
		if got := charsetLabel([]byte(tt.head)); got != tt.want {
			t.Errorf("charsetLabel(%q) = %q, want %q", tt.head, got, tt.want)
		}
	}
}

func TestDecodeSource(t *testing.T) {
	const css = "a::after { content: \"аé\" }"

	tests := []struct {
		name     string
		data     []byte
		fallback bool
		want     string
	}{
		{"plain UTF-8", []byte(css), false, css},
		{"UTF-8 BOM removed", append([]byte{0xEF, 0xBB, 0xBF}, css...), false, css},
		{"UTF-16 LE", encodeWithTransformer(t, []byte(css), unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()), false, css},
		{"UTF-16 BE", encodeWithTransformer(t, []byte(css), unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewEncoder()), false, css},
		{"UTF-32 LE", encodeWithTransformer(t, []byte(css), utf32.UTF32(utf32.LittleEndian, utf32.UseBOM).NewEncoder()), false, css},
		{"UTF-32 BE", encodeWithTransformer(t, []byte(css), utf32.UTF32(utf32.BigEndian, utf32.UseBOM).NewEncoder()), false, css},
		{"BOM wins over fallback", append([]byte{0xEF, 0xBB, 0xBF}, css...), true, css},
		{"charset rule", append([]byte("@charset \"windows-1251\";\n"), 0xE0), false, "@charset \"windows-1251\";\nа"},
		{"charset rule wins over fallback", append([]byte("@charset \"windows-1251\";"), 0xE0), true, "@charset \"windows-1251\";а"},
		{"fallback", []byte{'a', 0xE0}, true, "aа"},
		{"empty", nil, false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fallback = charmap.Windows1251
			data, err := func() ([]byte, error) {
				if tt.fallback {
					return decodeSource(bytes.NewReader(tt.data), fallback)
				}
				return decodeSource(bytes.NewReader(tt.data), nil)
			}()
			if err != nil {
				t.Fatalf("decodeSource() error = %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("decodeSource() = %q, want %q", data, tt.want)
			}
		})
	}
}

func TestDecodeSource_UnknownCharset(t *testing.T) {
	if _, err := decodeSource(bytes.NewReader([]byte(`@charset "no-such-thing"; a{}`)), nil); err == nil {
		t.Error("Expected error for unknown @charset")
	}
}

func TestLookupEncoding(t *testing.T) {
	log := zaptest.NewLogger(t)

	if enc := lookupEncoding("", log); enc != nil {
		t.Errorf("lookupEncoding(\"\") = %v, want nil", enc)
	}
	if enc := lookupEncoding("no-such-charset", log); enc != nil {
		t.Errorf("lookupEncoding(unknown) = %v, want nil", enc)
	}
	enc := lookupEncoding("windows-1251", log)
	if enc == nil {
		t.Fatal("lookupEncoding(windows-1251) = nil")
	}
	if s, err := enc.NewDecoder().String("\xE0"); err != nil || s != "а" {
		t.Errorf("decoded = %q, %v", s, err)
	}
}

func TestIsArchiveFile(t *testing.T) {
	tmpDir := t.TempDir()

	write := func(name string, data []byte) string {
		path := filepath.Join(tmpDir, name)
		if err := os.WriteFile(path, data, 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}
		return path
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	if f, err := zw.Create("a.css"); err != nil {
		t.Fatalf("Failed to create file in zip: %v", err)
	} else {
		f.Write([]byte("a{}"))
	}
	zw.Close()

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"zip", write("styles.zip", buf.Bytes()), true},
		{"zip uppercase extension", write("STYLES.ZIP", buf.Bytes()), true},
		{"zip content with other extension", write("styles.css", buf.Bytes()), false},
		{"zip extension with other content", write("fake.zip", []byte("a { color: red }")), false},
		{"empty zip extension", write("empty.zip", nil), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := isArchiveFile(tt.path)
			if err != nil {
				t.Fatalf("isArchiveFile() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("isArchiveFile() = %v, want %v", got, tt.want)
			}
		})
	}

	if _, err := isArchiveFile("/nonexistent/file.zip"); err == nil {
		t.Error("Expected error for non-existent file")
	}
}

func TestStyleExt(t *testing.T) {
	exts := []string{".css", ".user.css", ".styl"}

	for name, want := range map[string]bool{
		"a.css":         true,
		"A.CSS":         true,
		"site.user.css": true,
		"dir/x.styl":    true,
		"a.scss":        false,
		"a.txt":         false,
		"css":           false,
	} {
		if got := hasStyleExt(name, exts); got != want {
			t.Errorf("hasStyleExt(%q) = %v, want %v", name, got, want)
		}
	}

	for name, want := range map[string]string{
		"a.css":         "a",
		"site.user.css": "site",
		"Site.User.CSS": "Site",
		"x.styl":        "x",
		"notes.txt":     "notes",
		".css":          "",
		"noext":         "noext",
	} {
		if got := trimStyleExt(name, exts); got != want {
			t.Errorf("trimStyleExt(%q) = %q, want %q", name, got, want)
		}
	}
}
