package split

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
)

type srcEncoding int

const (
	encUnknown srcEncoding = iota
	encUTF8
	encUTF16BigEndian
	encUTF16LittleEndian
	encUTF32BigEndian
	encUTF32LittleEndian
)

// charsetPrefix is the only form of @charset rule stylesheets may start with.
const charsetPrefix = `@charset "`

func isUTF32BigEndianBOM4(buf []byte) bool {
	return len(buf) >= 4 && buf[0] == 0x00 && buf[1] == 0x00 && buf[2] == 0xFE && buf[3] == 0xFF
}

func isUTF32LittleEndianBOM4(buf []byte) bool {
	return len(buf) >= 4 && buf[0] == 0xFF && buf[1] == 0xFE && buf[2] == 0x00 && buf[3] == 0x00
}

func isUTF8BOM3(buf []byte) bool {
	return len(buf) >= 3 && buf[0] == 0xEF && buf[1] == 0xBB && buf[2] == 0xBF
}

func isUTF16BigEndianBOM2(buf []byte) bool {
	return len(buf) >= 2 && buf[0] == 0xFE && buf[1] == 0xFF
}

func isUTF16LittleEndianBOM2(buf []byte) bool {
	return len(buf) >= 2 && buf[0] == 0xFF && buf[1] == 0xFE
}

// detectUTF looks for byte order mark. UTF-32 must be checked before UTF-16.
func detectUTF(buf []byte) srcEncoding {
	switch {
	case isUTF32BigEndianBOM4(buf):
		return encUTF32BigEndian
	case isUTF32LittleEndianBOM4(buf):
		return encUTF32LittleEndian
	case isUTF8BOM3(buf):
		return encUTF8
	case isUTF16BigEndianBOM2(buf):
		return encUTF16BigEndian
	case isUTF16LittleEndianBOM2(buf):
		return encUTF16LittleEndian
	}
	return encUnknown
}

// selectReader returns reader producing UTF-8 without BOM.
func selectReader(r io.Reader, enc srcEncoding) io.Reader {
	switch enc {
	case encUnknown:
		return r
	case encUTF8:
		return unicode.UTF8BOM.NewDecoder().Reader(r)
	case encUTF16BigEndian:
		return unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder().Reader(r)
	case encUTF16LittleEndian:
		return unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder().Reader(r)
	case encUTF32BigEndian:
		return utf32.UTF32(utf32.BigEndian, utf32.ExpectBOM).NewDecoder().Reader(r)
	case encUTF32LittleEndian:
		return utf32.UTF32(utf32.LittleEndian, utf32.ExpectBOM).NewDecoder().Reader(r)
	}
	// this should never happen
	panic(fmt.Sprintf("unexpected source encoding %d", enc))
}

// charsetLabel returns encoding name declared by leading @charset rule, if any.
func charsetLabel(head []byte) string {
	if !bytes.HasPrefix(head, []byte(charsetPrefix)) {
		return ""
	}
	rest := head[len(charsetPrefix):]
	end := bytes.Index(rest, []byte(`";`))
	if end <= 0 {
		return ""
	}
	return string(rest[:end])
}

// decodeSource reads whole stylesheet converting it to UTF-8. Byte order mark
// wins over @charset rule, which wins over fallback. Nil fallback means
// source is taken as is.
func decodeSource(r io.Reader, fallback encoding.Encoding) ([]byte, error) {
	br := bufio.NewReader(r)

	// short sources are fine, Peek returns what is there
	head, _ := br.Peek(4)
	if enc := detectUTF(head); enc != encUnknown {
		return io.ReadAll(selectReader(br, enc))
	}

	head, _ = br.Peek(128)
	if label := charsetLabel(head); label != "" {
		dr, err := charset.NewReaderLabel(label, br)
		if err != nil {
			return nil, fmt.Errorf("unsupported @charset %q: %w", label, err)
		}
		return io.ReadAll(dr)
	}

	if fallback != nil {
		return io.ReadAll(fallback.NewDecoder().Reader(br))
	}
	return io.ReadAll(br)
}

// lookupEncoding resolves IANA character set name, empty name or unknown
// character set result in nil.
func lookupEncoding(name string, log *zap.Logger) encoding.Encoding {
	if len(name) == 0 {
		return nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		log.Warn("Unknown character set specification. Ignoring...", zap.String("charset", name), zap.Error(err))
		return nil
	}
	n, _ := ianaindex.IANA.Name(enc)
	log.Debug("Using character set", zap.String("requested", name), zap.String("charset", n))
	return enc
}

// isArchiveFile checks file content when it has zip extension.
func isArchiveFile(path string) (bool, error) {
	if !strings.EqualFold(filepath.Ext(path), ".zip") {
		return false, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	// filetype needs at most 262 bytes to decide
	head := make([]byte, 262)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return false, err
	}
	return filetype.Is(head[:n], "zip"), nil
}

// hasStyleExt checks if name ends with one of the extensions, ignoring case.
func hasStyleExt(name string, exts []string) bool {
	name = strings.ToLower(name)
	for _, ext := range exts {
		if strings.HasSuffix(name, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}

// trimStyleExt removes the longest matching extension from the name.
func trimStyleExt(name string, exts []string) string {
	lower, cut := strings.ToLower(name), 0
	for _, ext := range exts {
		if len(ext) > cut && len(ext) < len(name) && strings.HasSuffix(lower, strings.ToLower(ext)) {
			cut = len(ext)
		}
	}
	if cut == 0 {
		return strings.TrimSuffix(name, filepath.Ext(name))
	}
	return name[:len(name)-cut]
}
