package config

import (
	"os"
	"strings"
)

const badFileName = "_bad_file_name_"

// CleanFileName makes single path segment out of arbitrary text: path
// separators, control characters and symbols reserved by the platform are
// removed, leading dots are dropped so names never become hidden or relative.
func CleanFileName(in string) string {
	out := strings.Map(func(sym rune) rune {
		if sym < 0x20 || sym == 0x7f || strings.ContainsRune(reservedChars+string(os.PathSeparator)+string(os.PathListSeparator), sym) {
			return -1
		}
		return sym
	}, in)
	out = trimFileName(strings.TrimLeft(out, "."))
	if len(out) == 0 {
		return badFileName
	}
	if reservedFileName(out) {
		out = "_" + out
	}
	return out
}

// EnableColorOutput checks if colorized output is possible. NO_COLOR
// environment variable disables colors regardless of the terminal.
func EnableColorOutput(stream *os.File) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return enableColorOutput(stream)
}
