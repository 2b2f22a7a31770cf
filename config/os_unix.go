//go:build !windows

package config

import (
	"os"

	"golang.org/x/term"
)

const reservedChars = ""

func trimFileName(name string) string {
	return name
}

func reservedFileName(string) bool {
	return false
}

func enableColorOutput(stream *os.File) bool {
	return term.IsTerminal(int(stream.Fd())) && os.Getenv("TERM") != "dumb"
}
