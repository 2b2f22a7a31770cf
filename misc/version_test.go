package misc

import (
	"os"
	"testing"
)

func TestGetAppName(t *testing.T) {
	// running under "go test" executable name ends with .test
	if got := GetAppName(); got != appName {
		t.Errorf("GetAppName() = %q, want %q", got, appName)
	}

	saved := os.Args
	defer func() { os.Args = saved }()

	os.Args = []string{"/usr/local/bin/mozsplit.exe"}
	if got := GetAppName(); got != "mozsplit" {
		t.Errorf("GetAppName() = %q, want mozsplit", got)
	}
	os.Args = nil
	if got := GetAppName(); got != appName {
		t.Errorf("GetAppName() without args = %q, want %q", got, appName)
	}
}

func TestGetVersion(t *testing.T) {
	if GetVersion() == "" {
		t.Error("GetVersion() is empty")
	}
	if GetGitHash() == "" {
		t.Error("GetGitHash() is empty")
	}

	saved := gitHash
	defer func() { gitHash = saved }()
	gitHash = "abc123"
	if got := GetGitHash(); got != "abc123" {
		t.Errorf("GetGitHash() = %q, want abc123", got)
	}
}
