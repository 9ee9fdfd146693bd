package config

import (
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// Version is stamped at build time with -ldflags "-X chartscope/internal/config.Version=..."
var Version = ""

const fallbackVersion = "0.1.0"

// GetVersion returns APP_VERSION, the stamped build version, or the VERSION
// file plus the git commit count for local builds
func GetVersion() string {
	if v := os.Getenv("APP_VERSION"); v != "" {
		return v
	}
	if Version != "" {
		return Version
	}

	base := readVersionFile("VERSION")
	if n := gitCommitCount(); n > 0 {
		return base + "." + strconv.Itoa(n)
	}
	return base
}

func readVersionFile(path string) string {
	content, err := os.ReadFile(path)
	if err != nil {
		return fallbackVersion
	}
	if v := strings.TrimSpace(string(content)); v != "" {
		return v
	}
	return fallbackVersion
}

func gitCommitCount() int {
	out, err := exec.Command("git", "rev-list", "--count", "HEAD").Output()
	if err != nil {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(string(out)))
	if err != nil {
		return 0
	}
	return n
}
