package util

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Example output for "ex.txt": "21313123123_ex.txt"
func AddUniquePrefixToFileName(fileName string) string {
	uniquePrefix := fmt.Sprintf("%d", time.Now().UnixNano())
	return fmt.Sprintf("%s_%s", uniquePrefix, fileName)
}

// SafeFileName strips directories and characters that do not belong in an object key or a
// Content-Disposition header.
func SafeFileName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.Map(func(r rune) rune {
		switch {
		case r < 32, r == '"', r == '/', r == ':', r == '*', r == '?', r == '<', r == '>', r == '|':
			return '_'
		}
		return r
	}, name)
	if name == "." || name == "" {
		return "file"
	}
	return name
}

func GetTempDir() string {
	return filepath.Join(os.TempDir(), "autorfp")
}

func CreateTempDir(pattern string) (string, error) {
	tempDir := GetTempDir()
	if err := os.MkdirAll(tempDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create temp directory: %w", err)
	}
	return os.MkdirTemp(tempDir, pattern)
}
