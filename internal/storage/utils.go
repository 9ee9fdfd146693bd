package storage

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode"
)

// ExportMarker is the file every export folder carries
const ExportMarker = "chart.svg"

// GenerateExportFolderPath generates a consistent folder path for exports
// Format: YYYY/MM/DD/<name>-YYYY-MM-DD-HH-MM-SS
func GenerateExportFolderPath(chartName string, timestamp time.Time) string {
	ts := timestamp.UTC()
	return fmt.Sprintf("%04d/%02d/%02d/%s-%04d-%02d-%02d-%02d-%02d-%02d",
		ts.Year(), ts.Month(), ts.Day(),
		SanitizeName(chartName),
		ts.Year(), ts.Month(), ts.Day(),
		ts.Hour(), ts.Minute(), ts.Second())
}

// SanitizeName turns a chart name into a path segment
func SanitizeName(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.TrimSpace(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	s := strings.TrimSuffix(b.String(), "-")
	if s == "" {
		return "chart"
	}
	return s
}

var contentTypes = map[string]string{
	".json": "application/json",
	".txt":  "text/plain",
	".html": "text/html",
	".css":  "text/css",
	".md":   "text/markdown",
	".svg":  "image/svg+xml",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".yaml": "application/yaml",
	".yml":  "application/yaml",
}

// GetContentType determines the MIME content type based on file extension
func GetContentType(filename string) string {
	if ct, ok := contentTypes[filepath.Ext(filename)]; ok {
		return ct
	}
	return "application/octet-stream"
}

// newestFirst orders export folders by the timestamp suffix of their name,
// falling back to the full path
func newestFirst(paths []string, limit int) []string {
	sort.Slice(paths, func(i, j int) bool {
		si, sj := stamp(paths[i]), stamp(paths[j])
		if si != sj {
			return si > sj
		}
		return paths[i] > paths[j]
	})
	if limit > 0 && limit < len(paths) {
		paths = paths[:limit]
	}
	return paths
}

// stamp is the trailing YYYY-MM-DD-HH-MM-SS of a folder name
func stamp(folder string) string {
	base := filepath.Base(filepath.ToSlash(folder))
	if len(base) < 19 {
		return ""
	}
	return base[len(base)-19:]
}
