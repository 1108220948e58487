package model

import (
	"path/filepath"
	"strings"
	"time"
)

const bytesPerMB = 1024 * 1024

// AudioSource is a measured local audio file.
type AudioSource struct {
	Path     string
	Size     int64
	Duration time.Duration
}

// SizeMB returns the file size in mebibytes.
func (a AudioSource) SizeMB() float64 {
	return float64(a.Size) / bytesPerMB
}

// Stem returns the base file name without its extension.
func (a AudioSource) Stem() string {
	return Stem(a.Path)
}

// Stem returns the base name of path without its extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
