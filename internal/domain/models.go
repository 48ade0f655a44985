package domain

import (
	"io/fs"
	"strings"
	"time"
)

// Item represents one listed directory entry
type Item struct {
	Path    string // absolute path, also the selection id
	Name    string
	IsDir   bool
	Size    int64
	Mode    fs.FileMode
	ModTime time.Time
}

// IsDotfile reports whether the entry is hidden by naming convention
func (i Item) IsDotfile() bool {
	return strings.HasPrefix(i.Name, ".")
}

// DisplayName is the name shown in the list; directories get a trailing slash
func (i Item) DisplayName() string {
	if i.IsDir {
		return i.Name + "/"
	}
	return i.Name
}

// ScanProgress represents the current scanning state
type ScanProgress struct {
	IsScanning bool
	Root       string
	ItemsFound int
}
