//go:build e2e && unix

package main

import (
	"fmt"
	"os"
	"path/filepath"
)

// CreateTestWorkspace creates a temporary directory that doubles as $HOME
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	tmpDir := tf.t.TempDir()
	tf.workspace = tmpDir
	return tmpDir, nil
}

// CreateListing creates a directory in the workspace holding the given
// entries. Names ending in "/" become directories.
func (tf *TUITestFramework) CreateListing(name string, entries ...string) (string, error) {
	if tf.workspace == "" {
		return "", fmt.Errorf("workspace not created")
	}

	dir := filepath.Join(tf.workspace, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry)
		if entry[len(entry)-1] == '/' {
			if err := os.MkdirAll(path, 0755); err != nil {
				return "", err
			}
			continue
		}
		if err := os.WriteFile(path, []byte(entry+"\n"), 0644); err != nil {
			return "", err
		}
	}
	return dir, nil
}

// CreateDefaultListing creates four entries that sort as
// apple.txt, banana.txt, cherry.txt, docs/
func (tf *TUITestFramework) CreateDefaultListing() (string, error) {
	return tf.CreateListing("files", "apple.txt", "banana.txt", "cherry.txt", "docs/", ".secret")
}
