// Package db prepares the flat-file data root the CMS stores its state in.
package db

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// InitDataRoot creates the documents and media directories and an empty
// credential file when they are missing. Existing content is left alone.
func InitDataRoot(documentsDir, mediaDir, credentialsPath string) error {
	for _, dir := range []string{documentsDir, mediaDir, filepath.Dir(credentialsPath)} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	f, err := os.OpenFile(credentialsPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	switch {
	case errors.Is(err, fs.ErrExist):
		info, err := os.Stat(credentialsPath)
		if err != nil {
			return fmt.Errorf("create credentials: %w", err)
		}
		if !info.Mode().IsRegular() {
			return fmt.Errorf("create credentials: %s is not a regular file", credentialsPath)
		}
		return nil
	case err != nil:
		return fmt.Errorf("create credentials: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("create credentials: %w", err)
	}
	return nil
}
