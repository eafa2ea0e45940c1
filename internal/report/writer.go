package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Save writes fully rendered report content to path, creating parent
// directories and overwriting any prior file. Callers render first and
// write once, so a failed run never leaves a partial report behind.
func Save(path, content string) error {
	if strings.TrimSpace(content) == "" {
		return errors.New("refusing to write empty report content")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating report dir: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}
