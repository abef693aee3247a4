package util

import (
	"os"
	"path/filepath"
	"strings"
)

// TempSuffix marks work folders that an interrupted export leaves behind.
const TempSuffix = "_tmp"

// CleanupUnfinishedTempFolders removes every TempSuffix folder directly
// under outputDir and returns the ones it removed.
func CleanupUnfinishedTempFolders(outputDir string) []string {
	entries, err := os.ReadDir(outputDir)
	if err != nil {
		return nil
	}

	var removed []string
	for _, e := range entries {
		if e.IsDir() && strings.HasSuffix(e.Name(), TempSuffix) {
			full := filepath.Join(outputDir, e.Name())
			if os.RemoveAll(full) == nil {
				removed = append(removed, full)
			}
		}
	}
	return removed
}

func RemoveIfEmpty(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) > 0 {
		return false
	}
	return os.Remove(dir) == nil
}
