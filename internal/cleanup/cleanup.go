// Package cleanup prunes saved session reports from .mockround/reports/.
package cleanup

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const reportExt = ".md"

type reportFile struct {
	name    string
	modTime time.Time
}

// listReports returns the report files in dir, oldest first.
func listReports(dir string) ([]reportFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading reports directory: %w", err)
	}

	var files []reportFile
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), reportExt) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, reportFile{name: entry.Name(), modTime: info.ModTime()})
	}

	sort.Slice(files, func(i, j int) bool {
		if files[i].modTime.Equal(files[j].modTime) {
			return files[i].name < files[j].name
		}
		return files[i].modTime.Before(files[j].modTime)
	})
	return files, nil
}

func remove(dir string, names []string, dryRun bool) ([]string, error) {
	var pruned []string
	for _, name := range names {
		if !dryRun {
			if err := os.Remove(filepath.Join(dir, name)); err != nil {
				return pruned, fmt.Errorf("removing %s: %w", name, err)
			}
		}
		pruned = append(pruned, name)
	}
	return pruned, nil
}

// PruneByAge removes reports last written more than maxAgeDays ago. With
// dryRun nothing is deleted. Returns the names that were (or would be)
// removed.
func PruneByAge(dir string, maxAgeDays int, dryRun bool) ([]string, error) {
	files, err := listReports(dir)
	if err != nil {
		return nil, err
	}

	cutoff := time.Now().AddDate(0, 0, -maxAgeDays)
	var old []string
	for _, f := range files {
		if f.modTime.Before(cutoff) {
			old = append(old, f.name)
		}
	}
	return remove(dir, old, dryRun)
}

// PruneKeepRecent removes all but the keep most recent reports.
func PruneKeepRecent(dir string, keep int, dryRun bool) ([]string, error) {
	files, err := listReports(dir)
	if err != nil {
		return nil, err
	}
	if len(files) <= keep {
		return nil, nil
	}

	var old []string
	for _, f := range files[:len(files)-keep] {
		old = append(old, f.name)
	}
	return remove(dir, old, dryRun)
}
