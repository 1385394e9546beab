// Package eyecatch picks the cover-image candidate for a post.
package eyecatch

import "os"

// SelectBest returns the path with the largest file size. A single
// candidate is returned as-is without touching the filesystem. Paths
// whose size cannot be determined are skipped rather than treated as
// zero-byte files; when every candidate is unreadable the result is
// none. Size ties keep the earliest-seen candidate.
func SelectBest(paths []string) (string, bool) {
	switch len(paths) {
	case 0:
		return "", false
	case 1:
		return paths[0], true
	}

	best := ""
	bestSize := int64(-1)
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			continue
		}
		if info.Size() > bestSize {
			best = p
			bestSize = info.Size()
		}
	}
	if bestSize < 0 {
		return "", false
	}
	return best, true
}
