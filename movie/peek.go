package movie

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// PeekTitleID scans a '.ctm' stream just far enough to find the
// "M,title_id,..." metadata line, without parsing frame lines or building a
// Store. Intended for a file browser that wants to show which title a
// movie belongs to without paying for a full import.
func PeekTitleID(r io.Reader) (uint64, bool) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "M,title_id,") {
			continue
		}
		parts := strings.SplitN(line, ",", 3)
		if len(parts) != 3 {
			continue
		}
		n, err := strconv.ParseUint(parts[2], 10, 64)
		if err != nil {
			continue
		}
		return n, true
	}
	return 0, false
}

// EnsureRecordTimeline returns a Store safe to record into: s itself if
// it's non-nil (whether or not it already holds frames), or a fresh empty
// Store if s is nil. Used when starting a recording session against a
// project that may or may not already have a movie on disk: a missing or
// unreadable movie file is not an error, it just means recording starts
// from frame zero against a fresh Store.
func EnsureRecordTimeline(s *Store) *Store {
	if s == nil {
		return &Store{}
	}
	return s
}
