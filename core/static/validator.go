package static

import (
	"io/fs"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// ETag returns the validator of a file: inode, size and modification time
// joined by dashes and quoted, prefixed with W/ when weak.
func ETag(info fs.FileInfo, weak bool) string {
	tag := `"` + strconv.FormatUint(inode(info), 10) + "-" +
		strconv.FormatInt(info.Size(), 10) + "-" +
		info.ModTime().UTC().Format("2006-01-02T15:04:05.000Z") + `"`
	if weak {
		return "W/" + tag
	}
	return tag
}

// LastModified returns the modification time truncated to HTTP-date precision.
func LastModified(info fs.FileInfo) time.Time {
	return info.ModTime().UTC().Truncate(time.Second)
}

// isNotModified reports whether the client's validators still match. A
// non-empty clientTag wins over clientDate; an unparseable date never matches.
func isNotModified(etag string, lastModified time.Time, clientTag, clientDate string) bool {
	if clientTag != "" {
		for _, p := range strings.Split(clientTag, ",") {
			if strings.TrimSpace(p) == etag {
				return true
			}
		}
		return false
	}
	if clientDate == "" {
		return false
	}
	t, err := http.ParseTime(clientDate)
	if err != nil {
		return false
	}
	return !t.Before(lastModified)
}

// parseRange parses a single "bytes=start-end" range against size. The end
// defaults to and is clamped to size-1.
func parseRange(header string, size int64) (start, end int64, ok bool) {
	rangeSpec := strings.TrimPrefix(strings.TrimSpace(header), "bytes=")
	rangeSpec, _, _ = strings.Cut(rangeSpec, ",")

	s, e, found := strings.Cut(strings.TrimSpace(rangeSpec), "-")
	if !found {
		return 0, 0, false
	}

	start, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, 0, false
	}
	end = size - 1
	if e = strings.TrimSpace(e); e != "" {
		if end, err = strconv.ParseInt(e, 10, 64); err != nil {
			return 0, 0, false
		}
	}
	end = min(end, size-1)

	if start < 0 || start > end {
		return 0, 0, false
	}
	return start, end, true
}
