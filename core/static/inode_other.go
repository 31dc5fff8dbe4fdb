//go:build !unix

package static

import "io/fs"

// inode is unavailable off unix; the ETag falls back to size and mtime.
func inode(fs.FileInfo) uint64 { return 0 }
