// Package saver derives output locations from page URLs and writes results
// under a root directory.
//
// A page is stored below a directory that mirrors its host and path. The last
// path segment, cut at its first dot, names the file. Pages without a path use
// the query parameters as directories and index as the file name.
package saver

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// DefaultRoot is the directory results are written to by default.
const DefaultRoot = "result"

// ErrNoHost is returned for URLs without a host part.
var ErrNoHost = errors.New("url has no host")

// PathForURL returns the directory, relative to the output root, and the file
// name a page is stored under. ext is appended to the file name as given.
func PathForURL(rawURL, ext string) (dir, file string, err error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", "", fmt.Errorf("parse url: %w", err)
	}
	if u.Host == "" {
		return "", "", fmt.Errorf("%q: %w", rawURL, ErrNoHost)
	}

	if segs := segments(u.EscapedPath(), "/"); len(segs) > 0 {
		last := segs[len(segs)-1]
		stem, _, _ := strings.Cut(last, ".")
		if stem == "" {
			stem = "index"
		}
		return filepath.Join(append([]string{u.Host}, segs[:len(segs)-1]...)...), stem + ext, nil
	}

	return filepath.Join(append([]string{u.Host}, segments(u.RawQuery, "&")...)...), "index" + ext, nil
}

// segments splits s on sep and drops blank, "." and ".." parts. Separators
// left inside a part are replaced so that every part stays one directory.
func segments(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		if strings.TrimSpace(part) == "" || part == "." || part == ".." {
			continue
		}
		out = append(out, strings.NewReplacer("/", "_", `\`, "_").Replace(part))
	}
	return out
}

// Saver writes page results below Root.
type Saver struct {
	Root string
}

// Save writes content to the location derived from rawURL and returns the
// path of the written file. Existing files are replaced.
func (s *Saver) Save(rawURL, ext, content string) (string, error) {
	dir, file, err := PathForURL(rawURL, ext)
	if err != nil {
		return "", err
	}
	root := s.Root
	if root == "" {
		root = DefaultRoot
	}
	dstDir := filepath.Join(root, dir)
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	dst := filepath.Join(dstDir, file)
	tmp := dst + ".tmp"
	if err := os.WriteFile(tmp, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write result: %w", err)
	}
	if err := os.Rename(tmp, dst); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("write result: %w", err)
	}
	return dst, nil
}
