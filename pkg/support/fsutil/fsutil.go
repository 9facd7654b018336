// Package fsutil contains utilities for working with the file system.
package fsutil

import (
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// FileExists returns whether the file or directory exists or an error if something went wrong in the filesystem.
func FileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, errors.Wrapf(err, "failed to FileExists(%q)", path)
}

// ReplaceTildeInDir by the user's home directory. Returns dir if it doesn't start with "~".
//
// It returns an error if `dir` refers to an unknown user (e.g: `~unknown/...`).
func ReplaceTildeInDir(dir string) (string, error) {
	if !strings.HasPrefix(dir, "~") {
		return dir, nil
	}
	userName, rest, _ := strings.Cut(dir[1:], "/")
	var usr *user.User
	var err error
	if userName == "" {
		usr, err = user.Current()
	} else {
		usr, err = user.Lookup(userName)
	}
	if err != nil {
		return "", errors.Wrapf(err, "failed to lookup home directory for user in path %q", dir)
	}
	return filepath.Join(usr.HomeDir, rest), nil
}

// ResolveVariant returns path if it exists, otherwise the first of path+suffix (for each of
// the suffixes) that exists.
//
// If none exists it returns path itself with found=false, so the caller reports the
// canonical name as missing.
func ResolveVariant(path string, suffixes ...string) (resolved string, found bool, err error) {
	for _, candidate := range append([]string{path}, variants(path, suffixes)...) {
		exists, err := FileExists(candidate)
		if err != nil {
			return path, false, err
		}
		if exists {
			return candidate, true, nil
		}
	}
	return path, false, nil
}

func variants(path string, suffixes []string) []string {
	out := make([]string, 0, len(suffixes))
	for _, suffix := range suffixes {
		out = append(out, path+suffix)
	}
	return out
}
