package utils

import (
	"os"
)

// IsFile tests whether path exists and is a regular file
func IsFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// IsDirectory tests whether path exists and is a directory
func IsDirectory(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// EnsureDirectory creates path and its parents unless it already is a directory
func EnsureDirectory(path string) error {
	if IsDirectory(path) {
		return nil
	}
	return os.MkdirAll(path, os.ModePerm)
}
