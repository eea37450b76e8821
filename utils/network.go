package utils

import (
	"path/filepath"
	"strings"
)

// NetworkMount reports whether path looks like it lives on a network or
// removable mount, and which rule matched
func NetworkMount(path string) (string, bool) {
	// UNC paths must be checked before filepath.Abs rewrites them
	if strings.HasPrefix(path, "//") || strings.HasPrefix(path, `\\`) {
		return "UNC path", true
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}

	mountPrefixes := []string{
		"/mnt/",     // Linux NFS/SMB mounts
		"/media/",   // Linux removable/network media
		"/Volumes/", // macOS network volumes
	}
	for _, prefix := range mountPrefixes {
		if strings.HasPrefix(absPath, prefix) {
			return "mounted under " + prefix, true
		}
	}

	lowerPath := strings.ToLower(absPath)
	for _, indicator := range []string{"nfs", "cifs", "smb", "webdav", "sftp", "ftp"} {
		if strings.Contains(lowerPath, indicator) {
			return indicator + " in path", true
		}
	}

	return "", false
}

// IsNetworkDrive detects if a path is on a network-mounted drive
func IsNetworkDrive(path string) bool {
	_, ok := NetworkMount(path)
	return ok
}
