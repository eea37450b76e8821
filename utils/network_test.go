package utils

import "testing"

func TestNetworkMount(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		wantReason string
		want       bool
	}{
		{"Linux NFS mount", "/mnt/nfs-share/videos", "mounted under /mnt/", true},
		{"Linux media mount", "/media/usb/videos", "mounted under /media/", true},
		{"macOS network volume", "/Volumes/NetworkShare/videos", "mounted under /Volumes/", true},
		{"Windows UNC path", "//server/share/videos", "UNC path", true},
		{"Windows UNC path escaped", `\\server\share\videos`, "UNC path", true},
		{"cifs in path", "/srv/cifs-share/videos", "cifs in path", true},
		{"sftp before ftp", "/home/user/sftp/videos", "sftp in path", true},
		{"Local home directory", "/home/user/videos", "", false},
		{"Local tmp", "/tmp/videos", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reason, ok := NetworkMount(tt.path)
			if ok != tt.want {
				t.Errorf("NetworkMount(%q) = %v, want %v", tt.path, ok, tt.want)
			}
			if reason != tt.wantReason {
				t.Errorf("NetworkMount(%q) reason = %q, want %q", tt.path, reason, tt.wantReason)
			}
			if IsNetworkDrive(tt.path) != tt.want {
				t.Errorf("IsNetworkDrive(%q) disagrees with NetworkMount", tt.path)
			}
		})
	}
}
