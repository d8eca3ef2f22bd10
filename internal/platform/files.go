package platform

import (
	"fmt"
	"net"
	"os"
	"os/exec"
	"time"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// External tool names
const (
	FFmpegCommand = "ffmpeg"
)

// Connectivity probe target; a well-known public resolver reachable from
// anywhere with a working uplink.
const (
	ConnectivityProbeAddr    = "8.8.8.8:53"
	ConnectivityProbeTimeout = 5 * time.Second
)

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}

// LookupTool verifies that an external executable is on the search path
func LookupTool(name string) error {
	if _, err := exec.LookPath(name); err != nil {
		return fmt.Errorf("%s is not installed or not on PATH: %w", name, err)
	}
	return nil
}

// CheckConnectivity performs a best-effort reachability probe. Failure
// means the media engine should not be started at all.
func CheckConnectivity(timeout time.Duration) error {
	if timeout <= 0 {
		timeout = ConnectivityProbeTimeout
	}
	conn, err := net.DialTimeout("tcp", ConnectivityProbeAddr, timeout)
	if err != nil {
		return fmt.Errorf("no internet connection detected: %w", err)
	}
	conn.Close()
	return nil
}
