package utils

import (
	"os"
	"sync"
)

var (
	hostOnce sync.Once
	hostName string
)

// GetHost names the machine in log lines. POD_NAME, when set, wins over
// the OS hostname.
func GetHost() string {
	hostOnce.Do(func() {
		hostName = resolveHost(os.Getenv, os.Hostname)
	})
	return hostName
}

func resolveHost(getenv func(string) string, hostname func() (string, error)) string {
	if pod := getenv("POD_NAME"); pod != "" {
		return pod
	}
	if h, err := hostname(); err == nil && h != "" {
		return h
	}
	return "unknown"
}
