package logger

import (
	"os"
	"sync"
)

var (
	hostname     string
	hostnameOnce sync.Once
)

// Hostname is attached to every span-scoped record and reported by the
// health endpoints so replicas can be told apart.
func Hostname() string {
	hostnameOnce.Do(func() {
		h, err := os.Hostname()
		if err != nil {
			h = "unknown"
		}
		hostname = h
	})
	return hostname
}
