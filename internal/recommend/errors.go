package recommend

import (
	"context"
	"errors"
	"net"
	"syscall"

	gobreaker "github.com/sony/gobreaker/v2"
)

var (
	// ErrNotFound means the service does not know the requested perfume.
	ErrNotFound = errors.New("ml service: perfume not found")
	// ErrUpstream covers non-2xx answers and bodies that cannot be read.
	ErrUpstream = errors.New("ml service: upstream error")
)

// IsUnavailable reports whether err means the service could not be reached
// at all: refused or reset connection, DNS failure, timeout, or an open
// circuit breaker.
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.EHOSTUNREACH) {
		return true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return false
}
