// Package cache is the best-effort key-value store used by the completion and
// URL-quiz caches. No method returns an error: an unavailable store behaves
// like an empty one.
package cache

import (
	"context"
	"time"
)

type Client interface {
	// Get reports false both for a miss and for a store failure.
	Get(ctx context.Context, key string) (string, bool)
	SetEx(ctx context.Context, key string, ttl time.Duration, value string) bool
	Flush(ctx context.Context) bool
	Stats(ctx context.Context) Stats
	Ping(ctx context.Context) bool
	Close() error
}

type Stats struct {
	Connected              bool   `json:"connected"`
	Version                string `json:"version,omitempty"`
	UsedMemory             string `json:"used_memory,omitempty"`
	ConnectedClients       int64  `json:"connected_clients"`
	TotalCommandsProcessed int64  `json:"total_commands_processed"`
	Error                  string `json:"error,omitempty"`
}

const DefaultTTL = time.Hour

type noop struct{}

// NewNoop returns a client that stores nothing, used when caching is disabled.
func NewNoop() Client { return noop{} }

func (noop) Get(context.Context, string) (string, bool) { return "", false }
func (noop) SetEx(context.Context, string, time.Duration, string) bool { return false }
func (noop) Flush(context.Context) bool { return false }
func (noop) Ping(context.Context) bool { return false }
func (noop) Close() error { return nil }

func (noop) Stats(context.Context) Stats {
	return Stats{Connected: false, Error: "caching disabled"}
}
