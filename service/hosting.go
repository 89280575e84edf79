package service

import "context"

// HostingProvider turns a local design file into a publicly reachable URL.
// Printful's 2025 API only accepts URL references, so every upload goes
// through one of these first.
type HostingProvider interface {
	Name() string
	Host(ctx context.Context, localPath, filename string) (string, error)
}
