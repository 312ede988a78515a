// Package delivery defines the contract every transport (HTTP today)
// satisfies so main can start them uniformly.
package delivery

import "context"

// Delivery is a startable transport surface.
type Delivery interface {
	Serve(ctx context.Context) error
}
