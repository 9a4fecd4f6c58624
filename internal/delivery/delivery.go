// Package delivery defines the contract every transport front-end satisfies.
package delivery

import "context"

// Delivery is a transport serving the application until its context ends.
type Delivery interface {
	Serve(ctx context.Context) error
}
