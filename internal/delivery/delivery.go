// Package delivery defines the contract for inbound transports.
package delivery

import "context"

// Delivery is a transport that serves requests until it is stopped.
type Delivery interface {
	Serve(ctx context.Context) error
}
