// Package lifecycle holds shared lifecycle constants for fx hooks.
package lifecycle

import "time"

// DefaultTimeout bounds start and stop hooks (DB ping, secret fetch, HTTP shutdown).
const DefaultTimeout = 10 * time.Second
