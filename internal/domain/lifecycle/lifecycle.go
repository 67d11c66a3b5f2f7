// Package lifecycle holds shared constants for graceful startup and shutdown.
package lifecycle

import "time"

// DefaultTimeout bounds graceful shutdown of long-lived resources
// (HTTP server, store connections).
const DefaultTimeout = 10 * time.Second
