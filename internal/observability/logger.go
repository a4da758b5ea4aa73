// Package observability exposes venomid's Prometheus metrics. Error
// telemetry lives in the telemetry package.
package observability

import "github.com/tphakala/venomid/internal/logger"

// Package-level cached logger instance.
var log = logger.Global().Module("observability")
