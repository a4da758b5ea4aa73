package conf

import "github.com/tphakala/venomid/internal/logger"

// GetLogger returns the config module logger. It is fetched on each call
// because the central logger is installed after package init.
func GetLogger() logger.Logger {
	return logger.Global().Module("config")
}
