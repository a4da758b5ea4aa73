package api

import "github.com/tphakala/venomid/internal/logger"

func getLogger() logger.Logger {
	return logger.Global().Module("api")
}
