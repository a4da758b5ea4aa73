package datastore

import (
	"github.com/tphakala/venomid/internal/errors"
)

// dbError creates a categorized database error with context pairs.
func dbError(err error, operation string, context ...any) error {
	builder := errors.New(err).
		Component("datastore").
		Category(errors.CategoryDatabase).
		Context("operation", operation)

	for i := 0; i < len(context)-1; i += 2 {
		if key, ok := context[i].(string); ok {
			builder = builder.Context(key, context[i+1])
		}
	}

	return builder.Build()
}

// configError reports an unusable store configuration.
func configError(format string, args ...any) error {
	return errors.Newf(format, args...).
		Component("datastore").
		Category(errors.CategoryConfiguration).
		Build()
}
