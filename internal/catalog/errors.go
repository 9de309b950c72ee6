package catalog

import "errors"

// Sentinel errors for catalog lookups and loading.
var (
	ErrUnknownRole    = errors.New("unknown role")
	ErrInvalidCatalog = errors.New("invalid catalog")
)
