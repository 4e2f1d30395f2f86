package domain

import "errors"

var (
	// ErrMissingRetailer is returned when a raw record has no retailer key.
	// This is the only per-record failure that aborts processing: a record
	// without a retailer cannot be partitioned into a catalog.
	ErrMissingRetailer = errors.New("record has no retailer")

	// ErrNoProducts is returned when a record source yields nothing to process.
	ErrNoProducts = errors.New("no product records available")

	// ErrNoMatches is returned when no product group spans enough catalogs.
	ErrNoMatches = errors.New("no cross-catalog matches found")

	// ErrCacheMiss is returned when a comparison table is not found in cache.
	ErrCacheMiss = errors.New("cache miss")

	// ErrFetchFailed is returned when a retailer page cannot be fetched.
	ErrFetchFailed = errors.New("retailer page fetch failed")

	// ErrInvalidRequest is returned when request parameters are invalid.
	ErrInvalidRequest = errors.New("invalid request parameters")
)
