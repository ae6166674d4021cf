package services

import "errors"

var (
	// ErrUnsupportedMode means the transport mode has no pricing rules
	ErrUnsupportedMode = errors.New("unsupported transport mode")
	// ErrNoAvailableRates means no applicable service had an active rate card
	ErrNoAvailableRates = errors.New("no available rates")
	// ErrDistanceUnavailable means the route could not be resolved to a distance
	ErrDistanceUnavailable = errors.New("unable to calculate distance")
	// ErrConflict means a quote update lost the compare-and-swap race twice
	ErrConflict = errors.New("quote was modified concurrently")

	ErrQuoteNotFound     = errors.New("quote not found")
	ErrRateCardNotFound  = errors.New("rate card not found")
	ErrPortNotFound      = errors.New("port not found")
	ErrCommodityNotFound = errors.New("commodity not found")
)
