package holiday

import "errors"

var (
	ErrUpstreamUnavailable = errors.New("holiday data source unavailable")
	ErrInvalidCountryCode  = errors.New("country code must be ISO-3166 alpha-2")
)
