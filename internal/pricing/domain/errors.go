package domain

import "errors"

var (
	ErrInvalidSpot       = errors.New("spot must be positive")
	ErrInvalidStrike     = errors.New("strike must be positive")
	ErrInvalidVol        = errors.New("volatility must be positive")
	ErrInvalidPayout     = errors.New("payout must be positive")
	ErrInvalidBarrier    = errors.New("barrier level must be positive")
	ErrInvalidDirection  = errors.New("barrier direction must be up or down")
	ErrInvalidOptionType = errors.New("option type must be call or put")
	ErrInvalidSteps      = errors.New("steps must be at least 1")
	ErrInvalidPaths      = errors.New("paths must be at least 1")
	ErrInvalidFixings    = errors.New("fixings must be at least 1")
	ErrInvalidSpread     = errors.New("short strike must be above long strike")
	ErrZeroQuantity      = errors.New("leg quantity must be non-zero")
	ErrUnknownKind       = errors.New("unknown instrument kind")
	ErrUnsupportedMethod = errors.New("method not supported for this instrument kind")
)
