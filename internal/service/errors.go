package service

import "errors"

// Sentinel errors for service layer
var (
	ErrNotConfigured = errors.New("not configured")
)
