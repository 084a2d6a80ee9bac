package service

import "errors"

var (
	ErrUnknownBadge    = errors.New("unknown badge")
	ErrUnknownActivity = errors.New("unknown activity")
	ErrNoProfile       = errors.New("player has no profile")
	ErrProfileExists   = errors.New("player already has a profile")
)
