package handlers

const (
	ErrInvalidJSON         = "Invalid request body"
	ErrUnauthorized        = "Unauthorized"
	ErrNotFound            = "Not found"
	ErrTooManyRequests     = "Too many requests, please slow down"
	ErrInternalServerError = "Something went wrong, please try again"
	ErrNoProfile           = "Create a profile first"
	ErrProfileExists       = "This player already has a profile"

	maxBodyBytes = 8 << 20
)
