package services

import "errors"

// Error taxonomy shared by the services. Controllers map these onto
// HTTP status codes; anything else is a storage failure.
var (
	ErrReportNotFound   = errors.New("report not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidStatus    = errors.New("invalid status")
	ErrUsernameTaken    = errors.New("username taken")
)
