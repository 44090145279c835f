package domain

import (
	"errors"
)

// ScriptStatusRunning is the status written when a script is marked running
// through the API.
const ScriptStatusRunning = "running"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrDuplicateUsername = errors.New("username already exists")
	ErrUnknownTable      = errors.New("unknown table")
)
