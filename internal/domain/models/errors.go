package models

import "errors"

var (
	// ErrNotFound is returned when a document addressed by id or number does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists is returned when a unique key is already taken.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput marks request payloads that fail domain validation.
	ErrInvalidInput = errors.New("invalid input")
)
