package models

import "errors"

var (
	// ErrNotFound is returned when a document, media asset or user is missing.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when creating a document whose name is taken.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidName is returned for names that are not plain file names.
	ErrInvalidName = errors.New("invalid file name")
	// ErrInvalidExtension is returned when an upload has a disallowed extension.
	ErrInvalidExtension = errors.New("invalid file extension")
	// ErrNotRenderable is returned for documents with no renderer.
	ErrNotRenderable = errors.New("not renderable")
)
