package organize

import "errors"

var (
	ErrFolderCreate = errors.New("failed to create domain folder")
	ErrInvalidMode  = errors.New("invalid placement mode")
)
