package apperror

import "errors"

var (
	ErrIndexOutOfRange      = errors.New("index out of range")
	ErrCellOccupied         = errors.New("cell is already occupied")
	ErrMiniBoardNotPlayable = errors.New("mini-board is not playable")
)
