package service

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation failed")
	ErrDuplicateRule      = errors.New("schedule rule already exists for this scope")
	ErrSlotTaken          = errors.New("slot is already booked")
	ErrSpecialistInactive = errors.New("specialist is not active")
)
