package usecase

import "errors"

var (
	ErrInternal            = errors.New("internal error")
	ErrInvalidInput        = errors.New("invalid input")
	ErrInvalidMatchType    = errors.New("invalid match type")
	ErrRequirementNotFound = errors.New("buyer requirement not found")
	ErrOfferingNotFound    = errors.New("seller offering not found")
)
