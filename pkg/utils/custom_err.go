package utils

import "errors"

var (
	ErrDuplicateVote      = errors.New("vote already recorded for this month")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnknownTag         = errors.New("unknown tag")
	ErrVoteNotFound       = errors.New("vote not found")
	ErrStorageUnavailable = errors.New("storage unavailable")
)
