package domain

import "errors"

var (
	ErrPollNotFound  = errors.New("no poll found")
	ErrPollClosed    = errors.New("poll is closed")
	ErrInvalidOption = errors.New("invalid option for this poll")
	ErrAlreadyVoted  = errors.New("user has already voted")
	ErrNoVotes       = errors.New("no votes recorded for this poll")
)
