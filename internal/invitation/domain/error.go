package domain

import "errors"

var (
	ErrInvalidInviteToken = errors.New("invalid invite token")
	ErrInviteExpired      = errors.New("invite expired")
	ErrInviteConsumed     = errors.New("invite already used")
	ErrInviteNotFound     = errors.New("invite not found")
)
