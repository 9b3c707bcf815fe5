package accounts

import "errors"

var (
	ErrUserNotFound         = errors.New("User not found")
	ErrInvalidUserID        = errors.New("Invalid user ID format (must be a valid UUID)")
	ErrCannotModifyOwnRole  = errors.New("Users cannot modify their own role")
	ErrCannotRemoveYourself = errors.New("You cannot remove your own account")
	ErrMustKeepOneAdmin     = errors.New("There must be at least one admin")
)
