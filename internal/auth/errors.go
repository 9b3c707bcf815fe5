package auth

import "errors"

var (
	ErrEmailPasswordRequired = errors.New("Email and password are required")
	ErrInvalidEmail          = errors.New("Invalid Email")
	ErrIncorrectPassword     = errors.New("Incorrect Password")
	ErrNotAuthenticated      = errors.New("Not authenticated")
	ErrInvalidFullname       = errors.New("Fullname may only contain letters, spaces, hyphens and apostrophes")
	ErrWeakPassword          = errors.New("Password must be at least 8 characters and include a letter, a number and a special character")
	ErrEmailTaken            = errors.New("Email already registered")
	ErrInvalidRole           = errors.New("Invalid role")
)
