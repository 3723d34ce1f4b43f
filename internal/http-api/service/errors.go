package service

import "errors"

var (
	ErrBookNotFound   = errors.New("book not found")
	ErrRatingNotFound = errors.New("rating not found")
	ErrDuplicateBook  = errors.New("a book with this title and authors already exists")

	ErrNameInUse          = errors.New("username already in use")
	ErrEmailInUse         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)
