package storage

import "errors"

var ErrNotFound = errors.New("item not found in storage")
var ErrItemWithIDAlreadyExists = errors.New("item with this id already exists")
var ErrDuplicateVote = errors.New("vote already exists for this voter and election")

// Uniqueness violations raised by Create so that concurrent requests cannot
// slip past a handler-level check.
var ErrDuplicateWallet = errors.New("wallet address already in use")
var ErrDuplicateNationalID = errors.New("national id already in use")
var ErrDuplicateEmail = errors.New("email already in use")
var ErrDuplicateTitle = errors.New("title already in use")
