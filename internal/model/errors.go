package model

import "errors"

var (
	ErrInvalidStatus       = errors.New("invalid status")
	ErrAlreadyResponded    = errors.New("invitation has already been responded to")
	ErrDuplicateInvitation = errors.New("email already has an open or accepted invitation for this proposal")
)
