package domain

import "errors"

// ErrInvalidIdentifier is returned by repositories when a client supplied id
// does not parse into the backend identifier format.
var ErrInvalidIdentifier = errors.New("invalid identifier")

type Item struct {
	ID          string `db:"id" json:"id,omitempty"`
	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description"`
}
