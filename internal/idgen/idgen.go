// Package idgen generates opaque identifiers, used for request correlation.
package idgen

import "github.com/google/uuid"

var NewFunc = func() string { return uuid.New().String() }

func New() string { return NewFunc() }
