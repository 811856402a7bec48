package core

import (
	"errors"
	"fmt"
)

// ErrPoolNotFound is matched by errors.Is for any PoolNotFoundError.
var ErrPoolNotFound = errors.New("pool not found")

// PoolNotFoundError reports a lookup for a pool name that was never created.
type PoolNotFoundError struct {
	Name string
}

func (e *PoolNotFoundError) Error() string {
	return fmt.Sprintf("pool %q not found", e.Name)
}

func (e *PoolNotFoundError) Is(target error) bool {
	return target == ErrPoolNotFound
}
