// File: pkg/storage/errors.go
package storage

import (
	"errors"
	"fmt"
	"stowblob/pkg/common"
)

var (
	// ErrConnection indicates that a session to the provider could not be established
	ErrConnection = errors.New("storage connection error")

	// ErrBlobNotFound indicates that the requested blob does not exist in the container
	ErrBlobNotFound = errors.New("blob not found")

	// ErrTransfer indicates a generic failure while moving blob data to or from the provider
	ErrTransfer = errors.New("blob transfer error")
)

// OpError records the operation, provider, container and blob of a failed storage call
type OpError struct {
	Op        string
	Provider  common.Provider
	Container string
	Key       string
	Err       error
}

func (e *OpError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s %s %s/%s: %v", e.Provider, e.Op, e.Container, e.Key, e.Err)
	}
	return fmt.Sprintf("%s %s %s: %v", e.Provider, e.Op, e.Container, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// Wraps err with the operation context. Errors already classified as ErrBlobNotFound keep that
// classification; everything else is marked as ErrTransfer
func NewOpError(op string, provider common.Provider, container, key string, err error) error {
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrBlobNotFound) && !errors.Is(err, ErrTransfer) {
		err = fmt.Errorf("%w: %w", ErrTransfer, err)
	}
	return &OpError{
		Op:        op,
		Provider:  provider,
		Container: container,
		Key:       key,
		Err:       err,
	}
}
