package coordinator

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is matched by every error caused by an invalid budget.
	ErrConfiguration = errors.New("configuration error")
	// ErrResourceAllocation is matched by every failure to create a worker's
	// pseudorandom stream.
	ErrResourceAllocation = errors.New("resource allocation error")
	// ErrAlreadyRun is returned when Run is called on a coordinator that has
	// left the Idle state.
	ErrAlreadyRun = errors.New("coordinator has already been run")
)

// ConfigurationError describes a budget field that failed validation. It is
// detected before any worker starts.
type ConfigurationError struct {
	Field  string
	Value  int64
	Reason string
}

// Error implements the error interface for ConfigurationError.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s %s (got: %d)", e.Field, e.Reason, e.Value)
}

// Is makes ConfigurationError match ErrConfiguration.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// AllocationError records that the stream for one worker could not be created.
type AllocationError struct {
	Worker int
	Err    error
}

// Error implements the error interface for AllocationError.
func (e *AllocationError) Error() string {
	return fmt.Sprintf("worker %d: failed to allocate random stream: %v", e.Worker, e.Err)
}

// Unwrap returns the underlying factory error.
func (e *AllocationError) Unwrap() error {
	return e.Err
}

// Is makes AllocationError match ErrResourceAllocation.
func (e *AllocationError) Is(target error) bool {
	return target == ErrResourceAllocation
}

// WorkerError records that a launched worker terminated without a hit count.
type WorkerError struct {
	Worker int
	Err    error
}

// Error implements the error interface for WorkerError.
func (e *WorkerError) Error() string {
	return fmt.Sprintf("worker %d: %v", e.Worker, e.Err)
}

// Unwrap returns the underlying worker failure.
func (e *WorkerError) Unwrap() error {
	return e.Err
}
