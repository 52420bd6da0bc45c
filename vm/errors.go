package vm

import (
	"errors"
	"fmt"

	"github.com/NethermindEth/junovm/core/felt"
)

// StateKind names the piece of state a host read asks for.
type StateKind uint8

const (
	StorageKind StateKind = iota
	NonceKind
	ClassHashKind
	ClassKind
)

func (k StateKind) String() string {
	switch k {
	case StorageKind:
		return "storage"
	case NonceKind:
		return "nonce"
	case ClassHashKind:
		return "class hash"
	case ClassKind:
		return "class"
	default:
		return "<unknown>"
	}
}

// NotFoundError is returned when the host has no value for a storage cell, nonce or
// class hash the execution needs.
type NotFoundError struct {
	Kind    StateKind
	Address felt.Felt
	// Key is only set for storage lookups.
	Key *felt.Felt
}

func (e *NotFoundError) Error() string {
	if e.Key != nil {
		return fmt.Sprintf("%s at key %s of contract %s not found", e.Kind, e.Key, &e.Address)
	}
	return fmt.Sprintf("%s of contract %s not found", e.Kind, &e.Address)
}

// ErrMalformedClass marks a MissingClassError caused by a class payload which could
// not be parsed, as opposed to one the host does not have.
var ErrMalformedClass = errors.New("malformed class")

type MissingClassError struct {
	ClassHash felt.Felt
	Err       error
}

func (e *MissingClassError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("class %s is missing: %v", &e.ClassHash, e.Err)
	}
	return fmt.Sprintf("class %s is missing", &e.ClassHash)
}

func (e *MissingClassError) Unwrap() error {
	return e.Err
}

// DecodeError reports malformed input from the host.
type DecodeError struct {
	What string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode %s: %v", e.What, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ExecutionError wraps any failure surfaced while executing, including reverts.
type ExecutionError struct {
	Err error
}

func (e *ExecutionError) Error() string {
	return e.Err.Error()
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}
