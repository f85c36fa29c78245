package model

import (
	"errors"
	"fmt"
)

// ErrorResponse is the consistent JSON structure for all API error responses.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// ErrorKind is the failure taxonomy shared by every component.
type ErrorKind string

const (
	KindStorage       ErrorKind = "storage"
	KindConnection    ErrorKind = "connection"
	KindContractQuery ErrorKind = "contract_query"
	KindTransaction   ErrorKind = "transaction"
	KindSync          ErrorKind = "sync"
)

// Error is a classified failure produced at a component boundary.
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s failed", e.Kind, e.Op)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is a classified error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// KindOf returns the kind of a classified error, or "" if err is not classified.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func StorageError(op string, err error) error {
	return &Error{Kind: KindStorage, Op: op, Err: err}
}

func ConnectionError(op string, err error) error {
	return &Error{Kind: KindConnection, Op: op, Err: err}
}

func ContractQueryError(op string, err error) error {
	return &Error{Kind: KindContractQuery, Op: op, Err: err}
}

func TransactionError(op string, err error) error {
	return &Error{Kind: KindTransaction, Op: op, Err: err}
}

func SyncError(op string, err error) error {
	return &Error{Kind: KindSync, Op: op, Err: err}
}
