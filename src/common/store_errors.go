package common

import (
	"errors"
	"fmt"
)

// StoreErrType is the kind of a StoreErr.
type StoreErrType uint32

const (
	// KeyNotFound is returned for a key the store does not hold.
	KeyNotFound StoreErrType = iota
	// Closed is returned by a store used after Close.
	Closed
)

var storeErrNames = map[StoreErrType]string{
	KeyNotFound: "not found",
	Closed:      "store closed",
}

// StoreErr is the error returned by the message stores.
type StoreErr struct {
	DataType string
	Type     StoreErrType
	Key      string
}

// NewStoreErr ...
func NewStoreErr(dataType string, errType StoreErrType, key string) *StoreErr {
	return &StoreErr{
		DataType: dataType,
		Type:     errType,
		Key:      key,
	}
}

func (e *StoreErr) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s: %s", e.DataType, storeErrNames[e.Type])
	}
	return fmt.Sprintf("%s %s: %s", e.DataType, e.Key, storeErrNames[e.Type])
}

// IsStore reports whether err, or an error it wraps, is a StoreErr of type t.
func IsStore(err error, t StoreErrType) bool {
	var storeErr *StoreErr
	return errors.As(err, &storeErr) && storeErr.Type == t
}
