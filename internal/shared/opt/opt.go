// Package opt models optional DTO fields as present-or-absent values, so
// rendering code handles both branches explicitly.
package opt

import (
	"bytes"
	"encoding/json"
)

// Value is either present with a value or absent. A missing or null JSON
// field decodes to absent.
type Value[T any] struct {
	v  T
	ok bool
}

func Some[T any](v T) Value[T] { return Value[T]{v: v, ok: true} }

func None[T any]() Value[T] { return Value[T]{} }

func (o Value[T]) Get() (T, bool) { return o.v, o.ok }

func (o Value[T]) Present() bool { return o.ok }

// Any returns the value boxed, or nil when absent. Templates use it.
func (o Value[T]) Any() any {
	if !o.ok {
		return nil
	}
	return o.v
}

// Or returns the value when present, def otherwise.
func (o Value[T]) Or(def T) T {
	if o.ok {
		return o.v
	}
	return def
}

// Match calls exactly one of present or absent.
func Match[T, R any](o Value[T], present func(T) R, absent func() R) R {
	if o.ok {
		return present(o.v)
	}
	return absent()
}

func (o *Value[T]) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*o = Value[T]{}
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*o = Value[T]{v: v, ok: true}
	return nil
}

func (o Value[T]) MarshalJSON() ([]byte, error) {
	if !o.ok {
		return []byte("null"), nil
	}
	return json.Marshal(o.v)
}
