// Package nonempty provides a slice refinement that is guaranteed, by
// construction, to hold at least one element.
//
// The emptiness check happens exactly once, in Parse. Everything
// downstream of that boundary takes a NonEmpty and calls Head without a
// presence check, because no code path can produce an empty instance:
// the fields are unexported and the only constructors are Parse and
// FromParts.
package nonempty

import (
	"errors"

	"parsekit/pkg/option"
)

// ErrEmptyInput is returned by Parse when the input slice has no
// elements. Match with errors.Is.
var ErrEmptyInput = errors.New("nonempty: input slice is empty")

// NonEmpty is an ordered sequence of T with at least one element.
// The zero value is not valid; obtain instances via Parse or FromParts.
type NonEmpty[T any] struct {
	head T
	tail []T
}

// Parse converts an ordinary slice into a NonEmpty, failing with
// ErrEmptyInput when the slice has no elements. Order is preserved and
// the input is not aliased.
func Parse[T any](s []T) (NonEmpty[T], error) {
	if len(s) == 0 {
		return NonEmpty[T]{}, ErrEmptyInput
	}
	tail := make([]T, len(s)-1)
	copy(tail, s[1:])
	return NonEmpty[T]{head: s[0], tail: tail}, nil
}

// FromParts builds a NonEmpty from a head element and optional trailing
// elements. It cannot fail: the head is always present.
func FromParts[T any](head T, tail ...T) NonEmpty[T] {
	rest := make([]T, len(tail))
	copy(rest, tail)
	return NonEmpty[T]{head: head, tail: rest}
}

// Head returns the first element. Total: there is no error path because
// the type guarantees the element exists.
func (n NonEmpty[T]) Head() T {
	return n.head
}

// Tail returns the elements after the head. May be empty.
func (n NonEmpty[T]) Tail() []T {
	out := make([]T, len(n.tail))
	copy(out, n.tail)
	return out
}

// Last returns the final element.
func (n NonEmpty[T]) Last() T {
	if len(n.tail) == 0 {
		return n.head
	}
	return n.tail[len(n.tail)-1]
}

// Len returns the number of elements. Always at least 1.
func (n NonEmpty[T]) Len() int {
	return 1 + len(n.tail)
}

// Slice flattens the sequence back into an ordinary slice. The result
// is freshly allocated; mutating it does not affect the NonEmpty.
func (n NonEmpty[T]) Slice() []T {
	out := make([]T, 0, n.Len())
	out = append(out, n.head)
	out = append(out, n.tail...)
	return out
}

// Append returns a new NonEmpty with the given elements added at the
// end. Non-emptiness is preserved under append, so there is no error
// path. The receiver is not modified.
func (n NonEmpty[T]) Append(elems ...T) NonEmpty[T] {
	tail := make([]T, 0, len(n.tail)+len(elems))
	tail = append(tail, n.tail...)
	tail = append(tail, elems...)
	return NonEmpty[T]{head: n.head, tail: tail}
}

// First returns the first element of an ordinary, unrefined slice as an
// Option. This is the honest signature for a possibly-empty slice; use
// Parse when the caller should establish non-emptiness once and carry
// the proof in the type instead.
func First[T any](s []T) option.Option[T] {
	if len(s) == 0 {
		return option.None[T]()
	}
	return option.Some(s[0])
}
