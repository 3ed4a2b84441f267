// Package option provides a generic present/absent value type.
//
// An Option forces callers to acknowledge absence at the point of use
// instead of smuggling it through a sentinel value: every read goes
// through Get, IsSome, or OrElse, so the "no value" branch is visible
// in the code that consumes it.
package option

// Option holds either a value of type T or nothing.
// The zero value is None.
type Option[T any] struct {
	value T
	ok    bool
}

// Some returns an Option holding v.
func Some[T any](v T) Option[T] {
	return Option[T]{value: v, ok: true}
}

// None returns an empty Option.
func None[T any]() Option[T] {
	return Option[T]{}
}

// Get returns the value and whether it is present.
func (o Option[T]) Get() (T, bool) {
	return o.value, o.ok
}

// IsSome reports whether the option holds a value.
func (o Option[T]) IsSome() bool {
	return o.ok
}

// OrElse returns the value if present, otherwise fallback.
func (o Option[T]) OrElse(fallback T) T {
	if o.ok {
		return o.value
	}
	return fallback
}

// Map applies f to the value if present.
// Package-level because Go methods cannot introduce type parameters.
func Map[A, B any](o Option[A], f func(A) B) Option[B] {
	if o.ok {
		return Some(f(o.value))
	}
	return None[B]()
}
