package state

// Accessor reads the current value under verification. Get is invoked once
// per condition evaluation; implementations must not cache between calls.
type Accessor[T any] interface {
	Get() (T, error)
}

// Func adapts a supplier function into an Accessor.
type Func[T any] func() (T, error)

func (f Func[T]) Get() (T, error) {
	return f()
}

// FromFunc wraps a supplier that reads the live source. The supplier may
// return an error when the source is transiently unavailable.
func FromFunc[T any](supplier func() (T, error)) Accessor[T] {
	return Func[T](supplier)
}

// Supply wraps a supplier whose read cannot fail.
func Supply[T any](supplier func() T) Accessor[T] {
	return Func[T](func() (T, error) {
		return supplier(), nil
	})
}

// Of returns an accessor over a fixed value, for checks against plain
// values that have already been read.
func Of[T any](v T) Accessor[T] {
	return Func[T](func() (T, error) {
		return v, nil
	})
}
