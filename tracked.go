package sprig

// Tracked wraps a value and records whether it has been handed out for
// writing since the last Reset. Reads never change the state. Every write
// access (Mut, Set, MarkModified) flips the wrapper to modified without
// comparing old and new values.
//
// The zero value is an unmodified wrapper around the zero T.
type Tracked[T any] struct {
	value    T
	modified bool
}

// NewTracked returns an unmodified wrapper around v.
func NewTracked[T any](v T) Tracked[T] {
	return Tracked[T]{value: v}
}

// NewModified returns a wrapper around v that starts out modified.
func NewModified[T any](v T) Tracked[T] {
	return Tracked[T]{value: v, modified: true}
}

// IsModified reports whether the value received write access since the last Reset.
func (t *Tracked[T]) IsModified() bool {
	return t.modified
}

// IsUnmodified is the negation of IsModified.
func (t *Tracked[T]) IsUnmodified() bool {
	return !t.modified
}

// Get returns a copy of the wrapped value.
func (t *Tracked[T]) Get() T {
	return t.value
}

// Ref returns a pointer to the wrapped value for reading. The caller MUST NOT
// write through it; use Mut for that.
func (t *Tracked[T]) Ref() *T {
	return &t.value
}

// Mut marks the wrapper modified and returns a pointer to the wrapped value.
func (t *Tracked[T]) Mut() *T {
	t.modified = true
	return &t.value
}

// Set replaces the wrapped value and marks the wrapper modified.
func (t *Tracked[T]) Set(v T) {
	t.value = v
	t.modified = true
}

// MarkModified flags the wrapper as modified without touching the value.
func (t *Tracked[T]) MarkModified() {
	t.modified = true
}

// Reset returns the wrapper to the unmodified state. It reports whether
// anything was cleared.
func (t *Tracked[T]) Reset() bool {
	if !t.modified {
		return false
	}
	t.modified = false
	return true
}

// Unwrap returns the wrapped value regardless of state.
func (t Tracked[T]) Unwrap() T {
	return t.value
}
