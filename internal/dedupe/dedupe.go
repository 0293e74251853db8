// Package dedupe coalesces concurrent calls that share a key so that only
// one producer runs per key at a time and every caller in the in-flight
// window observes the same outcome.
package dedupe

import "golang.org/x/sync/singleflight"

// Group coalesces calls by key. The zero value is ready to use.
type Group[T any] struct {
	sf singleflight.Group
}

// Do invokes fn once per key per in-flight window. Callers that arrive while
// a call with the same key is pending receive that call's result, value and
// error alike. The key is released once the call settles, so a later Do
// starts fresh even after a failure.
func (g *Group[T]) Do(key string, fn func() (T, error)) (T, error) {
	v, err, _ := g.sf.Do(key, func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
