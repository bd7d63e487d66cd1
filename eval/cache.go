package eval

import uuid "github.com/satori/go.uuid"

type slot[R any] struct {
	value R
	ok    bool
}

// Cache is a reusable result buffer for repeated evaluation of the same
// Expression. It holds two slots per node (positive and negated,
// indexed by raw Id) and a copy of the Expression's identity token;
// EvaluateWith compares that token on entry and clears the cache
// automatically when it no longer matches.
//
// The zero value is an empty, uninitialized cache ready to use.
type Cache[R any] struct {
	slots []slot[R]
	token uuid.UUID
}

// NewCache returns an empty Cache.
func NewCache[R any]() *Cache[R] { return &Cache[R]{} }

// Clear discards every cached result and resets the stored token, so
// the next EvaluateWith call repopulates from scratch. Calling this
// manually is rarely necessary: EvaluateWith already detects a token
// mismatch and clears automatically.
func (c *Cache[R]) Clear() {
	c.slots = nil
	c.token = uuid.UUID{}
}
