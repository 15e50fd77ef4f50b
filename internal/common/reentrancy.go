package common

import (
	"context"
	"errors"
)

var ErrReentry = errors.New("the critical section is already entered")

type guardKey struct{}

// ReentrancyGuard is a try-enter latch around a critical section. The latch
// travels with the context: a nested call inherits the marked context and is
// refused, while independent requests carry their own contexts and pass. The
// mark ends with the context scope, so it is released on every exit path
// without an explicit unlock.
type ReentrancyGuard struct{}

func NewReentrancyGuard() *ReentrancyGuard {
	return &ReentrancyGuard{}
}

func (g *ReentrancyGuard) Enter(ctx context.Context) (context.Context, error) {
	if ctx.Value(guardKey{}) != nil {
		return nil, ErrReentry
	}

	return context.WithValue(ctx, guardKey{}, struct{}{}), nil
}
