// Package guard serializes ledger mutations per identity and rejects
// re-entrant calls made while a mutation for the same identity is running
// on the same call chain.
package guard

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
)

// ErrReentrantCall is returned when a call chain tries to enter a guarded
// section it already holds for the same identity.
var ErrReentrantCall = errors.New("reentrant call")

const defaultShards = 128

type heldKey struct{}

// held records the shards and keys acquired by one call chain.
type held struct {
	parent *held
	shard  int
	key    string
}

func (h *held) holdsKey(key string) bool {
	for n := h; n != nil; n = n.parent {
		if n.key == key {
			return true
		}
	}
	return false
}

func (h *held) holdsShard(shard int) bool {
	for n := h; n != nil; n = n.parent {
		if n.shard == shard {
			return true
		}
	}
	return false
}

// Guard is a fixed set of lock shards selected by an FNV-1a hash of the key.
type Guard struct {
	shards []chan struct{}
}

func New() *Guard {
	return NewWithShards(defaultShards)
}

func NewWithShards(n int) *Guard {
	if n <= 0 {
		n = defaultShards
	}
	g := &Guard{shards: make([]chan struct{}, n)}
	for i := range g.shards {
		g.shards[i] = make(chan struct{}, 1)
	}
	return g
}

// Do runs fn while holding the lock for key. Waiting stops when ctx is done.
// fn receives a context marked with the held key; passing it back into Do
// for the same key fails with ErrReentrantCall.
func (g *Guard) Do(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	parent, _ := ctx.Value(heldKey{}).(*held)
	if parent.holdsKey(key) {
		return fmt.Errorf("%w: %s", ErrReentrantCall, key)
	}

	shard := g.shardFor(key)
	// The chain may already own this shard through a different key.
	if !parent.holdsShard(shard) {
		select {
		case g.shards[shard] <- struct{}{}:
		case <-ctx.Done():
			return ctx.Err()
		}
		defer func() { <-g.shards[shard] }()
	}

	return fn(context.WithValue(ctx, heldKey{}, &held{parent: parent, shard: shard, key: key}))
}

func (g *Guard) shardFor(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(g.shards)))
}
