// Package testutils holds in-memory repositories for service tests.
// Each store serializes transactions with one mutex and rolls back the
// whole state when the callback fails.
package testutils

import "sync"

type txLock struct {
	mu   *sync.Mutex
	inTx bool
}

func newTxLock() txLock {
	return txLock{mu: &sync.Mutex{}}
}

// hold locks unless the caller already runs inside a transaction.
func (l txLock) hold() func() {
	if l.inTx {
		return func() {}
	}
	l.mu.Lock()
	return l.mu.Unlock
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
