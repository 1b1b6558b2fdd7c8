package cache

import "errors"

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

// ErrStoreMiss is returned by Store.Get when the key is absent. Any other
// error is an I/O fault the manager absorbs as a miss.
var ErrStoreMiss = errors.New("store miss")

type (
	// Store is the persistent cache tier. Implementations rely on the
	// engine's own concurrency guarantees for distinct keys.
	Store interface {
		Get(key []byte) ([]byte, error)
		Put(key, value []byte) error
		Delete(key []byte) error
		DeleteRange(start, end []byte) error
		Close() error
	}

	// Metrics records cache manager counters.
	Metrics interface {
		ObserveHit(tier string)
		ObserveMiss()
		ObserveEvictions(count int)
		ObserveInvalidation(scope string, count int)
		ObserveStoreFault(operation string)
	}
)
