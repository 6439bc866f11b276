// Package storage provides the durable local key/value repository backing
// the civic data store. Each collection is persisted as a single
// JSON-serialized document under a fixed key, which keeps the on-disk
// contract identical to the original device-local layout while letting an
// embedded database supply durability.
package storage

import (
	"context"
	"errors"
)

// Fixed document keys. These names are load-bearing: existing local state
// written by earlier versions is read back under the same keys.
const (
	KeyToken        = "civiccred_token"
	KeyCurrentUser  = "civiccred_user"
	KeyUsers        = "civiccred_users"
	KeyReports      = "civiccred_reports"
	KeyTransactions = "civiccred_transactions"
	KeyTheme        = "civiccred_theme"
)

// ErrKeyNotFound is returned by Get when a key has never been written
// (or has been deleted).
var ErrKeyNotFound = errors.New("storage: key not found")

// Repository is the minimal get/put surface the core needs. A real backend
// (file, embedded DB, remote store) can be swapped in behind it without
// touching the service contracts.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}
