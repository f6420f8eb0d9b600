// Package binstore provides whole-document read/replace access to named
// JSON collections ("bins"). Two backends share the contract: a remote
// JSON bin HTTP API and a Postgres table, selected by configuration.
// Neither backend exposes partial updates; callers read the full document,
// mutate in memory and write once per logical operation.
package binstore

import (
	"context"
	"errors"
)

// ErrUnavailable signals an exhausted retry budget; callers must treat the
// operation as definitively failed and discard in-memory state.
var ErrUnavailable = errors.New("document store unavailable")

type Store interface {
	// ReadBin returns the latest full document for the bin.
	ReadBin(ctx context.Context, binID string) ([]byte, error)
	// WriteBin replaces the bin's document wholesale.
	WriteBin(ctx context.Context, binID string, doc []byte) error
}
