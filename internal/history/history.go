// Package history records the input, result, and AST of past
// evaluate/simplify/solve calls so internal/api can let a client list
// or re-fetch what it previously computed. It is purely a consumer of
// internal/symexpr; the core expression engine has no notion of
// history and never imports this package.
package history

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("the requested history record was not found")
)

// Kind identifies which internal/symexpr operation produced a Record.
type Kind string

const (
	KindEvaluate Kind = "evaluate"
	KindSimplify Kind = "simplify"
	KindSolve    Kind = "solve"
)

// Record is a single past call to evaluate, simplify, or solve.
type Record struct {
	ID uuid.UUID

	Kind Kind

	// Input is the raw source text the caller submitted.
	Input string

	// Target is the solve variable; empty for Evaluate and Simplify.
	Target string

	// ResultText is the canonical printed form of the result
	// expression (simplify, solve) or of the evaluated number
	// (evaluate).
	ResultText string

	// ResultValue holds the numeric result for Evaluate calls, and is
	// nil for Simplify/Solve.
	ResultValue *float64

	// AST is a rezi-encoded snapshot of the result expression tree,
	// letting a stored record be replayed without re-parsing Input.
	AST []byte

	Created time.Time
}

// Store is the persistence interface internal/api depends on.
// internal/history/inmem and internal/history/sqlite each provide one.
type Store interface {
	Create(ctx context.Context, r Record) (Record, error)
	GetByID(ctx context.Context, id uuid.UUID) (Record, error)
	GetAll(ctx context.Context) ([]Record, error)
	Close() error
}
