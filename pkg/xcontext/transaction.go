package xcontext

import (
	"context"

	"gorm.io/gorm"
)

type dbTransactionKey struct{}

type dbTransaction struct {
	tx       *gorm.DB
	finished bool
}

// WithDBTransaction begins a database transaction and attaches it to the
// returned context. Until the transaction finishes, DB() resolves to it, so
// every repository call inside the scope joins a single atomic mutation.
func WithDBTransaction(ctx context.Context) context.Context {
	return context.WithValue(ctx, dbTransactionKey{}, &dbTransaction{tx: DB(ctx).Begin()})
}

// WithCommitDBTransaction commits the transaction of this context, if any.
func WithCommitDBTransaction(ctx context.Context) context.Context {
	if t, ok := ctx.Value(dbTransactionKey{}).(*dbTransaction); ok && !t.finished {
		t.tx.Commit()
		t.finished = true
	}

	return ctx
}

// WithRollbackDBTransaction rolls back the transaction of this context unless
// it was already committed. Deferring it right after WithDBTransaction makes
// every early return safe.
func WithRollbackDBTransaction(ctx context.Context) context.Context {
	if t, ok := ctx.Value(dbTransactionKey{}).(*dbTransaction); ok && !t.finished {
		t.tx.Rollback()
		t.finished = true
	}

	return ctx
}
