package xcontext

import (
	"context"
	"net/http"

	"github.com/birdsofspace/spacebirdz-backend/config"
	"github.com/birdsofspace/spacebirdz-backend/pkg/logger"
	"gorm.io/gorm"
)

type (
	dbKey      struct{}
	txKey      struct{}
	loggerKey  struct{}
	configsKey struct{}
	userIDKey  struct{}
	requestKey struct{}
)

func WithDB(ctx context.Context, db *gorm.DB) context.Context {
	return context.WithValue(ctx, dbKey{}, db)
}

// txHolder is shared by every context derived from the one that opened the
// transaction, so finalizing through any of them clears it for all.
type txHolder struct {
	tx *gorm.DB
}

// DB returns the current database handle. If a transaction was opened with
// WithDBTransaction and not yet committed or rolled back, the transaction is
// returned instead of the root handle.
func DB(ctx context.Context) *gorm.DB {
	if holder, ok := ctx.Value(txKey{}).(*txHolder); ok && holder.tx != nil {
		return holder.tx
	}

	db := ctx.Value(dbKey{})
	if db == nil {
		panic("no database in context")
	}

	return db.(*gorm.DB)
}

// WithDBTransaction begins a transaction on the context database. Every
// repository call through the returned context joins this transaction until
// WithCommitDBTransaction or WithRollbackDBTransaction is called.
func WithDBTransaction(ctx context.Context) context.Context {
	return context.WithValue(ctx, txKey{}, &txHolder{tx: DB(ctx).Begin()})
}

// WithCommitDBTransaction commits the open transaction and clears the holder,
// so the deferred rollback on the same context becomes a no-op.
func WithCommitDBTransaction(ctx context.Context) context.Context {
	if holder, ok := ctx.Value(txKey{}).(*txHolder); ok && holder.tx != nil {
		holder.tx.Commit()
		holder.tx = nil
	}

	return ctx
}

func WithRollbackDBTransaction(ctx context.Context) context.Context {
	if holder, ok := ctx.Value(txKey{}).(*txHolder); ok && holder.tx != nil {
		holder.tx.Rollback()
		holder.tx = nil
	}

	return ctx
}

func WithLogger(ctx context.Context, l logger.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

func Logger(ctx context.Context) logger.Logger {
	if l := ctx.Value(loggerKey{}); l != nil {
		return l.(logger.Logger)
	}

	return logger.NewLogger(logger.DEBUG)
}

func WithConfigs(ctx context.Context, cfg config.Configs) context.Context {
	return context.WithValue(ctx, configsKey{}, cfg)
}

func Configs(ctx context.Context) config.Configs {
	cfg := ctx.Value(configsKey{})
	if cfg == nil {
		return config.Configs{}
	}

	return cfg.(config.Configs)
}

func WithRequestUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey{}, id)
}

// RequestUserID returns the authenticated caller of the current request, or
// an empty string for unauthenticated requests.
func RequestUserID(ctx context.Context) string {
	if id := ctx.Value(userIDKey{}); id != nil {
		return id.(string)
	}

	return ""
}

func WithHTTPRequest(ctx context.Context, r *http.Request) context.Context {
	return context.WithValue(ctx, requestKey{}, r)
}

func HTTPRequest(ctx context.Context) *http.Request {
	if r := ctx.Value(requestKey{}); r != nil {
		return r.(*http.Request)
	}

	return nil
}
