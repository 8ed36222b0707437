package xcontext

import (
	"context"
	"net/http"

	"github.com/bwmarrin/snowflake"
	"github.com/gorilla/sessions"
	"github.com/veleo-lab/backend/config"
	"github.com/veleo-lab/backend/pkg/authenticator"
	"github.com/veleo-lab/backend/pkg/logger"
	"gorm.io/gorm"
)

type (
	configsKey       struct{}
	loggerKey        struct{}
	dbKey            struct{}
	dbTxKey          struct{}
	requestUserIDKey struct{}
	tokenEngineKey   struct{}
	sessionStoreKey  struct{}
	httpClientKey    struct{}
	httpRequestKey   struct{}
	snowflakeKey     struct{}
)

func WithConfigs(ctx context.Context, configs config.Configs) context.Context {
	return context.WithValue(ctx, configsKey{}, configs)
}

func Configs(ctx context.Context) config.Configs {
	return ctx.Value(configsKey{}).(config.Configs)
}

func WithLogger(ctx context.Context, logger logger.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

func Logger(ctx context.Context) logger.Logger {
	return ctx.Value(loggerKey{}).(logger.Logger)
}

func WithDB(ctx context.Context, db *gorm.DB) context.Context {
	return context.WithValue(ctx, dbKey{}, db)
}

// DB returns the current database handle. Inside WithDBTransaction it is the
// transaction, not the root handle.
func DB(ctx context.Context) *gorm.DB {
	if tx := ctx.Value(dbTxKey{}); tx != nil {
		return tx.(*gorm.DB)
	}

	return ctx.Value(dbKey{}).(*gorm.DB)
}

// WithDBTransaction begins a transaction and makes DB(ctx) return it until
// the transaction is committed or rolled back.
func WithDBTransaction(ctx context.Context) context.Context {
	return context.WithValue(ctx, dbTxKey{}, DB(ctx).Begin())
}

func WithCommitDBTransaction(ctx context.Context) context.Context {
	if tx := ctx.Value(dbTxKey{}); tx != nil {
		tx.(*gorm.DB).Commit()
	}

	return context.WithValue(ctx, dbTxKey{}, nil)
}

func WithRollbackDBTransaction(ctx context.Context) context.Context {
	if tx := ctx.Value(dbTxKey{}); tx != nil {
		tx.(*gorm.DB).Rollback()
	}

	return context.WithValue(ctx, dbTxKey{}, nil)
}

func WithRequestUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestUserIDKey{}, id)
}

// RequestUserID returns the authenticated user id, or an empty string for an
// anonymous request.
func RequestUserID(ctx context.Context) string {
	if id := ctx.Value(requestUserIDKey{}); id != nil {
		return id.(string)
	}

	return ""
}

func WithTokenEngine(ctx context.Context, engine authenticator.TokenEngine) context.Context {
	return context.WithValue(ctx, tokenEngineKey{}, engine)
}

func TokenEngine(ctx context.Context) authenticator.TokenEngine {
	return ctx.Value(tokenEngineKey{}).(authenticator.TokenEngine)
}

func WithSessionStore(ctx context.Context, store sessions.Store) context.Context {
	return context.WithValue(ctx, sessionStoreKey{}, store)
}

func SessionStore(ctx context.Context) sessions.Store {
	return ctx.Value(sessionStoreKey{}).(sessions.Store)
}

func WithHTTPClient(ctx context.Context, client *http.Client) context.Context {
	return context.WithValue(ctx, httpClientKey{}, client)
}

func HTTPClient(ctx context.Context) *http.Client {
	if client := ctx.Value(httpClientKey{}); client != nil {
		return client.(*http.Client)
	}

	return http.DefaultClient
}

func WithHTTPRequest(ctx context.Context, r *http.Request) context.Context {
	return context.WithValue(ctx, httpRequestKey{}, r)
}

func HTTPRequest(ctx context.Context) *http.Request {
	if r := ctx.Value(httpRequestKey{}); r != nil {
		return r.(*http.Request)
	}

	return nil
}

func WithSnowFlake(ctx context.Context, node *snowflake.Node) context.Context {
	return context.WithValue(ctx, snowflakeKey{}, node)
}

func SnowFlake(ctx context.Context) *snowflake.Node {
	return ctx.Value(snowflakeKey{}).(*snowflake.Node)
}
