package sqlstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/uptrace/bun"
)

// OpenerFromDB returns an opener over an already-open bun.DB. The context is
// built once and shared across materializations.
func OpenerFromDB(name string, db *bun.DB, models ...any) ContextOpener {
	var (
		once     sync.Once
		instance *BunContext
		buildErr error
	)
	return func(context.Context) (*BunContext, error) {
		once.Do(func() {
			instance, buildErr = NewBunContext(name, db, models...)
		})
		return instance, buildErr
	}
}

// OpenerFromPersistence returns an opener over a go-persistence-bun client or
// any other bun.DB carrier.
func OpenerFromPersistence(name string, persistenceClient any, models ...any) ContextOpener {
	db, err := resolveBunDB(persistenceClient)
	if err != nil {
		return func(context.Context) (*BunContext, error) {
			return nil, err
		}
	}
	return OpenerFromDB(name, db, models...)
}

func resolveBunDB(candidate any) (*bun.DB, error) {
	switch typed := candidate.(type) {
	case nil:
		return nil, fmt.Errorf("sqlstore: persistence client is required")
	case *bun.DB:
		return typed, nil
	case interface{ DB() *bun.DB }:
		db := typed.DB()
		if db == nil {
			return nil, fmt.Errorf("sqlstore: persistence client returned nil bun db")
		}
		return db, nil
	default:
		return nil, fmt.Errorf("sqlstore: unsupported persistence client type %T", candidate)
	}
}
