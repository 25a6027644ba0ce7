package sqlstore

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-datacontext/core"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// RepositoryFor builds a go-repository-bun repository for T on the given
// context. The context must be bun-backed and must own T's entity type; a
// repository over a context that does not own the record would silently read
// and write the wrong database.
func RepositoryFor[T any](dataContext core.DataContext, handlers repository.ModelHandlers[T]) (repository.Repository[T], error) {
	if dataContext == nil {
		return nil, fmt.Errorf("sqlstore: data context is required")
	}
	provider, ok := dataContext.(interface{ DB() *bun.DB })
	if !ok {
		return nil, fmt.Errorf("sqlstore: context %s is not bun-backed", dataContext.Name())
	}
	db := provider.DB()
	if db == nil {
		return nil, fmt.Errorf("sqlstore: context %s has no bun db", dataContext.Name())
	}

	entityType := core.EntityTypeFor[T]()
	if !dataContext.Contains(entityType) {
		return nil, fmt.Errorf("sqlstore: context %s does not own %s", dataContext.Name(), entityType)
	}

	repo := repository.NewRepository[T](db, handlers)
	if validator, ok := repo.(repository.Validator); ok {
		if err := validator.Validate(); err != nil {
			return nil, fmt.Errorf("sqlstore: invalid repository wiring for %s: %w", entityType, err)
		}
	}
	return repo, nil
}

// StringIDHandlers builds the standard handler set for records keyed by a
// string uuid column named "id".
func StringIDHandlers[T any](newRecord func() T, getID func(T) string, setID func(T, string)) repository.ModelHandlers[T] {
	return repository.ModelHandlers[T]{
		NewRecord: newRecord,
		GetID: func(record T) uuid.UUID {
			return parseUUID(getID(record))
		},
		SetID: func(record T, id uuid.UUID) {
			setID(record, id.String())
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(record T) string {
			return strings.TrimSpace(getID(record))
		},
	}
}

func parseUUID(value string) uuid.UUID {
	parsed, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil {
		return uuid.Nil
	}
	return parsed
}
