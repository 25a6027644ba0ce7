// Package sqlstore provides the bun-backed persistence context
// implementations behind the core resolution contracts: named contexts over a
// bun.DB, lazily materialized descriptors, and a lifetime-policy factory.
package sqlstore

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/goliatone/go-datacontext/core"
	"github.com/uptrace/bun"
)

// BunContext is a live persistence context: a named bun.DB plus the explicit
// set of entity types it owns. The model is fixed at construction; contexts
// never learn entity types at runtime.
type BunContext struct {
	name  string
	db    *bun.DB
	model []core.EntityType
}

// NewBunContext builds a context over db owning the given models. Models must
// be pointers to record structs, e.g. (*invoiceRecord)(nil); they are
// registered on the bun.DB so fixtures and relations resolve.
func NewBunContext(name string, db *bun.DB, models ...any) (*BunContext, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("sqlstore: context name is required")
	}
	if db == nil {
		return nil, fmt.Errorf("sqlstore: bun db is required")
	}
	if len(models) == 0 {
		return nil, fmt.Errorf("sqlstore: context %s requires at least one model", name)
	}

	seen := make(map[core.EntityType]bool, len(models))
	model := make([]core.EntityType, 0, len(models))
	for _, candidate := range models {
		entityType, err := entityTypeForModel(name, candidate)
		if err != nil {
			return nil, err
		}
		if seen[entityType] {
			return nil, fmt.Errorf("sqlstore: context %s declares %s twice", name, entityType)
		}
		seen[entityType] = true
		model = append(model, entityType)
		db.RegisterModel(candidate)
	}

	return &BunContext{name: name, db: db, model: model}, nil
}

func (c *BunContext) Name() string {
	if c == nil {
		return ""
	}
	return c.name
}

func (c *BunContext) Model() []core.EntityType {
	if c == nil {
		return nil
	}
	return append([]core.EntityType(nil), c.model...)
}

func (c *BunContext) Contains(entityType core.EntityType) bool {
	if c == nil || entityType == nil {
		return false
	}
	for _, owned := range c.model {
		if owned == entityType {
			return true
		}
	}
	return false
}

func (c *BunContext) DB() *bun.DB {
	if c == nil {
		return nil
	}
	return c.db
}

func entityTypeForModel(contextName string, model any) (core.EntityType, error) {
	if model == nil {
		return nil, fmt.Errorf("sqlstore: context %s received a nil model", contextName)
	}
	modelType := reflect.TypeOf(model)
	if modelType.Kind() != reflect.Pointer || modelType.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf(
			"sqlstore: context %s model must be a pointer to a record struct, got %s",
			contextName, modelType,
		)
	}
	return modelType.Elem(), nil
}
