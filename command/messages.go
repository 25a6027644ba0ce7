// Package command defines the generic mutating data carriers of the
// datacontext layer. Messages are plain shapes with validation only;
// execution belongs to the data-access layer that resolves a context
// and constructs repositories for it.
package command

import (
	"reflect"
	"strings"

	"github.com/google/uuid"
)

const (
	TypeCreateEntity = "datacontext.command.entity.create"
	TypeUpdateEntity = "datacontext.command.entity.update"
	TypeDeleteEntity = "datacontext.command.entity.delete"
)

// CreateMessage carries a new record of entity type T. Actor is optional and
// only meaningful for auditable records.
type CreateMessage[T any] struct {
	Record T
	Actor  string
}

func (CreateMessage[T]) Type() string { return TypeCreateEntity }

func (m CreateMessage[T]) Validate() error {
	if isNilRecord(m.Record) {
		return commandValidationError("record", "record is required")
	}
	return nil
}

// UpdateMessage carries a full replacement record for an existing entity.
type UpdateMessage[T any] struct {
	ID     string
	Record T
	Actor  string
}

func (UpdateMessage[T]) Type() string { return TypeUpdateEntity }

func (m UpdateMessage[T]) Validate() error {
	if strings.TrimSpace(m.ID) == "" {
		return commandValidationError("id", "id is required")
	}
	if err := uuid.Validate(m.ID); err != nil {
		return commandValidationError("id", "id must be a valid uuid")
	}
	if isNilRecord(m.Record) {
		return commandValidationError("record", "record is required")
	}
	return nil
}

// DeleteMessage requests removal of an entity by id. Soft-deletable records
// are flagged, not erased; that distinction is the executing store's concern.
type DeleteMessage[T any] struct {
	ID    string
	Actor string
}

func (DeleteMessage[T]) Type() string { return TypeDeleteEntity }

func (m DeleteMessage[T]) Validate() error {
	if strings.TrimSpace(m.ID) == "" {
		return commandValidationError("id", "id is required")
	}
	if err := uuid.Validate(m.ID); err != nil {
		return commandValidationError("id", "id must be a valid uuid")
	}
	return nil
}

func isNilRecord(record any) bool {
	if record == nil {
		return true
	}
	value := reflect.ValueOf(record)
	switch value.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		return value.IsNil()
	}
	return false
}
