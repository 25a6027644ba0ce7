// Package query defines the generic read-side data carriers of the
// datacontext layer: get-by-id and paged-list shapes with validation only.
package query

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const (
	TypeGetEntityByID = "datacontext.query.entity.get_by_id"
	TypeListEntities  = "datacontext.query.entity.list"
)

const (
	DefaultPerPage = 25
	MaxPerPage     = 200
)

type GetByIDMessage[T any] struct {
	ID string
}

func (GetByIDMessage[T]) Type() string { return TypeGetEntityByID }

func (m GetByIDMessage[T]) Validate() error {
	if strings.TrimSpace(m.ID) == "" {
		return fmt.Errorf("query: id is required")
	}
	if err := uuid.Validate(m.ID); err != nil {
		return fmt.Errorf("query: id must be a valid uuid")
	}
	return nil
}

// ListMessage is a paged query shape. Zero Page and PerPage mean first page
// with DefaultPerPage entries.
type ListMessage[T any] struct {
	Page           int
	PerPage        int
	OrderBy        string
	IncludeDeleted bool
}

func (ListMessage[T]) Type() string { return TypeListEntities }

func (m ListMessage[T]) Validate() error {
	if m.Page < 0 {
		return fmt.Errorf("query: page must be >= 0")
	}
	if m.PerPage < 0 {
		return fmt.Errorf("query: per_page must be >= 0")
	}
	if m.PerPage > MaxPerPage {
		return fmt.Errorf("query: per_page must be <= %d", MaxPerPage)
	}
	return nil
}

// Normalize returns the effective page and per-page values for execution.
func (m ListMessage[T]) Normalize() (int, int) {
	page := m.Page
	if page <= 0 {
		page = 1
	}
	perPage := m.PerPage
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	return page, perPage
}
