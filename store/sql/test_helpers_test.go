package sqlstore

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/goliatone/go-datacontext/core"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"
)

type invoiceRecord struct {
	bun.BaseModel `bun:"table:invoices,alias:inv"`

	ID        string     `bun:"id,pk"`
	Number    string     `bun:"number,notnull"`
	Total     int64      `bun:"total,notnull,default:0"`
	CreatedBy string     `bun:"created_by"`
	CreatedAt time.Time  `bun:"created_at,notnull"`
	UpdatedAt time.Time  `bun:"updated_at,notnull"`
	DeletedAt *time.Time `bun:"deleted_at,nullzero"`
}

func (r *invoiceRecord) CreatedTime() time.Time  { return r.CreatedAt }
func (r *invoiceRecord) ModifiedTime() time.Time { return r.UpdatedAt }
func (r *invoiceRecord) DeletedTime() *time.Time { return r.DeletedAt }
func (r *invoiceRecord) AuditActor() string      { return r.CreatedBy }

type paymentRecord struct {
	bun.BaseModel `bun:"table:payments,alias:pay"`

	ID        string    `bun:"id,pk"`
	InvoiceID string    `bun:"invoice_id,notnull"`
	Amount    int64     `bun:"amount,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull"`
}

type customerRecord struct {
	bun.BaseModel `bun:"table:customers,alias:cus"`

	ID   string `bun:"id,pk"`
	Name string `bun:"name,notnull"`
}

var (
	_ core.Auditable     = (*invoiceRecord)(nil)
	_ core.SoftDeletable = (*invoiceRecord)(nil)
)

func newTestDB(t *testing.T, name string) *bun.DB {
	t.Helper()

	dsn := fmt.Sprintf(
		"file:datacontext-%s-%d?mode=memory&cache=shared&_foreign_keys=on",
		name, time.Now().UnixNano(),
	)
	db, err := NewSQLiteDB(dsn)
	if err != nil {
		t.Fatalf("open sqlite db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func createTable(t *testing.T, db *bun.DB, model any) {
	t.Helper()

	if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(context.Background()); err != nil {
		t.Fatalf("create table for %T: %v", model, err)
	}
}

func invoiceHandlers() repository.ModelHandlers[*invoiceRecord] {
	return StringIDHandlers(
		func() *invoiceRecord { return &invoiceRecord{} },
		func(record *invoiceRecord) string {
			if record == nil {
				return ""
			}
			return record.ID
		},
		func(record *invoiceRecord, id string) {
			if record == nil {
				return
			}
			record.ID = id
		},
	)
}
