package core

import "time"

// Entity trait markers. These are contracts only; the engine attaches no
// behavior to them. Storage adapters and generic handlers use them to detect
// which lifecycle columns a record carries.

// Creatable marks records that track their creation instant.
type Creatable interface {
	CreatedTime() time.Time
}

// Modifiable marks records that track their last modification instant.
type Modifiable interface {
	ModifiedTime() time.Time
}

// SoftDeletable marks records that are flagged deleted rather than removed.
// A nil deletion time means the record is live.
type SoftDeletable interface {
	DeletedTime() *time.Time
}

// Auditable marks records that carry full lifecycle stamps plus the actor
// responsible for the last change.
type Auditable interface {
	Creatable
	Modifiable
	AuditActor() string
}
