// Package core contains the canonical datacontext contracts and the
// resolution engine that maps domain entity types onto the persistence
// context that owns them. Storage adapters must depend on this package;
// core must not depend on a specific storage engine.
package core
