package sqlstore

import "github.com/goliatone/go-datacontext/core"

var (
	_ core.DataContext       = (*BunContext)(nil)
	_ core.ContextDescriptor = (*Descriptor)(nil)
	_ core.ContextFactory    = (*ContextFactory)(nil)
	_ Materializer           = (*Descriptor)(nil)
)
