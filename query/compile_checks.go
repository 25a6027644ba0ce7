package query

import gocmd "github.com/goliatone/go-command"

var (
	_ gocmd.Message = GetByIDMessage[any]{}
	_ gocmd.Message = ListMessage[any]{}
)
