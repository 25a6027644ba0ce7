package command

import gocmd "github.com/goliatone/go-command"

var (
	_ gocmd.Message = CreateMessage[any]{}
	_ gocmd.Message = UpdateMessage[any]{}
	_ gocmd.Message = DeleteMessage[any]{}
)
