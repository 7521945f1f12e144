package cmd

import (
	"context"

	"github.com/slatecss/slate/cli/cmd/repl"
	"github.com/slatecss/slate/log"
)

// Repl launches the interactive scanner playground.
type Repl struct{}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	cacheDir := kongContextFrom(ctx).Model.Vars()[CacheIdentifier]

	return repl.Run(ctx, cacheDir, log.Default(), scanOptionsFrom(ctx)...)
}
