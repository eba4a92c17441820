// Package cli is the user-facing command surface. Commands are thin
// pass-throughs over the store; all queue logic lives below.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/okvee/queuectl/internal/store"
)

// RootCmd is the root Cobra command that gets called from the main
// func. All other sub-commands are registered here.
func RootCmd(s *store.Store) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "queuectl",
		Short:         "queuectl is a durable background job queue backed by PostgreSQL.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(
		enqueueCmd(s),
		listCmd(s),
		statusCmd(s),
		dlqCmd(s),
		configCmd(s),
		workerCmd(s),
	)

	return cmd
}
