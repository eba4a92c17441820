package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okvee/queuectl/internal/store"
)

func dlqCmd(s *store.Store) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dlq",
		Short: "Inspect and retry jobs in the dead letter queue",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List jobs that exhausted their retries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printJobs(s, cmd, store.JobDead)
		},
	}

	retryCmd := &cobra.Command{
		Use:   "retry <job-id>",
		Short: "Move a dead job back to pending with a clean attempt counter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			job, err := s.RetryDeadJob(cmd.Context(), args[0])
			if err != nil {
				switch {
				case errors.Is(err, store.ErrJobNotFound):
					return fmt.Errorf("no job with id %q", args[0])
				case errors.Is(err, store.ErrJobNotDead):
					return fmt.Errorf("job %q is not in the dead letter queue", args[0])
				}
				return err
			}

			fmt.Printf("Job %s moved from dead to pending.\n", job.ID)
			return nil
		},
	}

	cmd.AddCommand(listCmd, retryCmd)
	return cmd
}
