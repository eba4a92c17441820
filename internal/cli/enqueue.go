package cli

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/okvee/queuectl/internal/store"
)

func enqueueCmd(s *store.Store) *cobra.Command {
	var jobID string
	var command string
	var maxRetries int

	cmd := &cobra.Command{
		Use:   "enqueue --command <shell command>",
		Short: "Add a job to the queue",
		RunE: func(cmd *cobra.Command, args []string) error {
			if jobID == "" {
				jobID = uuid.NewString()
			}

			var retries *int
			if cmd.Flags().Changed("max-retries") {
				if maxRetries < 0 {
					return fmt.Errorf("max-retries must be non-negative, got %d", maxRetries)
				}
				retries = &maxRetries
			}

			job, err := s.SubmitJob(cmd.Context(), jobID, command, retries)
			if err != nil {
				if errors.Is(err, store.ErrDuplicateJob) {
					return fmt.Errorf("job %q already exists, use a unique id", jobID)
				}
				return err
			}

			fmt.Printf("Enqueued job %s (max retries: %d)\n", job.ID, job.MaxRetries)
			return nil
		},
	}

	cmd.Flags().StringVar(&jobID, "id", "", "Job id (generated when omitted)")
	cmd.Flags().StringVar(&command, "command", "", "Shell command to execute")
	cmd.Flags().IntVar(&maxRetries, "max-retries", 0, "Attempts allowed before the job is moved to the DLQ (default from config)")
	cmd.MarkFlagRequired("command")

	return cmd
}
