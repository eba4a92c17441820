package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/okvee/queuectl/internal/store"
)

func listCmd(s *store.Store) *cobra.Command {
	var state string

	cmd := &cobra.Command{
		Use:   "list --state <state>",
		Short: "List jobs in a given state",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !store.ValidJobState(state) {
				return fmt.Errorf("unknown state %q (want pending, processing, completed or dead)", state)
			}

			return printJobs(s, cmd, state)
		},
	}

	cmd.Flags().StringVar(&state, "state", "", "Job state to filter by")
	cmd.MarkFlagRequired("state")

	return cmd
}

func printJobs(s *store.Store, cmd *cobra.Command, state string) error {
	writer := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(writer, "ID\tCOMMAND\tATTEMPTS\tMAX RETRIES\tRUN AT\tUPDATED")

	count := 0
	for job, err := range s.ListJobs(cmd.Context(), state) {
		if err != nil {
			return err
		}

		fmt.Fprintf(
			writer,
			"%s\t%s\t%d\t%d\t%s\t%s\n",
			job.ID,
			job.Command,
			job.Attempts,
			job.MaxRetries,
			job.RunAt.Format("2006-01-02 15:04:05"),
			job.UpdatedAt.Format("2006-01-02 15:04:05"),
		)
		count++
	}

	if count == 0 {
		fmt.Printf("No jobs in state %q.\n", state)
		return nil
	}

	return writer.Flush()
}

func statusCmd(s *store.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show job counts per state and the worker stop flag",
		RunE: func(cmd *cobra.Command, args []string) error {
			counts, err := s.CountJobsByState(cmd.Context())
			if err != nil {
				return err
			}

			writer := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
			for _, state := range []string{
				store.JobPending,
				store.JobProcessing,
				store.JobCompleted,
				store.JobDead,
			} {
				fmt.Fprintf(writer, "%s\t%d\n", state, counts[state])
			}
			if err := writer.Flush(); err != nil {
				return err
			}

			stopRequested, err := s.StopRequested(cmd.Context())
			if err != nil {
				return err
			}

			if stopRequested {
				fmt.Println("\nWorker stop flag is raised: workers exit at the next job boundary.")
			} else {
				fmt.Println("\nWorker stop flag is clear.")
			}
			return nil
		},
	}
}
