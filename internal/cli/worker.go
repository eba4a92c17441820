package cli

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/okvee/queuectl/internal/observability"
	"github.com/okvee/queuectl/internal/store"
	"github.com/okvee/queuectl/internal/worker"
)

func workerCmd(s *store.Store) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Run and signal workers",
	}

	cmd.AddCommand(workerRunCmd(s), workerStopCmd(s), workerResumeCmd(s))
	return cmd
}

func workerRunCmd(s *store.Store) *cobra.Command {
	var count int
	var pollInterval time.Duration
	var metricsAddr string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run worker loops until stopped",
		Long: `Run one or more worker loops in this process.

Workers exit at the next job boundary when the durable stop flag is
raised (queuectl worker stop) or on SIGINT/SIGTERM. A job already
executing always has its outcome reported before the worker exits.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return fmt.Errorf("count must be at least 1, got %d", count)
			}

			ctx := cmd.Context()
			logger := observability.NewLogger("worker")

			// A stop flag left over from a previous shutdown would make
			// these workers exit immediately; start from a clear one.
			if err := s.ClearStop(ctx); err != nil {
				return err
			}

			if metricsAddr != "" {
				mux := http.NewServeMux()
				mux.Handle("/metrics", promhttp.Handler())

				go func() {
					err := http.ListenAndServe(metricsAddr, mux)
					if err != nil && !errors.Is(err, http.ErrServerClosed) {
						logger.WithError(err).Warn("metrics listener stopped")
					}
				}()
				logger.WithField("addr", metricsAddr).Info("serving metrics")
			}

			var wg sync.WaitGroup
			for i := 1; i <= count; i++ {
				w := worker.New(i, s, logger).WithPollInterval(pollInterval)

				wg.Add(1)
				go func() {
					defer wg.Done()
					w.Run(ctx)
				}()
			}

			wg.Wait()
			logger.Info("all workers exited")
			return nil
		},
	}

	cmd.Flags().IntVar(&count, "count", 1, "Number of worker loops to run")
	cmd.Flags().DurationVar(&pollInterval, "poll-interval", worker.DefaultPollInterval, "How long to wait between polls when the queue is empty")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (disabled when empty)")

	return cmd
}

func workerStopCmd(s *store.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Ask running workers to exit at their next job boundary",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.RequestStop(cmd.Context()); err != nil {
				return err
			}

			fmt.Println("Stop requested. Workers finish their current job, then exit.")
			return nil
		},
	}
}

func workerResumeCmd(s *store.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "resume",
		Short: "Clear the stop flag so newly started workers keep running",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.ClearStop(cmd.Context()); err != nil {
				return err
			}

			fmt.Println("Stop flag cleared.")
			return nil
		},
	}
}
