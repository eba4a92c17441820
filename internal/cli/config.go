package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/okvee/queuectl/internal/store"
)

func configCmd(s *store.Store) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Read and change durable queue configuration",
	}

	getCmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Show a configuration value (built-in default when unset)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := s.GetConfig(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("%s = %s\n", args[0], value)
			return nil
		},
	}

	setCmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value (max_retries, backoff_base)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]

			if err := validateConfig(key, value); err != nil {
				return err
			}

			if err := s.SetConfig(cmd.Context(), key, value); err != nil {
				return err
			}

			fmt.Printf("%s = %s\n", key, value)
			return nil
		},
	}

	cmd.AddCommand(getCmd, setCmd)
	return cmd
}

// validateConfig rejects values the store would silently fall back from.
// Changes apply to future submits and failure reports only.
func validateConfig(key, value string) error {
	switch key {
	case store.ConfigMaxRetries:
		parsed, err := strconv.Atoi(value)
		if err != nil || parsed < 0 {
			return fmt.Errorf("%s must be a non-negative integer, got %q", key, value)
		}
	case store.ConfigBackoffBase:
		parsed, err := strconv.Atoi(value)
		if err != nil || parsed < 1 {
			return fmt.Errorf("%s must be an integer >= 1, got %q", key, value)
		}
	default:
		return fmt.Errorf("unknown config key %q", key)
	}

	return nil
}
