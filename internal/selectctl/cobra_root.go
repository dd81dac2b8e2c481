package selectctl

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"selectd/pkg/types"
)

// Config carries CLI-wide settings resolved from flags and environment.
type Config struct {
	ServerURL string
	Timeout   time.Duration
}

// DefaultConfig resolves defaults from SELECTCTL_SERVER, falling back to
// the local daemon address.
func DefaultConfig() *Config {
	url := os.Getenv("SELECTCTL_SERVER")
	if url == "" {
		url = "http://127.0.0.1:8080"
	}
	return &Config{ServerURL: url, Timeout: 30 * time.Second}
}

// BuildRootCmd constructs the Cobra command tree against cfg.
func BuildRootCmd(cfg *Config) *cobra.Command {
	root := &cobra.Command{
		Use:           "selectctl",
		Short:         "Client for a running selectd daemon",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "selectd base URL (defaults SELECTCTL_SERVER or http://127.0.0.1:8080)")
	root.PersistentFlags().DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "Request timeout")

	var props types.PromptProperties
	recommendCmd := &cobra.Command{
		Use:     "recommend <prompt>",
		Short:   "Recommend a model for a prompt",
		Example: "  selectctl recommend --reasoning \"Prove that sqrt(2) is irrational\"",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt := strings.Join(args, " ")
			client := NewClient(cfg.ServerURL, cfg.Timeout)
			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout)
			defer cancel()
			sel, err := client.Recommend(ctx, prompt, props)
			if err != nil {
				return err
			}
			return printJSON(cmd, sel)
		},
	}
	recommendCmd.Flags().Float64Var(&props.Accuracy, "accuracy", 0, "Accuracy importance, 0..1")
	recommendCmd.Flags().Float64Var(&props.Cost, "cost", 0, "Cost tolerance, 0..1 (higher means budget matters less)")
	recommendCmd.Flags().Float64Var(&props.Speed, "speed", 0, "Speed importance, 0..1")
	recommendCmd.Flags().IntVar(&props.TokenLimit, "token-limit", 0, "Completion token budget (0=unspecified)")
	recommendCmd.Flags().BoolVar(&props.Reasoning, "reasoning", false, "Require a reasoning-capable model")
	root.AddCommand(recommendCmd)

	root.AddCommand(&cobra.Command{
		Use:   "profiles",
		Short: "List the daemon's profiled model catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := NewClient(cfg.ServerURL, cfg.Timeout)
			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout)
			defer cancel()
			profiles, err := client.Profiles(ctx)
			if err != nil {
				return err
			}
			return printJSON(cmd, profiles)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show daemon health and cache state",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := NewClient(cfg.ServerURL, cfg.Timeout)
			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout)
			defer cancel()
			st, err := client.Status(ctx)
			if err != nil {
				return err
			}
			return printJSON(cmd, st)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "clear-cache",
		Short: "Empty the daemon's catalog cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := NewClient(cfg.ServerURL, cfg.Timeout)
			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout)
			defer cancel()
			if err := client.ClearCache(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "cache cleared")
			return nil
		},
	})

	// completion command
	completionCmd := &cobra.Command{Use: "completion", Short: "Generate the autocompletion script for the specified shell"}
	completionCmd.AddCommand(&cobra.Command{Use: "bash", Short: "Bash completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenBashCompletion(os.Stdout) }})
	completionCmd.AddCommand(&cobra.Command{Use: "zsh", Short: "Zsh completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenZshCompletion(os.Stdout) }})
	completionCmd.AddCommand(&cobra.Command{Use: "fish", Short: "Fish completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenFishCompletion(os.Stdout, true) }})
	root.AddCommand(completionCmd)

	return root
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Main runs the CLI and returns the process exit code.
func Main(args []string) int {
	cfg := DefaultConfig()
	root := BuildRootCmd(cfg)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "selectctl:", err)
		return 1
	}
	return 0
}
