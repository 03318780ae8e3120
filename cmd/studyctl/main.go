// Package main provides studyctl, an operator CLI that runs study requests
// through the completion gateway without the HTTP server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// Version information set via ldflags during build.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd(newCLI()).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func rootCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "studyctl",
		Short:         "Run study requests against the configured AI providers",
		Long:          `studyctl sends one study request through the same provider chain the API server uses and prints the result with the provider and model that served it.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&c.configPath, "config", "", "path to a config file (default ./config.yaml if present)")
	cmd.PersistentFlags().StringVar(&c.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	cmd.PersistentFlags().StringVarP(&c.outputFormat, "output", "o", string(outputText), "output format: text, json, yaml")

	cmd.AddCommand(providersCmd(c))
	cmd.AddCommand(explainCmd(c))
	cmd.AddCommand(summarizeCmd(c))
	cmd.AddCommand(quizCmd(c))
	cmd.AddCommand(flashcardsCmd(c))
	cmd.AddCommand(mnemonicCmd(c))
	cmd.AddCommand(storyCmd(c))

	return cmd
}
