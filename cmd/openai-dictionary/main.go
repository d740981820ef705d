package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rikkaka/bob-plugin-openai-dictionary/internal/apierr"
	"github.com/rikkaka/bob-plugin-openai-dictionary/internal/cli"
	"github.com/rikkaka/bob-plugin-openai-dictionary/internal/i18n"
	"github.com/rikkaka/bob-plugin-openai-dictionary/internal/lang"
	"github.com/rikkaka/bob-plugin-openai-dictionary/internal/models"
	"github.com/rikkaka/bob-plugin-openai-dictionary/internal/processor"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
		if err := cli.InitLogging(viper.GetString("log.level")); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
		i18n.Init(flags.Lang)
	})

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, args, flags)
	}

	rootCmd.AddCommand(languagesCommand(), modelsCommand(), configCommand())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Execute command
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// Lookup errors were already reported by the processor
		if _, ok := apierr.As(err); !ok {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		stop()
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, args []string, flags *cli.Flags) error {
	// Create processor
	proc := processor.NewProcessor(flags)

	// Handle batch processing
	if flags.BatchFile != "" {
		return proc.ProcessBatch(cmd.Context())
	}

	if len(args) == 0 {
		return cmd.Help()
	}
	return proc.ProcessSingleWord(cmd.Context(), strings.TrimSpace(args[0]))
}

func languagesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List the language codes offered to the host",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, l := range lang.All() {
				marker := ""
				if l.Code == lang.Source || l.Code == lang.Target {
					marker = " *"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-8s %s%s\n", l.Code, l.Name, marker)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\n* lookups support %s -> %s only\n", lang.Source, lang.Target)
		},
	}
}

func modelsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List chat models available for the configured API key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lister := models.NewLister(cli.RequestConfig())
			return lister.ListAvailableModels(cmd.Context(), cmd.OutOrStdout())
		},
	}
}

func configCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration with API keys masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.DumpConfig(cmd.OutOrStdout())
		},
	}
}
