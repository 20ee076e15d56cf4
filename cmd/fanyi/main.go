package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"codeberg.org/snonux/fanyi/internal/cli"
	"codeberg.org/snonux/fanyi/internal/processor"
	"codeberg.org/snonux/fanyi/internal/render"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
		cli.ApplyConfig(flags)
	})

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, args, flags)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Execute command
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// Alfred shows the rendered error item; a non-zero exit would hide it.
		format, _ := render.ParseFormat(flags.Format)
		if errors.Is(err, processor.ErrTranslationFailed) && format == render.FormatAlfred {
			return
		}
		log.Error(err)
		stop()
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, args []string, flags *cli.Flags) error {
	if err := cli.InitLogging(flags.LogLevel); err != nil {
		return err
	}

	proc, err := processor.NewProcessor(flags)
	if err != nil {
		return err
	}
	defer proc.Close()

	ctx := cmd.Context()
	query := strings.Join(args, " ")

	// Handle --refresh-token flag
	if flags.RefreshToken {
		if err := proc.RefreshToken(ctx, query); err != nil {
			return err
		}
		if query == "" && flags.BatchFile == "" {
			return nil
		}
	}

	// Handle batch processing
	if flags.BatchFile != "" {
		return proc.ProcessBatch(ctx)
	}

	return proc.ProcessSingle(ctx, query)
}
