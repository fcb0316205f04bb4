package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ss13tools/chatfilter/internal/config"
	"github.com/ss13tools/chatfilter/internal/output"
	"github.com/ss13tools/chatfilter/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [flags] <file>",
	Short: "Re-filter a transcript whenever it changes",
	Long: `Watch a transcript file and re-run the filter every time the game
client rewrites it, keeping the filtered copy current during a round.

The output file is always overwritten; filtering errors on an intermediate
write are reported and the watch continues.

Examples:
  chatfilter watch --include "Security" live.html
  chatfilter watch --patterns ooc-only.toml --output ooc.html live.html`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringP("include", "i", "", "pattern a message must contain to be kept")
	watchCmd.Flags().StringP("exclude", "e", "", "pattern that drops a message when present")
	watchCmd.Flags().Bool("regex", false, "treat include and exclude as regular expressions")
	watchCmd.Flags().Bool("match-case", false, "match patterns case-sensitively")
	watchCmd.Flags().StringP("patterns", "p", "", "TOML file with regex/include/exclude/match_case fields")
	watchCmd.Flags().StringP("output", "o", "", "output file (defaults to filtered_<name>)")
	watchCmd.Flags().Duration("debounce", 250*time.Millisecond, "settle time after a change before re-filtering")

	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	if _, err := os.Stat(filePath); err != nil {
		return fmt.Errorf("file does not exist: %s", filePath)
	}

	cfg, err := patternConfigFromFlags(cmd)
	if err != nil {
		return err
	}

	appCfg, err := appConfig(cmd)
	if err != nil {
		return err
	}

	target, _ := cmd.Flags().GetString("output")
	if target == "" {
		target = config.DeriveOutputPath(filePath, appCfg.OutputDir)
	}
	debounce, _ := cmd.Flags().GetDuration("debounce")

	console := output.NewConsole(cmd.OutOrStdout(), output.ColorAuto)
	errConsole := output.NewConsole(cmd.ErrOrStderr(), output.ColorAuto)

	refilter := func() error {
		start := time.Now()
		if err := filterFile(filePath, target, cfg, true, appCfg.Verbose, errConsole); err != nil {
			// The exporter may have been caught mid-write; try again on
			// the next event.
			errConsole.Warnf("Filtering %s failed: %v", filePath, err)
			return nil
		}
		console.Infof("Filtered %s to %s in %dms", filePath, target, time.Since(start).Milliseconds())
		return nil
	}

	// Produce an initial filtered copy before waiting for changes.
	if err := refilter(); err != nil {
		return err
	}

	watcher := watch.New(watch.Options{
		Path:     filePath,
		Debounce: debounce,
		OnChange: refilter,
	})

	// Set up context with signal handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		errChan <- watcher.Run(ctx)
	}()

	select {
	case <-sigChan:
		cancel()
		<-errChan
		return nil
	case err := <-errChan:
		return err
	}
}
