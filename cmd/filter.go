package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ss13tools/chatfilter/internal/chatlog"
	"github.com/ss13tools/chatfilter/internal/config"
	"github.com/ss13tools/chatfilter/internal/output"
	"github.com/ss13tools/chatfilter/internal/pattern"
)

var filterCmd = &cobra.Command{
	Use:   "filter [flags] <files...>",
	Short: "Filter chat transcripts by include/exclude patterns",
	Long: `Filter one or more exported chat transcripts, keeping only the messages
that contain the include pattern and do not contain the exclude pattern.
The exclude pattern always wins when both match.

Output is written next to each input as filtered_<name> unless --output or
--output-dir says otherwise; an existing output file is refused without
--overwrite.

Examples:
  chatfilter filter --include "Captain" round-1234.html
  chatfilter filter --exclude "has died" --output clean.html round-1234.html
  chatfilter filter --patterns ooc-only.toml --strict logs/*.html`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFilter,
}

func init() {
	filterCmd.Flags().StringP("include", "i", "", "pattern a message must contain to be kept")
	filterCmd.Flags().StringP("exclude", "e", "", "pattern that drops a message when present")
	filterCmd.Flags().Bool("regex", false, "treat include and exclude as regular expressions")
	filterCmd.Flags().Bool("match-case", false, "match patterns case-sensitively")
	filterCmd.Flags().StringP("patterns", "p", "", "TOML file with regex/include/exclude/match_case fields")
	filterCmd.Flags().StringP("output", "o", "", "output file (single input only, missing directories are created)")
	filterCmd.Flags().String("output-dir", "", "directory for derived output files")
	filterCmd.Flags().Bool("overwrite", false, "allow replacing an existing output file")
	filterCmd.Flags().Bool("strict", false, "abort the run on the first file that fails")

	_ = viper.BindPFlag("strict", filterCmd.Flags().Lookup("strict"))
	_ = viper.BindPFlag("overwrite", filterCmd.Flags().Lookup("overwrite"))
	_ = viper.BindPFlag("output_dir", filterCmd.Flags().Lookup("output-dir"))

	rootCmd.AddCommand(filterCmd)
}

func runFilter(cmd *cobra.Command, args []string) error {
	cfg, err := patternConfigFromFlags(cmd)
	if err != nil {
		return err
	}

	files, err := config.ExpandGlobs(args)
	if err != nil {
		return err
	}

	outputPath, _ := cmd.Flags().GetString("output")
	if outputPath != "" && len(files) > 1 {
		return fmt.Errorf("--output requires a single input file, got %d", len(files))
	}

	appCfg, err := appConfig(cmd)
	if err != nil {
		return err
	}

	console := output.NewConsole(cmd.OutOrStdout(), output.ColorAuto)
	errConsole := output.NewConsole(cmd.ErrOrStderr(), output.ColorAuto)

	failed := 0
	for _, filePath := range files {
		start := time.Now()

		target := outputPath
		if target == "" {
			target = config.DeriveOutputPath(filePath, appCfg.OutputDir)
		}

		err := filterFile(filePath, target, cfg, appCfg.Overwrite, appCfg.Verbose, errConsole)
		if err != nil {
			if appCfg.Strict {
				errConsole.Errorf("Filtering %s failed: %v", filePath, err)
				return fmt.Errorf("filtering %s: %w", filePath, err)
			}
			failed++
			errConsole.Warnf("Skipping %s: %v", filePath, err)
			continue
		}

		console.Infof("Filtered %s to %s in %dms", filePath, target, time.Since(start).Milliseconds())
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(files))
	}
	return nil
}

// filterFile runs the whole pipeline for one transcript: read, filter, write.
func filterFile(inPath, outPath string, cfg *pattern.Config, overwrite, verbose bool, console *output.Console) error {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	if verbose {
		console.Verbosef("read %d bytes from %s", len(data), inPath)
	}

	filtered, err := chatlog.Filter(string(data), cfg)
	if err != nil {
		return err
	}
	if verbose {
		console.Verbosef("kept %d of %d bytes", len(filtered), len(data))
	}

	return config.WriteDocument(outPath, filtered, overwrite)
}

// patternConfigFromFlags builds the matching configuration, either from a
// pattern file or from the individual flags. Changed() keeps the distinction
// between an unset pattern and one explicitly set to the empty string, which
// in literal mode matches every message.
func patternConfigFromFlags(cmd *cobra.Command) (*pattern.Config, error) {
	patternsPath, _ := cmd.Flags().GetString("patterns")

	flagsUsed := cmd.Flags().Changed("include") || cmd.Flags().Changed("exclude") ||
		cmd.Flags().Changed("regex") || cmd.Flags().Changed("match-case")

	if patternsPath != "" {
		if flagsUsed {
			return nil, fmt.Errorf("--patterns cannot be combined with --include/--exclude/--regex/--match-case")
		}
		return pattern.Load(patternsPath)
	}

	var include, exclude *string
	if cmd.Flags().Changed("include") {
		v, _ := cmd.Flags().GetString("include")
		include = &v
	}
	if cmd.Flags().Changed("exclude") {
		v, _ := cmd.Flags().GetString("exclude")
		exclude = &v
	}

	regex, _ := cmd.Flags().GetBool("regex")
	matchCase, _ := cmd.Flags().GetBool("match-case")

	return pattern.FromArgs(regex, include, exclude, matchCase)
}
