package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ss13tools/chatfilter/internal/chatlog"
	"github.com/ss13tools/chatfilter/internal/config"
	"github.com/ss13tools/chatfilter/internal/output"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <files...>",
	Short: "Report the structure of chat transcripts",
	Long: `Inspect segments each transcript the same way filter does and reports
what it finds: message count, byte counts, and a tally of messages per
data-type attribute. Nothing is written.

Examples:
  chatfilter inspect round-1234.html
  chatfilter inspect --format table logs/*.html
  chatfilter inspect --format json round-1234.html`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	files, err := config.ExpandGlobs(args)
	if err != nil {
		return err
	}

	appCfg, err := appConfig(cmd)
	if err != nil {
		return err
	}

	writer := output.New(cmd.OutOrStdout(), output.ParseFormat(appCfg.Format))

	for _, filePath := range files {
		data, err := os.ReadFile(filePath)
		if err != nil {
			return fmt.Errorf("reading %s: %w", filePath, err)
		}

		report, err := chatlog.Inspect(string(data))
		if err != nil {
			return fmt.Errorf("inspecting %s: %w", filePath, err)
		}

		if err := writer.WriteReport(filePath, report); err != nil {
			return err
		}
	}

	return nil
}
