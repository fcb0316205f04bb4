package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ss13tools/chatfilter/internal/config"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "chatfilter",
	Short: "Filter exported Space Station 13 chat transcripts",
	Long: `Chatfilter narrows or redacts saved Space Station 13 chat logs by
dropping the messages that fail an include/exclude pattern test, while
reproducing everything it keeps byte for byte.

Patterns are literal substrings by default and regular expressions with
--regex. Matching is case-insensitive unless --match-case is set.

Examples:
  chatfilter filter --include "Captain" round-1234.html
  chatfilter filter --exclude "has died" --output clean.html round-1234.html
  chatfilter filter --regex --include '^<div class="ChatMessage" data-type="ooc">' logs/*.html
  chatfilter inspect round-1234.html
  chatfilter watch --include "Security" live.html`,
}

// Execute is called by main.main(). It runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.chatfilter.yaml)")
	rootCmd.PersistentFlags().StringP("format", "f", "text", "output format for reports (text, json, table)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")

	_ = viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error finding home directory:", err)
			os.Exit(1)
		}

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigName(".chatfilter")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("CHATFILTER")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("format", "text")
	viper.SetDefault("verbose", false)
	viper.SetDefault("strict", false)
	viper.SetDefault("overwrite", false)
	viper.SetDefault("output_dir", "")

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}

// appConfig hydrates the application configuration from viper, then applies
// explicit flag overrides. Settings from the config file or CHATFILTER_* env
// variables reach a run this way even when the matching flag is never set;
// a flag given on the command line still wins.
func appConfig(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding configuration: %w", err)
	}

	if cmd.Flags().Changed("strict") {
		cfg.Strict, _ = cmd.Flags().GetBool("strict")
	}
	if cmd.Flags().Changed("overwrite") {
		cfg.Overwrite, _ = cmd.Flags().GetBool("overwrite")
	}
	if cmd.Flags().Changed("output-dir") {
		cfg.OutputDir, _ = cmd.Flags().GetString("output-dir")
	}

	return cfg, nil
}
