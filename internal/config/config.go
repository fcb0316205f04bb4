// Package config provides configuration types and file-discovery helpers for
// chatfilter.
package config

// Config holds the application-wide configuration hydrated from viper.
type Config struct {
	// Format selects the output rendering for reports: text, json or table.
	Format string `mapstructure:"format"`

	// Verbose enables per-step progress output on stderr.
	Verbose bool `mapstructure:"verbose"`

	// Strict aborts a batch run on the first file that fails instead of
	// warning and continuing.
	Strict bool `mapstructure:"strict"`

	// Overwrite allows replacing an existing output file.
	Overwrite bool `mapstructure:"overwrite"`

	// OutputDir, when set, receives derived output files instead of the
	// input file's directory.
	OutputDir string `mapstructure:"output_dir"`
}
