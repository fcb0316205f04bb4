// Package pattern provides the include/exclude matching configuration used to
// decide whether a chat message survives filtering.
//
// A Config is built once, from command-line flags or from a TOML file, and is
// immutable afterwards. It is safe to share across files in a batch run
// without synchronization.
package pattern

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/spf13/viper"
)

// ErrNoPatterns is returned by Matches when neither an include nor an exclude
// pattern was configured. A Config in that state cannot make a decision, so
// matching fails rather than silently keeping everything.
var ErrNoPatterns = errors.New("no include/exclude patterns were provided")

// Config holds the include/exclude patterns and matching options.
//
// A nil Include or Exclude means the pattern is absent. An empty non-nil
// string is a valid literal pattern that matches every message.
type Config struct {
	Regex     bool    `mapstructure:"regex"`
	MatchCase bool    `mapstructure:"match_case"`
	Include   *string `mapstructure:"include"`
	Exclude   *string `mapstructure:"exclude"`

	// compiled regexes, populated when Regex is true
	includeRegex *regexp.Regexp
	excludeRegex *regexp.Regexp
}

// FromArgs builds a Config from already-parsed command-line values.
//
// When matchCase is false both patterns are lowercased before being stored, so
// normalization happens exactly once here rather than per message. When regex
// is true both patterns are compiled; a compilation failure is fatal and the
// error names the offending pattern.
func FromArgs(regex bool, include, exclude *string, matchCase bool) (*Config, error) {
	cfg := &Config{
		Regex:     regex,
		MatchCase: matchCase,
		Include:   include,
		Exclude:   exclude,
	}
	if err := cfg.finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads a Config from a TOML file with the fields regex, include,
// exclude and match_case. Absent include/exclude keys are legal at load time;
// Matches fails later if neither is set.
//
// Patterns loaded from a file go through the same case normalization and
// regex compilation as FromArgs, so both construction paths behave
// identically.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading pattern config %s: %w", path, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding pattern config %s: %w", path, err)
	}
	if err := cfg.finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// finalize normalizes pattern case and compiles regexes. It is the single
// place construction-time invariants are established.
func (c *Config) finalize() error {
	if !c.MatchCase {
		if c.Include != nil {
			lowered := strings.ToLower(*c.Include)
			c.Include = &lowered
		}
		if c.Exclude != nil {
			lowered := strings.ToLower(*c.Exclude)
			c.Exclude = &lowered
		}
	}

	if !c.Regex {
		return nil
	}

	if c.Include != nil {
		re, err := regexp.Compile(*c.Include)
		if err != nil {
			return fmt.Errorf("failed to compile include regex from %q: %w", *c.Include, err)
		}
		c.includeRegex = re
	}
	if c.Exclude != nil {
		re, err := regexp.Compile(*c.Exclude)
		if err != nil {
			return fmt.Errorf("failed to compile exclude regex from %q: %w", *c.Exclude, err)
		}
		c.excludeRegex = re
	}
	return nil
}

// Matches reports whether text survives the configured filter.
//
// The include pattern is checked first: if present, text must satisfy it or
// the message is rejected. The exclude pattern is checked second and always
// wins, so a message matching both include and exclude is dropped. With
// neither pattern configured Matches returns ErrNoPatterns.
func (c *Config) Matches(text string) (bool, error) {
	if !c.MatchCase {
		text = strings.ToLower(text)
	}

	if c.Include == nil && c.Exclude == nil {
		return false, ErrNoPatterns
	}

	if c.includeRegex != nil {
		if !c.includeRegex.MatchString(text) {
			return false, nil
		}
	} else if c.Include != nil {
		if !strings.Contains(text, *c.Include) {
			return false, nil
		}
	}

	if c.excludeRegex != nil {
		if c.excludeRegex.MatchString(text) {
			return false, nil
		}
	} else if c.Exclude != nil {
		if strings.Contains(text, *c.Exclude) {
			return false, nil
		}
	}

	return true, nil
}
