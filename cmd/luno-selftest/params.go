package main

import (
	"os"
	"regexp"
	"strings"

	"github.com/luno-testing/luno/framework"

	"github.com/alessio/shellescape"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const commandName = "luno-selftest"

type commandParams struct {
	configFile string
	filters    framework.RegexFilters
	debug      bool
	debugAll   bool
	noColor    bool
}

// fileConfig is the optional YAML configuration. Patterns in the file are added to those
// given on the command line, and a boolean set in either place is enabled.
type fileConfig struct {
	Run      []string `yaml:"run"`
	Skip     []string `yaml:"skip"`
	Debug    bool     `yaml:"debug"`
	DebugAll bool     `yaml:"debugAll"`
}

func loadConfigFile(path string) (fileConfig, error) {
	var config fileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return fileConfig{}, errors.Wrapf(err, "reading config file %s", path)
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return fileConfig{}, errors.Wrapf(err, "parsing config file %s", path)
	}
	return config, nil
}

func (c *commandParams) applyConfig(config fileConfig) error {
	for _, p := range config.Run {
		if err := c.filters.MustMatch.Set(p); err != nil {
			return errors.Wrapf(err, "run pattern %q", p)
		}
	}
	for _, p := range config.Skip {
		if err := c.filters.MustNotMatch.Set(p); err != nil {
			return errors.Wrapf(err, "skip pattern %q", p)
		}
	}
	c.debug = c.debug || config.Debug
	c.debugAll = c.debugAll || config.DebugAll
	return nil
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}

// rerunPatterns returns --run patterns selecting the given tests. A subtest only runs if its
// parents pass the filter too, so every ancestor gets an exact-match pattern.
func rerunPatterns(ids []framework.TestID) []string {
	var patterns []string
	seen := make(map[string]bool)
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			patterns = append(patterns, p)
		}
	}
	for _, id := range ids {
		for i := 1; i < len(id.Path); i++ {
			add("^" + regexp.QuoteMeta(framework.TestID{Path: id.Path[:i]}.String()) + "$")
		}
		add("^" + regexp.QuoteMeta(id.String()) + "(/|$)")
	}
	return patterns
}

// rerunCommand builds a command line that runs only the given tests, with the same debug
// settings as this run.
func (c *commandParams) rerunCommand(ids []framework.TestID) string {
	var b commandBuilder
	b.add(commandName)
	for _, p := range rerunPatterns(ids) {
		b.add("--run", p)
	}
	if c.debugAll {
		b.add("--debug-all")
	} else {
		b.add("--debug")
	}
	return b.String()
}
