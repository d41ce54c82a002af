package command

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/joeycumines/one-shot-calc/internal/config"
)

// HelpCommand lists commands or describes one.
type HelpCommand struct {
	*BaseCommand
	registry *Registry
}

// NewHelpCommand creates the help command.
func NewHelpCommand(registry *Registry) *HelpCommand {
	return &HelpCommand{
		BaseCommand: NewBaseCommand(
			"help",
			"Display help information for commands",
			"help [command]",
		),
		registry: registry,
	}
}

// Execute prints the command list, or help for args[0].
func (c *HelpCommand) Execute(_ context.Context, args []string, stdio IO) error {
	if len(args) == 0 {
		_, _ = fmt.Fprintln(stdio.Out, "one-shot-calc - a four-function calculator with a persistent history")
		_, _ = fmt.Fprintln(stdio.Out)
		_, _ = fmt.Fprintln(stdio.Out, "Usage: calc [command] [options] [args...]")
		_, _ = fmt.Fprintln(stdio.Out)
		_, _ = fmt.Fprintln(stdio.Out, "Commands:")
		w := tabwriter.NewWriter(stdio.Out, 0, 8, 2, ' ', 0)
		for _, name := range c.registry.List() {
			if cmd, err := c.registry.Get(name); err == nil {
				_, _ = fmt.Fprintf(w, "  %s\t%s\n", name, cmd.Description())
			}
		}
		_ = w.Flush()
		_, _ = fmt.Fprintln(stdio.Out)
		_, _ = fmt.Fprintln(stdio.Out, "Use 'calc help <command>' for more information about a command.")
		return nil
	}

	cmd, err := c.registry.Get(args[0])
	if err != nil {
		_, _ = fmt.Fprintf(stdio.Err, "Unknown command: %s\n", args[0])
		return err
	}

	title := cases.Title(language.English).String(cmd.Name())
	_, _ = fmt.Fprintf(stdio.Out, "%s: %s\n\n", title, cmd.Description())
	_, _ = fmt.Fprintf(stdio.Out, "Usage: calc %s\n", cmd.Usage())

	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	var buf bytes.Buffer
	fs.SetOutput(&buf)
	cmd.SetupFlags(fs)
	fs.PrintDefaults()
	if buf.Len() > 0 {
		_, _ = fmt.Fprintln(stdio.Out)
		_, _ = fmt.Fprintln(stdio.Out, "Flags:")
		_, _ = fmt.Fprint(stdio.Out, buf.String())
	}
	return nil
}

// VersionCommand prints the version.
type VersionCommand struct {
	*BaseCommand
	version string
}

// NewVersionCommand creates the version command.
func NewVersionCommand(version string) *VersionCommand {
	return &VersionCommand{
		BaseCommand: NewBaseCommand("version", "Display version information", "version"),
		version:     version,
	}
}

// Execute prints the version.
func (c *VersionCommand) Execute(_ context.Context, args []string, stdio IO) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	_, _ = fmt.Fprintf(stdio.Out, "one-shot-calc version %s\n", c.version)
	return nil
}

// ConfigCommand reads and writes configuration options.
type ConfigCommand struct {
	*BaseCommand
	config     *config.Config
	configPath string
	showAll    bool
}

// NewConfigCommand creates the config command. Values set with it are
// written to configPath; when configPath is "" the default location is used.
func NewConfigCommand(cfg *config.Config, configPath string) *ConfigCommand {
	return &ConfigCommand{
		BaseCommand: NewBaseCommand(
			"config",
			"Show, get or set configuration options",
			"config [-all] [key [value] | validate | schema]",
		),
		config:     cfg,
		configPath: configPath,
	}
}

// SetupFlags registers the config flags.
func (c *ConfigCommand) SetupFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.showAll, "all", false, "Show every option's effective value, including defaults")
}

// Execute handles the config sub-commands.
func (c *ConfigCommand) Execute(_ context.Context, args []string, stdio IO) error {
	schema := config.DefaultSchema()

	switch {
	case len(args) == 0:
		return c.show(stdio, schema)
	case args[0] == "validate" && len(args) == 1:
		issues := config.ValidateConfig(c.config, schema)
		if len(issues) == 0 {
			_, _ = fmt.Fprintln(stdio.Out, "Configuration is valid.")
			return nil
		}
		_, _ = fmt.Fprintf(stdio.Out, "Configuration has %d issue(s):\n", len(issues))
		for _, issue := range issues {
			_, _ = fmt.Fprintf(stdio.Out, "  - %s\n", issue)
		}
		return nil
	case args[0] == "schema" && len(args) == 1:
		_, _ = fmt.Fprint(stdio.Out, schema.FormatHelp())
		return nil
	case len(args) == 1:
		key := args[0]
		if schema.Lookup("", key) == nil {
			if _, ok := c.config.GetGlobalOption(key); !ok {
				return fmt.Errorf("unknown configuration key: %s", key)
			}
		}
		_, _ = fmt.Fprintf(stdio.Out, "%s: %s\n", key, schema.Resolve(c.config, key))
		return nil
	case len(args) == 2:
		key, value := args[0], args[1]
		opt := schema.Lookup("", key)
		if opt == nil {
			_, _ = fmt.Fprintf(stdio.Err, "Warning: %q is not a known option\n", key)
		} else if issues := validateValue(schema, key, value); len(issues) > 0 {
			return fmt.Errorf("invalid value for %s: %s", key, issues[0])
		}
		c.config.SetGlobalOption(key, value)

		path := c.configPath
		if path == "" {
			var err error
			if path, err = config.GetConfigPath(); err != nil {
				return fmt.Errorf("failed to get config path: %w", err)
			}
		}
		if err := config.SetKeyInFile(path, key, value); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
		_, _ = fmt.Fprintf(stdio.Out, "Set configuration: %s = %s\n", key, value)
		return nil
	}
	return fmt.Errorf("usage: calc %s", c.Usage())
}

func validateValue(schema *config.ConfigSchema, key, value string) []string {
	probe := config.NewConfig()
	probe.SetGlobalOption(key, value)
	return config.ValidateConfig(probe, schema)
}

func (c *ConfigCommand) show(stdio IO, schema *config.ConfigSchema) error {
	w := tabwriter.NewWriter(stdio.Out, 0, 8, 2, ' ', 0)
	if c.showAll {
		for _, o := range schema.SectionOptions("") {
			_, _ = fmt.Fprintf(w, "%s\t%s\n", o.Key, schema.Resolve(c.config, o.Key))
		}
		return w.Flush()
	}

	if len(c.config.Global) == 0 && len(c.config.Commands) == 0 {
		_, _ = fmt.Fprintln(stdio.Out, "No options set. Use 'calc config -all' to see effective values.")
		return nil
	}
	for _, key := range sortedKeys(c.config.Global) {
		_, _ = fmt.Fprintf(w, "%s\t%s\n", key, c.config.Global[key])
	}
	for _, section := range sortedKeys(c.config.Commands) {
		_, _ = fmt.Fprintf(w, "[%s]\t\n", section)
		for _, key := range sortedKeys(c.config.Commands[section]) {
			_, _ = fmt.Fprintf(w, "  %s\t%s\n", key, c.config.Commands[section][key])
		}
	}
	return w.Flush()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

const defaultConfigFile = `# one-shot-calc configuration
# Format: optionName value
# [command] sections hold options for a single command.
# Run 'calc config schema' for every option.

# Number formatting locale (BCP 47), e.g. en, de-DE, fr-CH
locale en

# Go time layout for history timestamps
timestamp-format 2006-01-02 15:04:05

# History storage: fs or memory
storage.backend fs
storage.profile default

# Logging; log.file enables JSON logs with rotation
# log.file /tmp/one-shot-calc.log
log.level info

color auto

[tui]
history-rows 10
`

// InitCommand writes a starter configuration file.
type InitCommand struct {
	*BaseCommand
	force bool
}

// NewInitCommand creates the init command.
func NewInitCommand() *InitCommand {
	return &InitCommand{
		BaseCommand: NewBaseCommand("init", "Create a starter configuration file", "init [-force]"),
	}
}

// SetupFlags registers the init flags.
func (c *InitCommand) SetupFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.force, "force", false, "Overwrite an existing configuration")
}

// Execute writes the configuration unless one exists.
func (c *InitCommand) Execute(_ context.Context, args []string, stdio IO) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	path, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	if _, err := os.Stat(path); err == nil && !c.force {
		_, _ = fmt.Fprintf(stdio.Out, "Configuration already exists at: %s\n", path)
		_, _ = fmt.Fprintln(stdio.Out, "Use -force to overwrite it.")
		return nil
	}

	if err := config.EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigFile), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	cfg, err := config.LoadFromPath(path)
	if err != nil {
		return fmt.Errorf("failed to load created config: %w", err)
	}
	for _, w := range cfg.Warnings {
		_, _ = fmt.Fprintf(stdio.Err, "Warning: %s\n", w)
	}
	_, _ = fmt.Fprintf(stdio.Out, "Initialized configuration at: %s\n", path)
	return nil
}

// RegisterAll registers every calculator command on r.
func RegisterAll(r *Registry, cfg *config.Config, configPath, version string) {
	r.Register(NewHelpCommand(r))
	r.Register(NewVersionCommand(version))
	r.Register(NewConfigCommand(cfg, configPath))
	r.Register(NewInitCommand())
	r.Register(NewTUICommand(cfg))
	r.Register(NewEvalCommand(cfg))
	r.Register(NewHistoryCommand(cfg))
}
