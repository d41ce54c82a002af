package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

// OptionType is the expected type of an option value.
type OptionType string

const (
	// TypeString accepts any value.
	TypeString OptionType = "string"
	// TypeBool accepts true/false, yes/no, on/off and 1/0.
	TypeBool OptionType = "bool"
	// TypeInt accepts a base-10 integer.
	TypeInt OptionType = "int"
	// TypeEnum accepts one of ConfigOption.Allowed.
	TypeEnum OptionType = "enum"
)

// Option keys understood by the calculator.
const (
	KeyLocale          = "locale"
	KeyTimestampFormat = "timestamp-format"
	KeyStorageBackend  = "storage.backend"
	KeyStorageProfile  = "storage.profile"
	KeyStorageSlot     = "storage.slot"
	KeyLogFile         = "log.file"
	KeyLogLevel        = "log.level"
	KeyLogMaxSizeMB    = "log.max-size-mb"
	KeyLogMaxFiles     = "log.max-files"
	KeyColor           = "color"
	KeyHistoryRows     = "history-rows"
)

// ConfigOption declares one option.
type ConfigOption struct {
	// Key is the option name as written in the file.
	Key  string
	Type OptionType
	// Allowed lists the accepted values of a TypeEnum option.
	Allowed []string
	// Default is the value used when neither environment nor file set one.
	Default     string
	Description string
	// Section is "" for global options, or the command it belongs to.
	Section string
	// EnvVar, when set, overrides the file value.
	EnvVar string
}

// ConfigSchema is the set of known options.
type ConfigSchema struct {
	options   []*ConfigOption
	byKey     map[string]*ConfigOption
	bySection map[string]map[string]*ConfigOption
}

// NewSchema creates an empty schema.
func NewSchema() *ConfigSchema {
	return &ConfigSchema{
		byKey:     make(map[string]*ConfigOption),
		bySection: make(map[string]map[string]*ConfigOption),
	}
}

// Register adds opt, replacing any earlier option with the same section and key.
func (s *ConfigSchema) Register(opt ConfigOption) {
	ref := &opt
	s.options = append(s.options, ref)
	if opt.Section == "" {
		s.byKey[opt.Key] = ref
		return
	}
	if s.bySection[opt.Section] == nil {
		s.bySection[opt.Section] = make(map[string]*ConfigOption)
	}
	s.bySection[opt.Section][opt.Key] = ref
}

// RegisterAll registers each of opts.
func (s *ConfigSchema) RegisterAll(opts []ConfigOption) {
	for _, opt := range opts {
		s.Register(opt)
	}
}

// Lookup returns the option for key in section ("" for global), or nil.
func (s *ConfigSchema) Lookup(section, key string) *ConfigOption {
	if section == "" {
		return s.byKey[key]
	}
	return s.bySection[section][key]
}

// IsKnown reports whether key may appear in section. Global options may
// appear in any section.
func (s *ConfigSchema) IsKnown(section, key string) bool {
	return s.Lookup(section, key) != nil || s.byKey[key] != nil
}

// SectionOptions returns the options registered for section, in
// registration order.
func (s *ConfigSchema) SectionOptions(section string) []ConfigOption {
	var out []ConfigOption
	for _, o := range s.options {
		if o.Section == section && s.Lookup(section, o.Key) == o {
			out = append(out, *o)
		}
	}
	return out
}

// Sections returns the sorted names of sections with registered options.
func (s *ConfigSchema) Sections() []string {
	out := make([]string, 0, len(s.bySection))
	for sec := range s.bySection {
		out = append(out, sec)
	}
	sort.Strings(out)
	return out
}

// Resolve returns the effective value of a global option: its environment
// variable if set, then the file value, then the default.
func (s *ConfigSchema) Resolve(c *Config, key string) string {
	return s.ResolveFor(c, "", key)
}

// ResolveFor is Resolve for an option read by command. The command's
// section wins over the global file value.
func (s *ConfigSchema) ResolveFor(c *Config, command, key string) string {
	opt := s.Lookup(command, key)
	if opt == nil {
		opt = s.Lookup("", key)
	}
	if opt != nil && opt.EnvVar != "" {
		if v, ok := os.LookupEnv(opt.EnvVar); ok {
			return v
		}
	}
	if c != nil {
		if v, ok := c.GetCommandOption(command, key); ok {
			return v
		}
	}
	if opt != nil {
		return opt.Default
	}
	return ""
}

// ValidateConfig returns the problems found in c, sorted: unknown options
// and values that do not match their declared type.
func ValidateConfig(c *Config, s *ConfigSchema) []string {
	var issues []string

	for key, value := range c.Global {
		opt := s.Lookup("", key)
		if opt == nil {
			issues = append(issues, fmt.Sprintf("unknown global option: %q (value: %q)", key, value))
			continue
		}
		if err := opt.validate(value); err != nil {
			issues = append(issues, fmt.Sprintf("global option %q: %v", key, err))
		}
	}

	for section, opts := range c.Commands {
		for key, value := range opts {
			opt := s.Lookup(section, key)
			if opt == nil {
				opt = s.Lookup("", key)
			}
			if opt == nil {
				issues = append(issues, fmt.Sprintf("unknown option for command %q: %q (value: %q)", section, key, value))
				continue
			}
			if err := opt.validate(value); err != nil {
				issues = append(issues, fmt.Sprintf("option %q in [%s]: %v", key, section, err))
			}
		}
	}

	sort.Strings(issues)
	return issues
}

func (o *ConfigOption) validate(value string) error {
	switch o.Type {
	case TypeString, "":
		return nil
	case TypeBool:
		if _, err := parseBool(value); err != nil {
			return fmt.Errorf("expected bool, got %q", value)
		}
	case TypeInt:
		if _, err := strconv.Atoi(value); err != nil {
			return fmt.Errorf("expected int, got %q", value)
		}
	case TypeEnum:
		for _, a := range o.Allowed {
			if strings.EqualFold(a, value) {
				return nil
			}
		}
		return fmt.Errorf("expected one of %s, got %q", strings.Join(o.Allowed, ", "), value)
	default:
		return fmt.Errorf("unknown option type %q", o.Type)
	}
	return nil
}

// FormatHelp renders a reference of every option, global options first.
func (s *ConfigSchema) FormatHelp() string {
	var b strings.Builder
	if globals := s.SectionOptions(""); len(globals) > 0 {
		b.WriteString("Global Options:\n")
		for _, o := range globals {
			writeOptionHelp(&b, o)
		}
	}
	for _, sec := range s.Sections() {
		fmt.Fprintf(&b, "\n[%s] Options:\n", sec)
		for _, o := range s.SectionOptions(sec) {
			writeOptionHelp(&b, o)
		}
	}
	return b.String()
}

func writeOptionHelp(b *strings.Builder, o ConfigOption) {
	fmt.Fprintf(b, "  %-20s %s", o.Key, o.Description)
	var parts []string
	switch o.Type {
	case TypeEnum:
		parts = append(parts, "one of: "+strings.Join(o.Allowed, "|"))
	case TypeString, "":
	default:
		parts = append(parts, "type: "+string(o.Type))
	}
	if o.Default != "" {
		parts = append(parts, "default: "+o.Default)
	}
	if o.EnvVar != "" {
		parts = append(parts, "env: "+o.EnvVar)
	}
	if len(parts) > 0 {
		fmt.Fprintf(b, " (%s)", strings.Join(parts, ", "))
	}
	b.WriteString("\n")
}

// DefaultSchema declares every option the calculator reads.
func DefaultSchema() *ConfigSchema {
	s := NewSchema()
	s.RegisterAll([]ConfigOption{
		{Key: KeyLocale, Type: TypeString, Default: "en", Description: "BCP 47 locale for number formatting", EnvVar: "CALC_LOCALE"},
		{Key: KeyTimestampFormat, Type: TypeString, Default: "2006-01-02 15:04:05", Description: "Go time layout for history timestamps"},
		{Key: KeyStorageBackend, Type: TypeEnum, Allowed: []string{"fs", "memory"}, Default: "fs", Description: "History storage backend"},
		{Key: KeyStorageProfile, Type: TypeString, Default: "default", Description: "Storage namespace owned by this process", EnvVar: "CALC_PROFILE"},
		{Key: KeyStorageSlot, Type: TypeString, Default: "calculatorHistory", Description: "Storage slot holding the history log"},
		{Key: KeyLogFile, Type: TypeString, Description: "Write JSON logs to this file", EnvVar: "CALC_LOG_FILE"},
		{Key: KeyLogLevel, Type: TypeEnum, Allowed: []string{"debug", "info", "warn", "error"}, Default: "info", Description: "Minimum log level", EnvVar: "CALC_LOG_LEVEL"},
		{Key: KeyLogMaxSizeMB, Type: TypeInt, Default: "10", Description: "Rotate the log file at this size"},
		{Key: KeyLogMaxFiles, Type: TypeInt, Default: "5", Description: "Rotated log files to keep"},
		{Key: KeyColor, Type: TypeEnum, Allowed: []string{"auto", "always", "never"}, Default: "auto", Description: "Colour output"},
		{Key: KeyHistoryRows, Section: "tui", Type: TypeInt, Default: "10", Description: "History entries shown at once"},
	})
	return s
}
