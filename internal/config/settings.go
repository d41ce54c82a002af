package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Settings are the effective, typed option values for one command.
type Settings struct {
	Locale          string
	TimestampFormat string
	StorageBackend  string
	StorageProfile  string
	StorageSlot     string
	LogFile         string
	LogLevel        string
	LogMaxSizeMB    int
	LogMaxFiles     int
	Color           string
	HistoryRows     int
}

// Resolve computes the settings for command from c, the environment, and
// DefaultSchema. c may be nil. Unlike loading, invalid values are errors
// here, since they would otherwise be silently replaced.
func Resolve(c *Config, command string) (Settings, error) {
	s := DefaultSchema()

	var errs []string
	str := func(key string) string {
		v := s.ResolveFor(c, command, key)
		opt := s.Lookup(command, key)
		if opt == nil {
			opt = s.Lookup("", key)
		}
		if opt == nil {
			return v
		}
		if err := opt.validate(v); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", key, err))
			return opt.Default
		}
		if opt.Type == TypeEnum {
			v = strings.ToLower(v)
		}
		return v
	}
	num := func(key string) int {
		n, _ := strconv.Atoi(str(key))
		if n < 0 {
			errs = append(errs, fmt.Sprintf("%s: must not be negative", key))
			return 0
		}
		return n
	}

	out := Settings{
		Locale:          str(KeyLocale),
		TimestampFormat: str(KeyTimestampFormat),
		StorageBackend:  str(KeyStorageBackend),
		StorageProfile:  str(KeyStorageProfile),
		StorageSlot:     str(KeyStorageSlot),
		LogFile:         str(KeyLogFile),
		LogLevel:        str(KeyLogLevel),
		LogMaxSizeMB:    num(KeyLogMaxSizeMB),
		LogMaxFiles:     num(KeyLogMaxFiles),
		Color:           str(KeyColor),
		HistoryRows:     num(KeyHistoryRows),
	}
	if out.TimestampFormat == "" {
		errs = append(errs, KeyTimestampFormat+": must not be empty")
	}
	if len(errs) > 0 {
		return out, fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}
	return out, nil
}
