package command

import (
	"flag"

	"github.com/joeycumines/one-shot-calc/internal/config"
	"github.com/joeycumines/one-shot-calc/internal/logging"
)

// logFlags are the per-command logging overrides.
type logFlags struct {
	file  string
	level string
}

func (f *logFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.file, "log-file", "", "Write JSON logs to this file (overrides log.file)")
	fs.StringVar(&f.level, "log-level", "", "Log level: debug, info, warn, error (overrides log.level)")
}

// resolveLogOptions merges flags over settings: flag, then config, then default.
func resolveLogOptions(f logFlags, s config.Settings) (logging.Options, error) {
	opts := logging.Options{
		Level:     s.LogLevel,
		File:      s.LogFile,
		MaxSizeMB: s.LogMaxSizeMB,
		MaxFiles:  s.LogMaxFiles,
	}
	if f.level != "" {
		opts.Level = f.level
	}
	if f.file != "" {
		opts.File = f.file
	}
	if _, err := logging.ParseLevel(opts.Level); err != nil {
		return opts, err
	}
	return opts, nil
}
