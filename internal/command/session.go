package command

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/joeycumines/one-shot-calc/internal/app"
	"github.com/joeycumines/one-shot-calc/internal/config"
	"github.com/joeycumines/one-shot-calc/internal/history"
	"github.com/joeycumines/one-shot-calc/internal/logging"
	"github.com/joeycumines/one-shot-calc/internal/numfmt"
	"github.com/joeycumines/one-shot-calc/internal/storage"
)

// session is one opened calculator: its settings, logger, storage and state.
type session struct {
	settings config.Settings
	logger   *slog.Logger
	calc     *app.Calculator
	closers  []io.Closer
}

// openSession resolves settings for command, sets up logging (text to
// logOut unless a log file is configured), opens the storage backend and
// loads the history log. The caller must Close the session.
func openSession(cfg *config.Config, command string, logFlags logFlags, logOut io.Writer) (_ *session, err error) {
	settings, err := config.Resolve(cfg, command)
	if err != nil {
		return nil, err
	}

	s := &session{settings: settings}
	defer func() {
		if err != nil {
			_ = s.Close()
		}
	}()

	logOpts, err := resolveLogOptions(logFlags, settings)
	if err != nil {
		return nil, err
	}
	logOpts.Fallback = logOut
	logger, logCloser, err := logging.New(logOpts)
	if err != nil {
		return nil, err
	}
	s.logger = logger.With("command", command)
	s.closers = append(s.closers, logCloser)

	formatter, err := numfmt.Parse(settings.Locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", settings.Locale, err)
	}

	backend, err := storage.GetBackend(settings.StorageBackend, settings.StorageProfile)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}
	s.closers = append(s.closers, backend)

	store, err := history.Load(backend,
		history.WithSlot(settings.StorageSlot),
		history.WithFormatter(formatter),
		history.WithTimestampLayout(settings.TimestampFormat),
		history.WithLogger(s.logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	s.calc = app.New(store, app.WithFormatter(formatter), app.WithLogger(s.logger))
	s.logger.Debug("session opened",
		"locale", formatter.Tag().String(),
		"backend", settings.StorageBackend,
		"profile", settings.StorageProfile,
		"entries", store.Len())
	return s, nil
}

// Close releases storage first, then the log file.
func (s *session) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}
