// Package history keeps the calculator's bounded, most-recent-first log of
// completed computations and persists it to a storage slot.
package history

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/joeycumines/one-shot-calc/internal/numfmt"
	"github.com/joeycumines/one-shot-calc/internal/storage"
	"golang.org/x/text/language"
)

const (
	// DefaultSlot is the storage slot holding the serialized log.
	DefaultSlot = "calculatorHistory"
	// MaxEntries is the capacity of the log; older records are discarded.
	MaxEntries = 50
	// DefaultTimestampLayout is the time.Format layout used for Record.Timestamp.
	DefaultTimestampLayout = "2006-01-02 15:04:05"
)

// Record is one logged computation. Records are never modified once created.
type Record struct {
	Expression string `json:"expression"`
	// Result is the locale-formatted value shown to the user.
	Result    string `json:"result"`
	Timestamp string `json:"timestamp"`
	// Value is the result as a plain numeral ("1234.5"), independent of
	// locale. Logs written before it existed leave it empty.
	Value string `json:"value,omitempty"`
}

// ResultFormatter renders a computed value for display.
type ResultFormatter interface {
	Result(v float64) string
}

// Store is the history log. It is not safe for concurrent use.
type Store struct {
	backend   storage.Backend
	slot      string
	formatter ResultFormatter
	layout    string
	now       func() time.Time
	logger    *slog.Logger
	listeners []func([]Record)
	entries   []Record
}

// Option configures a Store.
type Option func(*Store)

// WithSlot overrides the storage slot name.
func WithSlot(slot string) Option {
	return func(s *Store) { s.slot = slot }
}

// WithFormatter sets how results are rendered.
func WithFormatter(f ResultFormatter) Option {
	return func(s *Store) { s.formatter = f }
}

// WithTimestampLayout sets the time.Format layout for timestamps.
func WithTimestampLayout(layout string) Option {
	return func(s *Store) { s.layout = layout }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger used for persistence warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// Load restores the log from backend. A missing, unreadable or malformed slot
// yields an empty log; that condition is logged and never returned.
func Load(backend storage.Backend, opts ...Option) (*Store, error) {
	if backend == nil {
		return nil, fmt.Errorf("backend cannot be nil")
	}

	s := &Store{
		backend: backend,
		slot:    DefaultSlot,
		layout:  DefaultTimestampLayout,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.formatter == nil {
		s.formatter = numfmt.New(language.English)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	s.entries = s.read()
	return s, nil
}

func (s *Store) read() []Record {
	entries := make([]Record, 0, MaxEntries)

	data, ok, err := s.backend.Get(s.slot)
	if err != nil {
		s.logger.Warn("failed to read history, starting empty", "slot", s.slot, "error", err)
		return entries
	}
	if !ok || data == "" {
		return entries
	}

	var loaded []Record
	if err := json.Unmarshal([]byte(data), &loaded); err != nil {
		s.logger.Warn("malformed history, starting empty", "slot", s.slot, "error", err)
		return entries
	}
	if len(loaded) > MaxEntries {
		loaded = loaded[:MaxEntries]
	}
	return append(entries, loaded...)
}

// Record logs a completed computation at the front of the log and persists it.
func (s *Store) Record(expression string, result float64) Record {
	rec := Record{
		Expression: expression,
		Result:     s.formatter.Result(result),
		Timestamp:  s.now().Format(s.layout),
		Value:      strconv.FormatFloat(result, 'f', -1, 64),
	}

	entries := make([]Record, 0, MaxEntries)
	entries = append(entries, rec)
	entries = append(entries, s.entries...)
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}
	s.entries = entries

	s.logger.Debug("recorded computation", "expression", rec.Expression, "result", rec.Result)
	s.persist()
	s.notify()
	return rec
}

// Clear empties the log, but only when confirmer agrees. A nil confirmer
// declines. It reports whether the log was cleared.
func (s *Store) Clear(confirmer Confirmer) bool {
	if confirmer == nil || !confirmer.Confirm(ClearPrompt) {
		return false
	}

	s.entries = make([]Record, 0, MaxEntries)
	s.logger.Info("history cleared", "slot", s.slot)
	s.persist()
	s.notify()
	return true
}

// Entry returns the record at index, where 0 is the most recent.
func (s *Store) Entry(index int) (Record, bool) {
	if index < 0 || index >= len(s.entries) {
		return Record{}, false
	}
	return s.entries[index], true
}

// Entries returns a copy of the log, most recent first.
func (s *Store) Entries() []Record {
	out := make([]Record, len(s.entries))
	copy(out, s.entries)
	return out
}

// Subscribe registers fn to be called with a copy of the log after every
// record or clear.
func (s *Store) Subscribe(fn func([]Record)) {
	s.listeners = append(s.listeners, fn)
}

// Len returns the number of records in the log.
func (s *Store) Len() int { return len(s.entries) }

// persist writes the log to the backend. Failures leave the in-memory log
// intact and are only logged.
func (s *Store) persist() {
	data, err := json.Marshal(s.entries)
	if err != nil {
		s.logger.Warn("failed to encode history", "error", err)
		return
	}
	if err := s.backend.Set(s.slot, string(data)); err != nil {
		s.logger.Warn("failed to persist history", "slot", s.slot, "error", err)
	}
}

func (s *Store) notify() {
	if len(s.listeners) == 0 {
		return
	}
	snapshot := s.Entries()
	for _, fn := range s.listeners {
		fn(snapshot)
	}
}
