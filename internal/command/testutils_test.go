package command

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joeycumines/one-shot-calc/internal/config"
	"github.com/joeycumines/one-shot-calc/internal/storage"
)

// harness runs commands against an isolated config, config path and
// in-memory storage.
type harness struct {
	t          *testing.T
	cfg        *config.Config
	configPath string
	registry   *Registry
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	for _, o := range config.DefaultSchema().SectionOptions("") {
		if o.EnvVar != "" {
			t.Setenv(o.EnvVar, "")
			os.Unsetenv(o.EnvVar)
		}
	}
	configPath := filepath.Join(t.TempDir(), "config")
	t.Setenv(config.ConfigEnvVar, configPath)

	storage.ClearAllInMemory()
	t.Cleanup(storage.ClearAllInMemory)

	cfg := config.NewConfig()
	cfg.SetGlobalOption(config.KeyStorageBackend, "memory")
	cfg.SetGlobalOption(config.KeyStorageProfile, "command-test")
	cfg.SetGlobalOption(config.KeyLogLevel, "error")

	h := &harness{t: t, cfg: cfg, configPath: configPath, registry: NewRegistry()}
	RegisterAll(h.registry, cfg, configPath, "1.2.3")
	return h
}

// run executes args with stdin and returns stdout, stderr and the error.
func (h *harness) run(stdin string, args ...string) (string, string, error) {
	h.t.Helper()
	var out, errOut bytes.Buffer
	err := h.registry.Run(context.Background(), "tui", args, IO{
		In:  strings.NewReader(stdin),
		Out: &out,
		Err: &errOut,
	})
	return out.String(), errOut.String(), err
}
