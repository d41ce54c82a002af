package command

import (
	"context"
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingCommand struct {
	*BaseCommand
	verbose bool
	args    []string
	ran     bool
}

func (c *recordingCommand) SetupFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.verbose, "v", false, "verbose")
}

func (c *recordingCommand) Execute(_ context.Context, args []string, _ IO) error {
	c.ran = true
	c.args = args
	return nil
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	a := &recordingCommand{BaseCommand: NewBaseCommand("alpha", "first", "alpha")}
	b := &recordingCommand{BaseCommand: NewBaseCommand("beta", "second", "beta")}
	r.Register(b)
	r.Register(a)

	assert.Equal(t, []string{"alpha", "beta"}, r.List())

	got, err := r.Get("alpha")
	require.NoError(t, err)
	assert.Same(t, a, got)

	_, err = r.Get("gamma")
	assert.ErrorIs(t, err, ErrUnknownCommand)
}

func TestRegistry_Run(t *testing.T) {
	h := newHarness(t)
	cmd := &recordingCommand{BaseCommand: NewBaseCommand("rec", "records", "rec [-v] args")}
	h.registry.Register(cmd)

	_, _, err := h.run("", "rec", "-v", "x", "y")
	require.NoError(t, err)
	assert.True(t, cmd.ran)
	assert.True(t, cmd.verbose)
	assert.Equal(t, []string{"x", "y"}, cmd.args)
}

func TestRegistry_RunDefault(t *testing.T) {
	r := NewRegistry()
	cmd := &recordingCommand{BaseCommand: NewBaseCommand("main", "", "main")}
	r.Register(cmd)

	require.NoError(t, r.Run(context.Background(), "main", nil, IO{}))
	assert.True(t, cmd.ran)
}

func TestRegistry_RunErrors(t *testing.T) {
	h := newHarness(t)

	_, stderr, err := h.run("", "frobnicate")
	assert.ErrorIs(t, err, ErrUnknownCommand)
	assert.Contains(t, stderr, "Unknown command: frobnicate")

	_, stderr, err = h.run("", "history", "-bogus")
	assert.Error(t, err)
	assert.Contains(t, stderr, "Usage: calc history")

	_, stderr, err = h.run("", "history", "-h")
	assert.NoError(t, err)
	assert.Contains(t, stderr, "-yes")
}

func TestRegistry_RunHelpFlag(t *testing.T) {
	h := newHarness(t)
	stdout, _, err := h.run("", "--help")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Commands:")
}
