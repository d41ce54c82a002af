package command

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joeycumines/one-shot-calc/internal/calculator"
	"github.com/joeycumines/one-shot-calc/internal/config"
)

func TestEval(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"single run", []string{"2+3="}, "5\n"},
		{"separate keys", []string{"2", "+", "3", "Enter"}, "5\n"},
		{"spaces ignored", []string{"1 2 * 3 ="}, "36\n"},
		{"rounding", []string{"0.1+0.2="}, "0.3\n"},
		{"grouping", []string{"1234567"}, "1,234,567\n"},
		{"pending operator", []string{"7*"}, "7 ×\n7\n"},
		{"chaining", []string{"2+3*"}, "5 ×\n5\n"},
		{"backspace", []string{"123", "Backspace"}, "12\n"},
		{"escape", []string{"9+9", "Escape"}, "0\n"},
		{"display glyphs", []string{"9÷4×2−1="}, "3.5\n"},
		{"operator names", []string{"6", "divide", "4", "="}, "1.5\n"},
		{"no keys", nil, "0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			stdout, stderr, err := h.run("", append([]string{"eval"}, tt.args...)...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, stdout)
			assert.Empty(t, stderr)
		})
	}
}

func TestEval_DivisionByZero(t *testing.T) {
	h := newHarness(t)
	stdout, stderr, err := h.run("", "eval", "8/0=", "4")
	require.NoError(t, err)
	assert.Equal(t, "4\n", stdout)
	assert.Equal(t, "Alert: Cannot divide by zero\n", stderr)

	out, _, err := h.run("", "history")
	require.NoError(t, err)
	assert.Equal(t, "No calculations yet.\n", out)
}

func TestEval_UnknownKey(t *testing.T) {
	h := newHarness(t)
	_, _, err := h.run("", "eval", "2^3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"^"`)
}

func TestEval_Locale(t *testing.T) {
	h := newHarness(t)
	h.cfg.SetCommandOption("eval", config.KeyLocale, "de")

	stdout, _, err := h.run("", "eval", "1234,5*2=")
	require.NoError(t, err)
	assert.Equal(t, "2.469\n", stdout)
}

func TestEval_InvalidSettings(t *testing.T) {
	h := newHarness(t)
	h.cfg.SetGlobalOption(config.KeyStorageBackend, "s3")
	_, _, err := h.run("", "eval", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.KeyStorageBackend)
}

func TestEval_LogFile(t *testing.T) {
	h := newHarness(t)
	logPath := filepath.Join(t.TempDir(), "calc.log")

	_, stderr, err := h.run("", "eval", "-log-file", logPath, "-log-level", "debug", "6/3=")
	require.NoError(t, err)
	assert.Empty(t, stderr)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	var found bool
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		assert.Equal(t, "eval", entry["command"])
		assert.NotEmpty(t, entry["run"])
		if entry["msg"] == "recorded computation" {
			found = true
			assert.Equal(t, "6 ÷ 3", entry["expression"])
		}
	}
	assert.True(t, found, "expected a record log entry in:\n%s", data)
}

func TestEval_TextLogsToStderr(t *testing.T) {
	h := newHarness(t)
	_, stderr, err := h.run("", "eval", "-log-level", "info", "1")
	require.NoError(t, err)
	assert.Empty(t, stderr, "nothing at info for a plain keypress")

	_, _, err = h.run("", "eval", "-log-level", "loud", "1")
	assert.Error(t, err)
}

func TestSplitKeys(t *testing.T) {
	actions, err := splitKeys([]string{"12", "Enter", "+", "esc", "3.4"})
	require.NoError(t, err)
	assert.Equal(t, []calculator.Action{
		calculator.Digit('1'), calculator.Digit('2'), calculator.Compute(),
		calculator.Op(calculator.OpAdd), calculator.Clear(),
		calculator.Digit('3'), calculator.Point(), calculator.Digit('4'),
	}, actions)

	actions, err = splitKeys([]string{"6÷3", "multiply", "2x2−1"})
	require.NoError(t, err)
	assert.Equal(t, []calculator.Action{
		calculator.Digit('6'), calculator.Op(calculator.OpDivide), calculator.Digit('3'),
		calculator.Op(calculator.OpMultiply),
		calculator.Digit('2'), calculator.Op(calculator.OpMultiply), calculator.Digit('2'),
		calculator.Op(calculator.OpSubtract), calculator.Digit('1'),
	}, actions)

	_, err = splitKeys([]string{"Enterr"})
	assert.Error(t, err)
}
