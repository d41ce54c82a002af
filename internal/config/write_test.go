package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSetKeyInFile(t *testing.T) {
	tests := []struct {
		name    string
		initial string
		key     string
		value   string
		want    string
	}{
		{
			name: "empty file",
			key:  "locale", value: "de",
			want: "locale de",
		},
		{
			name:    "append keeps trailing newline",
			initial: "color never\n",
			key:     "locale", value: "fr",
			want: "color never\nlocale fr\n",
		},
		{
			name:    "replace in place",
			initial: "# numbers\nlocale en\ncolor auto\n",
			key:     "locale", value: "de-CH",
			want: "# numbers\nlocale de-CH\ncolor auto\n",
		},
		{
			name:    "insert before first section",
			initial: "locale en\n\n[tui]\nhistory-rows 5\n",
			key:     "color", value: "never",
			want: "locale en\n\ncolor never\n[tui]\nhistory-rows 5\n",
		},
		{
			name:    "section keys are not matched",
			initial: "[tui]\ncolor always\n",
			key:     "color", value: "never",
			want: "color never\n[tui]\ncolor always\n",
		},
		{
			name:    "value with spaces",
			initial: "",
			key:     "timestamp-format", value: "Jan 2 15:04",
			want: "timestamp-format Jan 2 15:04",
		},
		{
			name:    "empty value",
			initial: "log.file /tmp/calc.log\n",
			key:     "log.file", value: "",
			want: "log.file\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			path := filepath.Join(t.TempDir(), "config")
			if tt.initial != "" {
				if err := os.WriteFile(path, []byte(tt.initial), 0644); err != nil {
					t.Fatal(err)
				}
			}

			if err := SetKeyInFile(path, tt.key, tt.value); err != nil {
				t.Fatalf("SetKeyInFile returned error: %v", err)
			}

			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if got := string(data); got != tt.want {
				t.Fatalf("unexpected content:\n got: %q\nwant: %q", got, tt.want)
			}
		})
	}
}

func TestSetKeyInFile_CreatesParentDirectory(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "a", "b", "config")

	if err := SetKeyInFile(path, "locale", "en-GB"); err != nil {
		t.Fatalf("SetKeyInFile returned error: %v", err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath returned error: %v", err)
	}
	if v, ok := cfg.GetGlobalOption("locale"); !ok || v != "en-GB" {
		t.Fatalf("expected locale=en-GB after round trip, got %q (exists: %v)", v, ok)
	}
}

func TestSetKeyInFile_SequentialWrites(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "config")

	for _, kv := range [][2]string{{"locale", "en"}, {"color", "never"}, {"locale", "de"}} {
		if err := SetKeyInFile(path, kv[0], kv[1]); err != nil {
			t.Fatalf("SetKeyInFile(%s) returned error: %v", kv[0], err)
		}
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Global) != 2 || cfg.Global["locale"] != "de" || cfg.Global["color"] != "never" {
		t.Fatalf("unexpected options: %v", cfg.Global)
	}
}
