package numfmt

import (
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestFormatter_Operand(t *testing.T) {
	f := New(language.English)

	tests := []struct {
		in   string
		want string
	}{
		{"", "0"},
		{"0", "0"},
		{"5", "5"},
		{"1234", "1,234"},
		{"1234567", "1,234,567"},
		{"1234.5", "1,234.5"},
		{"1234.50", "1,234.50"},
		{"0.", "0."},
		{"0.000", "0.000"},
		{"-0.5", "-0.5"},
		{"-1234", "-1,234"},
		{"12345678.123456789", "12,345,678.123456789"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, f.Operand(tt.in))
		})
	}
}

func TestFormatter_Result(t *testing.T) {
	f := New(language.English)

	assert.Equal(t, "5", f.Result(5))
	assert.Equal(t, "0.3", f.Result(0.3))
	assert.Equal(t, "1,234.5", f.Result(1234.5))
	assert.Equal(t, "0.33333333", f.Result(0.33333333))
	assert.Equal(t, "0.12345679", f.Result(0.123456789), "capped at eight fractional digits")
	assert.Equal(t, "-1,000", f.Result(-1000))
}

func TestFormatter_German(t *testing.T) {
	f, err := Parse("de")
	require.NoError(t, err)

	assert.Equal(t, ",", f.decimal)
	assert.Equal(t, ".", f.group)
	assert.Equal(t, "1.234,5", f.Operand("1234.5"))
	assert.Equal(t, "1.234,5", f.Result(1234.5))

	plain, err := f.Unformat("1.234,5")
	require.NoError(t, err)
	assert.Equal(t, "1234.5", plain)
}

func TestFormatter_Unformat(t *testing.T) {
	f := New(language.English)

	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "1,234.5", want: "1234.5"},
		{in: "5", want: "5"},
		{in: "-1,000", want: "-1000"},
		{in: " 0.3 ", want: "0.3"},
		{in: "abc", wantErr: true},
		{in: "", wantErr: true},
		{in: "Inf", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := f.Unformat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatter_ResultRoundTrip(t *testing.T) {
	for _, locale := range []string{"en", "de", "fr"} {
		t.Run(locale, func(t *testing.T) {
			f, err := Parse(locale)
			require.NoError(t, err)
			plain, err := f.Unformat(f.Result(9876543.21))
			require.NoError(t, err)
			assert.Equal(t, "9876543.21", plain)
		})
	}
}

func TestFormatter_IndianGrouping(t *testing.T) {
	for _, locale := range []string{"en-IN", "hi"} {
		t.Run(locale, func(t *testing.T) {
			f, err := Parse(locale)
			require.NoError(t, err)
			assert.Equal(t, 3, f.primary)
			assert.Equal(t, 2, f.secondary)

			plain, err := f.Unformat(f.Result(1234567.5))
			require.NoError(t, err)
			assert.Equal(t, "1234567.5", plain)

			plain, err = f.Unformat(f.Result(1234))
			require.NoError(t, err)
			assert.Equal(t, "1234", plain)
		})
	}
}

func assertLatinDigits(t *testing.T, s string) {
	t.Helper()
	for _, r := range s {
		if unicode.IsDigit(r) {
			assert.True(t, r >= '0' && r <= '9', "non-Latin digit %q in %q", r, s)
		}
	}
}

func TestFormatter_NativeDigitLocales(t *testing.T) {
	for _, locale := range []string{"ar", "fa", "ar-EG"} {
		t.Run(locale, func(t *testing.T) {
			f, err := Parse(locale)
			require.NoError(t, err)

			display := f.Operand("1234.5")
			assertLatinDigits(t, display)
			assert.True(t, strings.HasSuffix(display, f.decimal+"5"), display)

			result := f.Result(1234567.5)
			assertLatinDigits(t, result)
			plain, err := f.Unformat(result)
			require.NoError(t, err)
			assert.Equal(t, "1234567.5", plain)

			plain, err = f.Unformat(f.Result(-42.25))
			require.NoError(t, err)
			assert.Equal(t, "-42.25", plain)
		})
	}
}

func TestFormatter_UnformatRejectsOtherLocales(t *testing.T) {
	tests := []struct {
		locale string
		in     string
	}{
		{"es", "1.5"},
		{"es", "0.3"},
		{"de", "1,234.5"},
		{"de", "12.34"},
		{"en", "1.234,5"},
		{"en", "1,5"},
		{"en", "12,34,567"},
		{"en-IN", "1,234,567"},
		{"en", "1,2345"},
		{"en", "1,234,"},
	}
	for _, tt := range tests {
		t.Run(tt.locale+"/"+tt.in, func(t *testing.T) {
			f, err := Parse(tt.locale)
			require.NoError(t, err)
			got, err := f.Unformat(tt.in)
			assert.Error(t, err, "misread as %q", got)
		})
	}
}

func TestFormatter_UnformatUngrouped(t *testing.T) {
	f, err := Parse("es")
	require.NoError(t, err)
	for in, want := range map[string]string{
		"1234":     "1234",
		"1234,5":   "1234.5",
		"1.234,5":  "1234.5",
		"12.345":   "12345",
		"-0,25":    "-0.25",
		"−1.000,5": "-1000.5",
	} {
		got, err := f.Unformat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse("not a locale!")
	assert.Error(t, err)
}

func TestIsNumeral(t *testing.T) {
	for _, s := range []string{"0", "5", "-5", "1.2", "0.", ".5", "-0.5"} {
		assert.True(t, IsNumeral(s), s)
	}
	for _, s := range []string{"", "-", ".", "1.2.3", "1e5", "NaN", "+Inf", "1,2"} {
		assert.False(t, IsNumeral(s), s)
	}
}
