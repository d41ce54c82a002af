// Package numfmt formats calculator operands and results for display using
// locale-aware digit grouping from golang.org/x/text.
package numfmt

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// MaxFractionDigits caps the fractional digits shown for a computed result.
const MaxFractionDigits = 8

// Formatter renders numbers for a single locale. Output always uses ASCII
// digits; only the separators and grouping follow the locale.
type Formatter struct {
	tag     language.Tag
	printer *message.Printer
	digits  map[rune]rune
	decimal string
	group   string
	// primary is the size of the rightmost digit group and secondary the
	// size of the groups to its left ("12,34,567" is 3 and 2).
	primary   int
	secondary int
}

// New creates a Formatter for tag. The tag is given the "nu-latn" extension
// so locales with native digits still render Latin ones.
func New(tag language.Tag) *Formatter {
	if latn, err := tag.SetTypeForKey("nu", "latn"); err == nil {
		tag = latn
	}
	p := message.NewPrinter(tag)
	f := &Formatter{
		tag:       tag,
		printer:   p,
		digits:    make(map[rune]rune, 20),
		decimal:   ".",
		primary:   3,
		secondary: 3,
	}

	for d := rune(0); d <= 9; d++ {
		f.digits['0'+d] = '0' + d
		for _, r := range p.Sprint(number.Decimal(int(d))) {
			if unicode.IsDigit(r) {
				f.digits[r] = '0' + d
			}
		}
	}

	f.learnSeparators(f.latin(p.Sprint(number.Decimal(1234567.5, number.MinFractionDigits(1)))))
	return f
}

// learnSeparators reads the separators and group sizes from a rendering of
// 1234567.5: the last separator is the decimal one, any before it group.
func (f *Formatter) learnSeparators(sample string) {
	var runs, seps []string
	var cur strings.Builder
	inDigits := false
	for i, r := range sample {
		isDigit := r >= '0' && r <= '9'
		if i > 0 && isDigit != inDigits {
			if inDigits {
				runs = append(runs, cur.String())
			} else {
				seps = append(seps, cur.String())
			}
			cur.Reset()
		}
		inDigits = isDigit
		cur.WriteRune(r)
	}
	if inDigits {
		runs = append(runs, cur.String())
	}
	if len(runs) < 2 || len(seps) != len(runs)-1 {
		return
	}

	f.decimal = seps[len(seps)-1]
	groups := runs[:len(runs)-1]
	if len(groups) < 2 {
		return
	}
	f.group = seps[0]
	f.primary = len(groups[len(groups)-1])
	f.secondary = f.primary
	if len(groups) > 2 {
		f.secondary = len(groups[len(groups)-2])
	}
}

// latin maps locale digits to ASCII and drops formatting marks such as the
// bidi controls some locales wrap numbers in.
func (f *Formatter) latin(s string) string {
	return strings.Map(func(r rune) rune {
		if d, ok := f.digits[r]; ok {
			return d
		}
		if unicode.Is(unicode.Cf, r) {
			return -1
		}
		return r
	}, s)
}

// Parse creates a Formatter from a BCP 47 locale string such as "en" or "es-ES".
func Parse(locale string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	return New(tag), nil
}

// Tag returns the locale this formatter renders for.
func (f *Formatter) Tag() language.Tag { return f.tag }

// Operand renders an operand as it is being typed. The integer part is
// grouped; any fractional digits are appended verbatim, so trailing zeros
// and a trailing decimal point survive.
func (f *Formatter) Operand(s string) string {
	if s == "" {
		return "0"
	}

	intPart, fracPart, hasFrac := strings.Cut(s, ".")
	neg := strings.HasPrefix(intPart, "-")
	intPart = strings.TrimPrefix(intPart, "-")

	out := f.groupInteger(intPart)
	if neg {
		out = "-" + out
	}
	if hasFrac {
		out += f.decimal + fracPart
	}
	return out
}

func (f *Formatter) groupInteger(digits string) string {
	if digits == "" {
		return "0"
	}
	if n, err := strconv.ParseInt(digits, 10, 64); err == nil {
		return f.latin(f.printer.Sprint(number.Decimal(n)))
	}
	// Beyond int64 the grouping is still applied, at float precision.
	if v, err := strconv.ParseFloat(digits, 64); err == nil {
		return f.latin(f.printer.Sprint(number.Decimal(v, number.MaxFractionDigits(0))))
	}
	return "0"
}

// Result renders a computed value: grouped, at most MaxFractionDigits
// fractional digits, no zero padding.
func (f *Formatter) Result(v float64) string {
	return f.latin(f.printer.Sprint(number.Decimal(v, number.MaxFractionDigits(MaxFractionDigits))))
}

// Unformat reverses Result, returning a plain numeral ("1234.5") suitable
// for use as an operand. Group separators must sit on this locale's group
// boundaries, so a value rendered for another locale is rejected rather
// than misread.
func (f *Formatter) Unformat(s string) (string, error) {
	in := strings.TrimSpace(f.latin(s))
	var neg bool
	for _, sign := range []string{"-", "−"} {
		if rest, ok := strings.CutPrefix(in, sign); ok {
			in, neg = rest, true
			break
		}
	}

	intPart, fracPart, hasFrac := strings.Cut(in, f.decimal)
	digits, ok := f.ungroup(intPart)
	if !ok || (hasFrac && !isDigits(fracPart)) {
		return "", fmt.Errorf("cannot interpret %q as a number", s)
	}

	out := digits
	if hasFrac {
		out += "." + fracPart
	}
	if neg {
		out = "-" + out
	}
	return out, nil
}

// ungroup strips group separators from an integer part, checking that the
// rightmost group has primary digits, inner groups secondary digits and
// the leading group at most secondary.
func (f *Formatter) ungroup(s string) (string, bool) {
	if f.group == "" || !strings.Contains(s, f.group) {
		return s, isDigits(s)
	}
	groups := strings.Split(s, f.group)
	last := len(groups) - 1
	for i, g := range groups {
		if !isDigits(g) {
			return "", false
		}
		switch {
		case i == last:
			if len(g) != f.primary {
				return "", false
			}
		case i == 0:
			if len(g) > f.secondary {
				return "", false
			}
		default:
			if len(g) != f.secondary {
				return "", false
			}
		}
	}
	return strings.Join(groups, ""), true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// IsNumeral reports whether s is a plain decimal numeral: an optional
// leading minus, ASCII digits, and at most one decimal point, with at least
// one digit. Exponents, infinities and NaN are rejected.
func IsNumeral(s string) bool {
	s = strings.TrimPrefix(s, "-")
	var digits, points int
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= '0' && c <= '9':
			digits++
		case c == '.':
			points++
		default:
			return false
		}
	}
	return digits > 0 && points <= 1
}
