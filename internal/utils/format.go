package utils

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var (
	nonDigits        = regexp.MustCompile(`[^0-9]`)
	thousandsDotOnly = regexp.MustCompile(`^[+-]?\d{1,3}(\.\d{3})+$`)
	amountText       = regexp.MustCompile(`^[+-]?[.,]*[0-9][0-9.,]*$`)
	brPrinter        = message.NewPrinter(language.BrazilianPortuguese)

	// ErrInvalidAmount is returned by ParseCurrencyBRL for non-numeric input.
	ErrInvalidAmount = errors.New("invalid monetary amount")
	// ErrAmountOutOfRange wraps ErrInvalidAmount for values beyond MaxAmount.
	ErrAmountOutOfRange = fmt.Errorf("%w: out of range", ErrInvalidAmount)
)

// MaxAmount is the largest monetary value accepted from text, 99.999.999,99.
const MaxAmount = 99_999_999.99

// Accepted input layouts for FormatDateBR, tried in order.
var dateInputLayouts = []string{
	"2006-01-02",
	"2006-1-2",
	"02/01/2006",
	"2/1/2006",
	"01/02/2006",
	"2006-01-02 15:04:05",
}

const dateLayoutBR = "02/01/2006"

// CleanPhone strips everything but ASCII digits.
func CleanPhone(phone string) string {
	return nonDigits.ReplaceAllString(phone, "")
}

// FormatPhone renders a Brazilian phone number for display:
// (DD) DDDDD-DDDD, (DD) DDDD-DDDD, DDDDD-DDDD or DDDD-DDDD depending on the
// digit count. Any other length is returned unchanged.
func FormatPhone(phone string) string {
	if phone == "" {
		return ""
	}
	d := CleanPhone(phone)
	switch len(d) {
	case 11:
		return fmt.Sprintf("(%s) %s-%s", d[:2], d[2:7], d[7:])
	case 10:
		return fmt.Sprintf("(%s) %s-%s", d[:2], d[2:6], d[6:])
	case 9:
		return d[:5] + "-" + d[5:]
	case 8:
		return d[:4] + "-" + d[4:]
	}
	return phone
}

// ParseCurrencyBRL parses user input such as "48,08", "R$ 1.234,56",
// "1.234" or "48.08" into cents. A comma is the decimal separator; a dot is a
// thousands separator when both appear or when the text is dot-grouped in
// threes, otherwise a dot is read as decimal. Only digits, one leading sign
// and the two separators are accepted, up to MaxAmount in magnitude.
func ParseCurrencyBRL(s string) (int64, error) {
	v, err := parseAmount(s)
	if err != nil {
		return 0, err
	}
	return int64(math.Round(v * 100)), nil
}

func parseAmount(s string) (float64, error) {
	clean := strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(s, "R$", ""), " ", ""))
	if !amountText.MatchString(clean) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	hasDot := strings.Contains(clean, ".")
	hasComma := strings.Contains(clean, ",")
	switch {
	case hasDot && hasComma:
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.Replace(clean, ",", ".", 1)
	case hasComma:
		clean = strings.Replace(clean, ",", ".", 1)
	case hasDot && thousandsDotOnly.MatchString(clean):
		clean = strings.ReplaceAll(clean, ".", "")
	}
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if math.Abs(v) > MaxAmount {
		return 0, fmt.Errorf("%w: %q", ErrAmountOutOfRange, s)
	}
	return v, nil
}

// FormatCurrencyBRL renders a value as 1.234,56. It accepts numbers, numeric
// strings (an "R$" marker and spaces are ignored) and pointers to those; any
// value it cannot convert renders as "0,00".
func FormatCurrencyBRL(value any) string {
	v, ok := toAmount(value)
	if !ok {
		return "0,00"
	}
	return brPrinter.Sprint(number.Decimal(v, number.Scale(2)))
}

// FormatCents renders an amount stored in cents.
func FormatCents(cents int64) string {
	return FormatCurrencyBRL(float64(cents) / 100)
}

func toAmount(value any) (float64, bool) {
	var v float64
	switch x := value.(type) {
	case nil:
		return 0, false
	case float64:
		v = x
	case float32:
		v = float64(x)
	case int:
		v = float64(x)
	case int32:
		v = float64(x)
	case int64:
		v = float64(x)
	case *float64:
		if x == nil {
			return 0, false
		}
		v = *x
	case string:
		parsed, err := parseAmount(x)
		if err != nil {
			return 0, false
		}
		v = parsed
	case fmt.Stringer:
		return toAmount(x.String())
	default:
		return 0, false
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// FormatDateBR renders a date as DD/MM/YYYY. Strings are parsed with the
// known input layouts first; nil renders as "-" and anything unparseable is
// returned as text.
func FormatDateBR(value any) string {
	switch v := value.(type) {
	case nil:
		return "-"
	case time.Time:
		return v.Format(dateLayoutBR)
	case *time.Time:
		if v == nil {
			return "-"
		}
		return v.Format(dateLayoutBR)
	case string:
		for _, layout := range dateInputLayouts {
			if t, err := time.Parse(layout, v); err == nil {
				return t.Format(dateLayoutBR)
			}
		}
		return v
	default:
		return fmt.Sprint(v)
	}
}

// ParseFormDate parses an HTML date input value (YYYY-MM-DD).
func ParseFormDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", strings.TrimSpace(s))
}
