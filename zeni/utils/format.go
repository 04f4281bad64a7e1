package utils

import (
	"strconv"
	"strings"

	"github.com/zenibot/zeni/zeni/config"
)

// FormatNumber renders n with thousands separators.
func FormatNumber(n int64) string {
	str := strconv.FormatInt(n, 10)
	sign := ""
	if strings.HasPrefix(str, "-") {
		sign, str = "-", str[1:]
	}

	var parts []string
	for len(str) > 3 {
		parts = append([]string{str[len(str)-3:]}, parts...)
		str = str[:len(str)-3]
	}
	parts = append([]string{str}, parts...)
	return sign + strings.Join(parts, ",")
}

// FormatZ renders a currency amount, e.g. "12,500 Z".
func FormatZ(n int64) string {
	return FormatNumber(n) + " " + config.CurrencySymbol
}

// FormatSignedZ renders a delta with an explicit sign, e.g. "+5,000 Z".
func FormatSignedZ(n int64) string {
	if n > 0 {
		return "+" + FormatZ(n)
	}
	return FormatZ(n)
}

var diceFaces = [6]string{"⚀", "⚁", "⚂", "⚃", "⚄", "⚅"}

// FormatDice renders three die faces as emoji, e.g. "⚀ ⚂ ⚅".
func FormatDice(faces [3]int) string {
	out := make([]string, 0, len(faces))
	for _, f := range faces {
		if f >= 1 && f <= 6 {
			out = append(out, diceFaces[f-1])
		}
	}
	return strings.Join(out, " ")
}

// Ptr returns a pointer to v, for the option builders that want one.
func Ptr[T any](v T) *T { return &v }
