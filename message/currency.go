package message

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// FormatBRL renders a value in Brazilian real notation, e.g. "R$ 1.234,56".
// Every price shown to a customer, in the chat message or on the receipt,
// goes through here so both stay numerically consistent.
func FormatBRL(value float64) string {
	negative := value < 0
	if negative {
		value = -value
	}
	cents := int64(math.Round(value * 100))
	whole := strconv.FormatInt(cents/100, 10)

	var grouped strings.Builder
	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			grouped.WriteByte('.')
		}
		grouped.WriteRune(digit)
	}

	sign := ""
	if negative {
		sign = "-"
	}
	return "R$ " + sign + grouped.String() + "," + pad2(cents%100)
}

func pad2(n int64) string {
	if n < 10 {
		return "0" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}

var changeDuePattern = regexp.MustCompile(`Troco para R\$ ?(\d+(?:\.\d{3})*(?:,\d{1,2})?)`)

// ParseChangeDue extracts a change-due amount from legacy free-text payment
// details ("Troco para R$ 100,00"). Orders now carry the amount as a typed
// field; this shim exists only for records persisted before that field was
// added and must not become the primary data path.
func ParseChangeDue(details string) (float64, bool) {
	match := changeDuePattern.FindStringSubmatch(details)
	if match == nil {
		return 0, false
	}
	normalized := strings.ReplaceAll(match[1], ".", "")
	normalized = strings.ReplaceAll(normalized, ",", ".")
	value, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}
