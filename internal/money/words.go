package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ones = []string{"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
		"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen", "Seventeen", "Eighteen", "Nineteen"}
	tens = []string{"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety"}
)

// InWords spells a rounded amount the way Indian tax invoices print it,
// e.g. "Rupees Seventeen Thousand Seven Hundred Thirty Five and Forty Paise Only".
// Rupee amounts use lakh and crore grouping.
func InWords(amount decimal.Decimal, c Currency) string {
	rounded := Round2(amount).Abs()
	whole := rounded.Truncate(0)
	fraction := rounded.Sub(whole).Mul(decimal.NewFromInt(100)).IntPart()

	major, minor := "Rupees", "Paise"
	spell := spellIndian
	if c == USD {
		major, minor = "US Dollars", "Cents"
		spell = spellInternational
	}

	words := spell(whole.IntPart())
	if words == "" {
		words = "Zero"
	}
	var b strings.Builder
	if amount.IsNegative() && !rounded.IsZero() {
		b.WriteString("Minus ")
	}
	b.WriteString(major + " " + words)
	if fraction > 0 {
		b.WriteString(" and " + below100(fraction) + " " + minor)
	}
	b.WriteString(" Only")
	return b.String()
}

func spellIndian(n int64) string {
	parts := []string{}
	for _, unit := range []struct {
		size int64
		name string
	}{{10000000, "Crore"}, {100000, "Lakh"}, {1000, "Thousand"}} {
		if n >= unit.size {
			q := n / unit.size
			if unit.name == "Crore" && q >= 100 {
				parts = append(parts, spellIndian(q)+" "+unit.name)
			} else {
				parts = append(parts, below1000(q)+" "+unit.name)
			}
			n %= unit.size
		}
	}
	if n > 0 {
		parts = append(parts, below1000(n))
	}
	return strings.Join(parts, " ")
}

func spellInternational(n int64) string {
	parts := []string{}
	for _, unit := range []struct {
		size int64
		name string
	}{{1000000000, "Billion"}, {1000000, "Million"}, {1000, "Thousand"}} {
		if n >= unit.size {
			parts = append(parts, below1000(n/unit.size)+" "+unit.name)
			n %= unit.size
		}
	}
	if n > 0 {
		parts = append(parts, below1000(n))
	}
	return strings.Join(parts, " ")
}

func below1000(n int64) string {
	if n >= 1000 {
		return spellInternational(n)
	}
	if n >= 100 {
		rest := below100(n % 100)
		if rest == "" {
			return ones[n/100] + " Hundred"
		}
		return ones[n/100] + " Hundred " + rest
	}
	return below100(n)
}

func below100(n int64) string {
	if n < 20 {
		return ones[n]
	}
	if n%10 == 0 {
		return tens[n/10]
	}
	return tens[n/10] + " " + ones[n%10]
}
