package currency

import (
	"fmt"
	"math"
	"strings"
)

type format struct {
	symbol   string
	decimals int
	thousand string
	decimal  string
}

var formats = map[string]format{
	"USD": {symbol: "$", decimals: 2, thousand: ",", decimal: "."},
	"EUR": {symbol: "€", decimals: 2, thousand: ",", decimal: "."},
	"GBP": {symbol: "£", decimals: 2, thousand: ",", decimal: "."},
	"INR": {symbol: "₹", decimals: 2, thousand: ",", decimal: "."},
	"IDR": {symbol: "IDR ", decimals: 0, thousand: ".", decimal: ","},
}

// Format renders amount for display in the given ISO currency. Unknown codes
// fall back to "<CODE> 1,234.50".
func Format(amount float64, code string) string {
	code = strings.ToUpper(code)
	f, ok := formats[code]
	if !ok {
		f = format{symbol: code + " ", decimals: 2, thousand: ",", decimal: "."}
	}

	scale := math.Pow(10, float64(f.decimals))
	rounded := math.Round(amount*scale) / scale

	negative := rounded < 0
	if negative {
		rounded = -rounded
	}

	numStr := fmt.Sprintf("%.*f", f.decimals, rounded)
	intPart, fracPart, _ := strings.Cut(numStr, ".")
	formatted := addThousandsSeparator(intPart, f.thousand)
	if f.decimals > 0 {
		formatted += f.decimal + fracPart
	}

	result := f.symbol + formatted
	if negative {
		result = "-" + result
	}

	return result
}

// Symbol returns the display symbol for code, or the code itself.
func Symbol(code string) string {
	if f, ok := formats[strings.ToUpper(code)]; ok {
		return strings.TrimSpace(f.symbol)
	}
	return strings.ToUpper(code)
}

func addThousandsSeparator(s string, sep string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	numSeps := (n - 1) / 3
	result := make([]byte, n+numSeps)

	j := len(result) - 1
	for i := n - 1; i >= 0; i-- {
		result[j] = s[i]
		j--

		pos := n - i
		if pos%3 == 0 && i > 0 {
			result[j] = sep[0]
			j--
		}
	}

	return string(result)
}
