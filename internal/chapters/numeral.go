package chapters

import (
	"errors"
	"strconv"
	"strings"
	"unicode"
)

var errNumeral = errors.New("not a chinese numeral")

var numeralDigits = map[rune]int64{
	'零': 0, '〇': 0,
	'一': 1, '二': 2, '兩': 2, '两': 2, '三': 3, '四': 4,
	'五': 5, '六': 6, '七': 7, '八': 8, '九': 9,
}

var numeralUnits = map[rune]int64{'十': 10, '百': 100, '千': 1000}

var numeralSections = map[rune]int64{'萬': 1e4, '万': 1e4, '億': 1e8, '亿': 1e8}

// DecodeNumeral reads a Chinese numeral using the ten-thousand grouping:
// "十二" is 12, "一百零五" is 105, "三萬二千" is 32000. Strings mixing
// ASCII digits into the numeral are rejected.
func DecodeNumeral(s string) (int64, error) {
	if s == "" {
		return 0, errNumeral
	}

	var (
		total   int64
		section int64
		digit   int64 = -1
	)

	for _, r := range s {
		if d, ok := numeralDigits[r]; ok {
			if d == 0 {
				digit = -1
				continue
			}
			if digit >= 0 {
				return 0, errNumeral
			}
			digit = d
			continue
		}

		if u, ok := numeralUnits[r]; ok {
			if digit < 0 {
				// a bare 十 reads as 一十
				if u != 10 {
					return 0, errNumeral
				}
				digit = 1
			}
			section += digit * u
			digit = -1
			continue
		}

		if big, ok := numeralSections[r]; ok {
			if digit > 0 {
				section += digit
			}
			if section == 0 {
				return 0, errNumeral
			}
			total += section * big
			section = 0
			digit = -1
			continue
		}

		return 0, errNumeral
	}

	if digit > 0 {
		section += digit
	}

	return total + section, nil
}

// parseNumber accepts plain decimals first and Chinese numerals second.
func parseNumber(s string) *float64 {
	if s == "" {
		return nil
	}

	if f, err := strconv.ParseFloat(asciiDigits(s), 64); err == nil {
		return &f
	}

	n, err := DecodeNumeral(s)
	if err != nil {
		return nil
	}

	f := float64(n)
	return &f
}

// asciiDigits folds decimal digits of any script ("１２", "١٢") to ASCII.
func asciiDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x80 || !unicode.IsDigit(r) {
			return r
		}
		for _, rng := range unicode.Nd.R16 {
			if lo, hi := rune(rng.Lo), rune(rng.Hi); r >= lo && r <= hi {
				return '0' + (r-lo)%10
			}
		}
		for _, rng := range unicode.Nd.R32 {
			if lo, hi := rune(rng.Lo), rune(rng.Hi); r >= lo && r <= hi {
				return '0' + (r-lo)%10
			}
		}
		return r
	}, s)
}
