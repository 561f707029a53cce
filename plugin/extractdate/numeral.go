package extractdate

import (
	"strconv"
)

// invalidNumeral is returned when a token is not one of the known Chinese numerals.
const invalidNumeral = -1

// chineseNums lists the Chinese numerals one through twelve, ordered by value.
var chineseNums = [...]string{"一", "二", "三", "四", "五", "六", "七", "八", "九", "十", "十一", "十二"}

// chineseNumValues maps each numeral in chineseNums to its integer value.
var chineseNumValues = func() map[string]int {
	m := make(map[string]int, len(chineseNums))
	for i, cn := range chineseNums {
		m[cn] = i + 1
	}
	return m
}()

// ChineseNumToInt converts a Chinese numeral ("一" .. "十二") to its integer value.
// Any other input, including the empty string, yields -1.
func ChineseNumToInt(token string) int {
	if v, ok := chineseNumValues[token]; ok {
		return v
	}
	return invalidNumeral
}

// PadZero renders a decimal string as at least two digits ("5" -> "05").
// Unparsable or negative values silently become "00".
func PadZero(value string) string {
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return "00"
	}
	return padInt(n)
}

func padInt(n int) string {
	if n < 0 {
		return "00"
	}
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
