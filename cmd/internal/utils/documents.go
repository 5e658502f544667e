package utils

import "strings"

const CNPJLength = 14

var (
	cnpjMask = strings.NewReplacer(".", "", "/", "", "-", "")

	// Receita Federal weights for the two CNPJ check digits.
	cnpjWeights = [2][]int{
		{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2},
		{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2},
	}
)

// StripCNPJMask turns "11.222.333/0001-81" into "11222333000181". Other
// characters are kept so IsCNPJValid can reject them.
func StripCNPJMask(cnpj string) string {
	return cnpjMask.Replace(strings.TrimSpace(cnpj))
}

// IsCNPJValid checks an unmasked CNPJ: 14 digits, not all equal, with both
// check digits matching.
func IsCNPJValid(cnpj string) bool {
	if len(cnpj) != CNPJLength || !IsOnlyNumbers(cnpj) {
		return false
	}

	// 00000000000000 and friends pass the check digit math
	if strings.Count(cnpj, cnpj[:1]) == CNPJLength {
		return false
	}

	for _, weights := range cnpjWeights {
		pos := len(weights)
		if checkDigit(cnpj[:pos], weights) != int(cnpj[pos]-'0') {
			return false
		}
	}
	return true
}

func IsOnlyNumbers(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// checkDigit is the mod 11 digit of base under weights.
func checkDigit(base string, weights []int) int {
	sum := 0
	for i, w := range weights {
		sum += int(base[i]-'0') * w
	}

	if rem := sum % 11; rem >= 2 {
		return 11 - rem
	}
	return 0
}
