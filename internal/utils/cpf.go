package utils

import (
	"regexp"
	"unicode"
)

var (
	cpfPattern   = regexp.MustCompile(`^\d{3}\.\d{3}\.\d{3}-\d{2}$`)
	phonePattern = regexp.MustCompile(`^\(\d{2}\) \d{5}-\d{4}$`)
)

// remove qualquer coisa que não seja dígito
func SanitizeCPF(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if unicode.IsDigit(r) {
			out = append(out, r)
		}
	}
	return string(out)
}

// Só o formato é conferido (000.000.000-00); dígitos verificadores não são calculados.
func IsCPFFormatted(s string) bool {
	return cpfPattern.MatchString(s)
}

func IsPhoneFormatted(s string) bool {
	return phonePattern.MatchString(s)
}

// CanonicalCPF devolve o CPF no formato 000.000.000-00.
// Aceita o formato canônico ou apenas os 11 dígitos; qualquer outra coisa volta como veio.
func CanonicalCPF(s string) string {
	if IsCPFFormatted(s) {
		return s
	}
	d := SanitizeCPF(s)
	if len(d) != 11 || len(d) != len(s) {
		return s
	}
	return d[0:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:11]
}
