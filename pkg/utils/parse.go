package utils

import (
	"strconv"
	"strings"
)

// ParseYear converte o parâmetro de query em ano. Vazio retorna 0 (sem filtro).
func ParseYear(yearStr string) (int, error) {
	if yearStr == "" {
		return 0, nil
	}

	return strconv.Atoi(yearStr)
}

// SplitCSV separa uma lista de valores separados por vírgula, descartando entradas vazias
func SplitCSV(s string) []string {
	if s == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}

	return values
}
