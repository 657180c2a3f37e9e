package shared

import (
	"strings"
)

func NormalizeName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}
