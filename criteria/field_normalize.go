package criteria

import (
	"fmt"
	"strings"
)

// NormalizeFieldName applies the validation and canonicalization rules
// every backend uses to address a field identifier.
func NormalizeFieldName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", fmt.Errorf("%w: field name is empty", ErrInvalidSpecification)
	}
	return trimmed, nil
}
