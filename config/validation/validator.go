// Package validation checks onboarding inputs before any document is touched.
package validation

import (
	"fmt"
	"strings"

	"iotexsetup/internal/catalog"
	"iotexsetup/internal/utils"
)

// UnknownModelError reports a model id outside the gateway catalog
type UnknownModelError struct {
	ID        string
	Kind      catalog.Kind
	Supported []string
}

func (e *UnknownModelError) Error() string {
	return fmt.Sprintf("unknown %s model %q, supported models: %s",
		e.Kind, e.ID, strings.Join(e.Supported, ", "))
}

// ValidateModel checks a model id against the gateway catalog
func ValidateModel(id string, kind catalog.Kind) error {
	if catalog.IsKnown(id, kind) {
		return nil
	}
	return &UnknownModelError{ID: id, Kind: kind, Supported: catalog.IDs(kind)}
}

// ValidateAPIKey checks that a credential is usable
func ValidateAPIKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("API key cannot be empty")
	}
	if strings.ContainsAny(key, " \t\n") {
		return fmt.Errorf("API key contains whitespace")
	}
	return nil
}

// ValidateGatewayURL checks a base URL override
func ValidateGatewayURL(url string) error {
	if url != "" && !utils.ValidateURL(url) {
		return fmt.Errorf("invalid URL format: %s", url)
	}
	return nil
}
