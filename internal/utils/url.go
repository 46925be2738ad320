package utils

import (
	"net/url"
	"strings"
)

// ValidateURL validates that a URL has a valid scheme and host
func ValidateURL(rawURL string) bool {
	if rawURL == "" {
		return false
	}

	parsed, err := url.ParseRequestURI(rawURL)
	if err != nil {
		return false
	}

	// Only http and https make sense for a gateway endpoint
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}

	if parsed.Host == "" {
		return false
	}

	return true
}

// NormalizeURL strips any trailing slash so base URLs compare by equality
func NormalizeURL(rawURL string) string {
	if rawURL == "/" {
		return rawURL
	}
	return strings.TrimRight(rawURL, "/")
}
