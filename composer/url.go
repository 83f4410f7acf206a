package composer

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var (
	// ErrEmptyURL is returned when the menu URL is blank.
	ErrEmptyURL = errors.New("menu URL is empty")
	// ErrInvalidURL is returned when the normalized URL has no host.
	ErrInvalidURL = errors.New("menu URL is invalid")
)

// NormalizeURL trims raw and prefixes https:// unless it already carries a
// scheme. It does not validate.
func NormalizeURL(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" || strings.Contains(s, "://") {
		return s
	}
	return "https://" + s
}

// ParseMenuURL normalizes raw and checks that the result is an absolute URL
// with a host.
func ParseMenuURL(raw string) (string, error) {
	s := NormalizeURL(raw)
	if s == "" {
		return "", ErrEmptyURL
	}
	u, err := url.Parse(s)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%w: %q has no host", ErrInvalidURL, s)
	}
	return s, nil
}

// truncateURL shortens s to max runes, appending "..." when it was cut.
func truncateURL(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}
