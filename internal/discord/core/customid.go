package core

import (
	"fmt"
	"strings"
)

const (
	// CustomIDSeparator is the character used to separate parts
	CustomIDSeparator = ":"

	// MaxCustomIDLength is Discord's limit for custom IDs
	MaxCustomIDLength = 100
)

// CustomID is a parsed component custom ID: domain:action[:target[:args...]]
type CustomID struct {
	// Domain is the top-level category (e.g., "fizzle")
	Domain string

	// Action is the specific action (e.g., "choose", "confirm")
	Action string

	// Target is the primary target of the action (e.g., attempt ID)
	Target string

	// Args are additional arguments
	Args []string
}

// NewCustomID creates a new CustomID
func NewCustomID(domain, action string) *CustomID {
	return &CustomID{
		Domain: domain,
		Action: action,
		Args:   make([]string, 0),
	}
}

// WithTarget sets the target
func (c *CustomID) WithTarget(target string) *CustomID {
	c.Target = target
	return c
}

// WithArgs adds arguments
func (c *CustomID) WithArgs(args ...string) *CustomID {
	c.Args = append(c.Args, args...)
	return c
}

// Arg returns the i-th argument or "" when absent
func (c *CustomID) Arg(i int) string {
	if i < 0 || i >= len(c.Args) {
		return ""
	}
	return c.Args[i]
}

// Encode converts the CustomID to a string
func (c *CustomID) Encode() (string, error) {
	if c.Domain == "" || c.Action == "" {
		return "", fmt.Errorf("custom ID requires domain and action")
	}

	parts := []string{c.Domain, c.Action}
	if c.Target != "" || len(c.Args) > 0 {
		parts = append(parts, c.Target)
	}
	parts = append(parts, c.Args...)

	for _, part := range parts {
		if strings.Contains(part, CustomIDSeparator) {
			return "", fmt.Errorf("custom ID part %q contains separator", part)
		}
	}

	result := strings.Join(parts, CustomIDSeparator)
	if len(result) > MaxCustomIDLength {
		return "", fmt.Errorf("custom ID exceeds maximum length of %d characters", MaxCustomIDLength)
	}

	return result, nil
}

// MustEncode is like Encode but panics on error
func (c *CustomID) MustEncode() string {
	result, err := c.Encode()
	if err != nil {
		panic(err)
	}
	return result
}

// ParseCustomID parses a custom ID string
func ParseCustomID(customID string) (*CustomID, error) {
	if customID == "" {
		return nil, fmt.Errorf("empty custom ID")
	}

	parts := strings.Split(customID, CustomIDSeparator)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return nil, fmt.Errorf("invalid custom ID format: expected at least domain:action")
	}

	result := NewCustomID(parts[0], parts[1])
	if len(parts) > 2 {
		result.Target = parts[2]
		result.Args = append(result.Args, parts[3:]...)
	}

	return result, nil
}

// CustomIDBuilder builds custom IDs for one domain
type CustomIDBuilder struct {
	domain string
}

// NewCustomIDBuilder creates a new builder for a domain
func NewCustomIDBuilder(domain string) *CustomIDBuilder {
	return &CustomIDBuilder{domain: domain}
}

// Domain returns the builder's domain
func (b *CustomIDBuilder) Domain() string {
	return b.domain
}

// Button creates a button custom ID
func (b *CustomIDBuilder) Button(action, target string, args ...string) string {
	return NewCustomID(b.domain, action).
		WithTarget(target).
		WithArgs(args...).
		MustEncode()
}

// CustomIDMatcher helps match custom IDs in handlers
type CustomIDMatcher struct {
	domain string
	action string
}

// NewCustomIDMatcher creates a matcher for a domain/action; action "*" matches any
func NewCustomIDMatcher(domain, action string) *CustomIDMatcher {
	return &CustomIDMatcher{
		domain: domain,
		action: action,
	}
}

// Extract parses and returns the custom ID if it matches
func (m *CustomIDMatcher) Extract(customID string) (*CustomID, bool) {
	parsed, err := ParseCustomID(customID)
	if err != nil {
		return nil, false
	}
	if parsed.Domain != m.domain || (m.action != "*" && parsed.Action != m.action) {
		return nil, false
	}
	return parsed, true
}

// Matches checks if a custom ID matches this pattern
func (m *CustomIDMatcher) Matches(customID string) bool {
	_, ok := m.Extract(customID)
	return ok
}
