package boundary

import (
	"fmt"
	"strings"
)

// ModuleType names a category of modules sharing one allow-list.
type ModuleType string

// Unclassified is returned by Classify when no element pattern matches.
const Unclassified ModuleType = ""

// Decision is the outcome applied to types that have no rule.
type Decision int

const (
	// Disallow rejects imports from types without a rule.
	Disallow Decision = iota
	// Allow accepts imports from types without a rule.
	Allow
)

// String returns the config spelling of the decision.
func (d Decision) String() string {
	if d == Allow {
		return "allow"
	}
	return "disallow"
}

// ParseDecision parses "allow" or "disallow". An empty string means Disallow.
func ParseDecision(s string) (Decision, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "disallow":
		return Disallow, nil
	case "allow":
		return Allow, nil
	default:
		return Disallow, fmt.Errorf("%w: %q", ErrBadDecision, s)
	}
}

// Element associates a module type with the glob pattern that selects it.
type Element struct {
	Type    ModuleType `toml:"type" yaml:"type"`
	Pattern string     `toml:"pattern" yaml:"pattern"`
}

// Rule lists the module types From may import.
type Rule struct {
	From  ModuleType   `toml:"from" yaml:"from"`
	Allow []ModuleType `toml:"allow" yaml:"allow"`
}

// Config is the persisted boundary configuration. Elements are ordered:
// when several patterns match a path, the first declared one wins.
type Config struct {
	Default  string    `toml:"default" yaml:"default"`
	Ignore   []string  `toml:"ignore" yaml:"ignore"`
	Elements []Element `toml:"elements" yaml:"elements"`
	Rules    []Rule    `toml:"rules" yaml:"rules"`
}

// TypeSet is a set of module types.
type TypeSet map[ModuleType]struct{}

// NewTypeSet builds a set from types, dropping duplicates.
func NewTypeSet(types ...ModuleType) TypeSet {
	s := make(TypeSet, len(types))
	for _, t := range types {
		s[t] = struct{}{}
	}
	return s
}

// Has reports whether t is in the set.
func (s TypeSet) Has(t ModuleType) bool {
	_, ok := s[t]
	return ok
}

// RuleSet maps a module type to the set of types it may import.
type RuleSet map[ModuleType]TypeSet

// DefaultConfig returns the starter layout: three apps that may share code
// through one shared package, which itself imports nothing else.
func DefaultConfig() Config {
	return Config{
		Default: Disallow.String(),
		Ignore: []string{
			"**/*.test.*",
			"**/*.spec.*",
			"**/__tests__/**",
		},
		Elements: []Element{
			{Type: "web", Pattern: "apps/web/*"},
			{Type: "mobile", Pattern: "apps/mobile/*"},
			{Type: "api", Pattern: "apps/api/*"},
			{Type: "shared", Pattern: "packages/shared/*"},
		},
		Rules: []Rule{
			{From: "web", Allow: []ModuleType{"web", "shared"}},
			{From: "mobile", Allow: []ModuleType{"mobile", "shared"}},
			{From: "api", Allow: []ModuleType{"api", "shared"}},
			{From: "shared", Allow: []ModuleType{"shared"}},
		},
	}
}
