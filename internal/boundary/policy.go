// Package boundary classifies source paths into module types and decides
// which module types may import which others. A Policy is compiled once
// from a Config and is read-only afterwards, so one Policy can serve any
// number of concurrent evaluations.
package boundary

import (
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Policy is a compiled, immutable boundary configuration.
type Policy struct {
	elements []Element
	ignore   []string
	rules    RuleSet
	def      Decision
}

// Compile validates cfg and returns the policy it describes. All problems
// are reported eagerly as *ConfigError so evaluation itself cannot fail.
func Compile(cfg Config) (*Policy, error) {
	def, err := ParseDecision(cfg.Default)
	if err != nil {
		return nil, &ConfigError{Field: "default", Index: -1, Err: ErrBadDecision, Value: cfg.Default}
	}

	p := &Policy{
		elements: make([]Element, 0, len(cfg.Elements)),
		ignore:   make([]string, 0, len(cfg.Ignore)),
		rules:    make(RuleSet, len(cfg.Rules)),
		def:      def,
	}

	declared := make(TypeSet, len(cfg.Elements))
	for i, el := range cfg.Elements {
		if strings.TrimSpace(string(el.Type)) == "" {
			return nil, &ConfigError{Field: "elements", Index: i, Err: ErrEmptyType}
		}
		if declared.Has(el.Type) {
			return nil, &ConfigError{Field: "elements", Index: i, Err: ErrDuplicateType, Value: string(el.Type)}
		}
		if !validPattern(el.Pattern) {
			return nil, &ConfigError{Field: "elements", Index: i, Err: ErrBadPattern, Value: el.Pattern}
		}
		declared[el.Type] = struct{}{}
		p.elements = append(p.elements, el)
	}

	for i, pat := range cfg.Ignore {
		if !validPattern(pat) {
			return nil, &ConfigError{Field: "ignore", Index: i, Err: ErrBadPattern, Value: pat}
		}
		p.ignore = append(p.ignore, pat)
	}

	for i, r := range cfg.Rules {
		if r.From == "" {
			return nil, &ConfigError{Field: "rules", Index: i, Err: ErrEmptyType}
		}
		if !declared.Has(r.From) {
			return nil, &ConfigError{Field: "rules", Index: i, Err: ErrUnknownType, Value: string(r.From)}
		}
		if _, dup := p.rules[r.From]; dup {
			return nil, &ConfigError{Field: "rules", Index: i, Err: ErrDuplicateRule, Value: string(r.From)}
		}
		for _, to := range r.Allow {
			if !declared.Has(to) {
				return nil, &ConfigError{Field: "rules", Index: i, Err: ErrUnknownType, Value: string(to)}
			}
		}
		p.rules[r.From] = NewTypeSet(r.Allow...)
	}

	return p, nil
}

// validPattern reports whether pat is a usable, non-empty glob.
func validPattern(pat string) bool {
	return strings.TrimSpace(pat) != "" && doublestar.ValidatePattern(pat)
}

// Default returns the decision applied to types without a rule.
func (p *Policy) Default() Decision { return p.def }

// Elements returns the element list in declaration order.
func (p *Policy) Elements() []Element {
	out := make([]Element, len(p.elements))
	copy(out, p.elements)
	return out
}

// Types returns the declared module types in declaration order.
func (p *Policy) Types() []ModuleType {
	out := make([]ModuleType, len(p.elements))
	for i, el := range p.elements {
		out[i] = el.Type
	}
	return out
}

// Classify returns the module type of path, or Unclassified.
func (p *Policy) Classify(filePath string) ModuleType {
	return Classify(filePath, p.elements)
}

// IsAllowed reports whether a module of type from may import one of type to.
func (p *Policy) IsAllowed(from, to ModuleType) bool {
	return IsAllowed(from, to, p.rules, p.def)
}

// Ignored reports whether path matches an ignore pattern. Ignored paths are
// excluded before classification.
func (p *Policy) Ignored(filePath string) bool {
	filePath = normalize(filePath)
	for _, pat := range p.ignore {
		if matchPattern(pat, filePath) {
			return true
		}
	}
	return false
}

// Classify evaluates elements in order against path and each of its parent
// directories; the first element whose pattern matches wins. A pattern such
// as "apps/web/*" therefore claims every file below apps/web/.
func Classify(filePath string, elements []Element) ModuleType {
	candidates := prefixes(normalize(filePath))
	for _, el := range elements {
		for _, c := range candidates {
			if matchPattern(el.Pattern, c) {
				return el.Type
			}
		}
	}
	return Unclassified
}

// IsAllowed looks up from in rules. Types without a rule get def. An
// Unclassified type on either side is never allowed.
func IsAllowed(from, to ModuleType, rules RuleSet, def Decision) bool {
	if from == Unclassified || to == Unclassified {
		return false
	}
	allowed, ok := rules[from]
	if !ok {
		return def == Allow
	}
	return allowed.Has(to)
}

// matchPattern treats a malformed pattern as a non-match. Compile rejects
// those up front, so this only matters for the free Classify function.
func matchPattern(pattern, name string) bool {
	ok, err := doublestar.Match(pattern, name)
	return err == nil && ok
}

// normalize converts separators to "/" and drops "./" prefixes.
func normalize(filePath string) string {
	filePath = strings.ReplaceAll(filePath, "\\", "/")
	if filePath == "" {
		return ""
	}
	return path.Clean(filePath)
}

// prefixes returns filePath followed by each parent directory, deepest first.
func prefixes(filePath string) []string {
	if filePath == "" || filePath == "." {
		return nil
	}
	out := []string{filePath}
	for {
		i := strings.LastIndex(filePath, "/")
		if i <= 0 {
			return out
		}
		filePath = filePath[:i]
		out = append(out, filePath)
	}
}
