package boundary

import "fmt"

// Edge is one import discovered by static analysis: the file at From
// imports the file or package at To.
type Edge struct {
	From string
	To   string
}

// FindingKind classifies a reported edge.
type FindingKind string

const (
	// FindingDenied means both ends classified but the rules forbid the import.
	FindingDenied FindingKind = "denied"
	// FindingUnclassified means at least one end matched no element. It points
	// at a gap in the element list, never at an allowed import.
	FindingUnclassified FindingKind = "unclassified"
)

// Finding is a boundary violation reported for one edge.
type Finding struct {
	Edge     Edge
	FromType ModuleType
	ToType   ModuleType
	Kind     FindingKind
}

// String formats the finding for lint-style output.
func (f Finding) String() string {
	switch f.Kind {
	case FindingUnclassified:
		return fmt.Sprintf("%s -> %s: unclassified (%s -> %s)",
			f.Edge.From, f.Edge.To, typeLabel(f.FromType), typeLabel(f.ToType))
	default:
		return fmt.Sprintf("%s -> %s: %s may not import %s",
			f.Edge.From, f.Edge.To, f.FromType, f.ToType)
	}
}

func typeLabel(t ModuleType) string {
	if t == Unclassified {
		return "?"
	}
	return string(t)
}

// Classifier maps a path to a module type.
type Classifier interface {
	Classify(path string) ModuleType
}

// Checker evaluates import edges against a policy.
type Checker struct {
	policy     *Policy
	classifier Classifier
}

// NewChecker returns a Checker that classifies through c. A nil c uses the
// policy directly.
func NewChecker(p *Policy, c Classifier) *Checker {
	if c == nil {
		c = p
	}
	return &Checker{policy: p, classifier: c}
}

// Check evaluates one edge. It reports false when the edge is permitted or
// either end is ignored.
func (c *Checker) Check(e Edge) (Finding, bool) {
	if c.policy.Ignored(e.From) || c.policy.Ignored(e.To) {
		return Finding{}, false
	}
	f := Finding{
		Edge:     e,
		FromType: c.classifier.Classify(e.From),
		ToType:   c.classifier.Classify(e.To),
	}
	if f.FromType == Unclassified || f.ToType == Unclassified {
		f.Kind = FindingUnclassified
		return f, true
	}
	if !c.policy.IsAllowed(f.FromType, f.ToType) {
		f.Kind = FindingDenied
		return f, true
	}
	return Finding{}, false
}

// CheckAll evaluates edges in order and returns the findings.
func (c *Checker) CheckAll(edges []Edge) []Finding {
	var findings []Finding
	for _, e := range edges {
		if f, ok := c.Check(e); ok {
			findings = append(findings, f)
		}
	}
	return findings
}

// Check evaluates one edge using the policy as its own classifier.
func (p *Policy) Check(e Edge) (Finding, bool) {
	return NewChecker(p, nil).Check(e)
}

// CheckAll evaluates edges using the policy as its own classifier.
func (p *Policy) CheckAll(edges []Edge) []Finding {
	return NewChecker(p, nil).CheckAll(edges)
}
