package prompt

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/papapumpkin/phase0/internal/naming"
)

// Fields is the flat mapping handed to a template engine.
type Fields map[string]string

// Keys returns the field names in sorted order.
func (f Fields) Keys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Generator asks its questions and derives template fields from the answers.
type Generator struct {
	Name        string
	Description string
	Questions   []Question
	Derive      func(Answers, Options) (Fields, error)
}

// Options carries per-run settings that shape derivation.
type Options struct {
	ComponentExtensions []string // stripped from component paths
	RouterExtensions    []string // stripped from router paths
}

// DefaultOptions returns the built-in extension sets.
func DefaultOptions() Options {
	return Options{
		ComponentExtensions: naming.TSExtensions,
		RouterExtensions:    naming.PythonExtensions,
	}
}

// Run asks g's questions through asker and returns the derived fields.
func (g Generator) Run(ctx context.Context, asker Asker, opts Options) (Fields, error) {
	answers, err := asker.Ask(ctx, g.Questions)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", g.Name, err)
	}
	fields, err := g.Derive(answers, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", g.Name, err)
	}
	return fields, nil
}

// Feature kinds offered by the feature-new generator.
var featureTypes = []string{"component", "hook", "full"}

var generators = map[string]Generator{
	"component-index": {
		Name:        "component-index",
		Description: "index file for an existing component",
		Questions: []Question{{
			Name:    "component_path",
			Message: "Path to the component (e.g., src/components/Button/Button.tsx):",
			Kind:    KindInput,
		}},
		Derive: deriveComponentIndex,
	},
	"api-schema": {
		Name:        "api-schema",
		Description: "schema for an existing API router",
		Questions: []Question{{
			Name:    "router_path",
			Message: "Path to the router (e.g., apps/api/routers/prediction.py):",
			Kind:    KindInput,
		}},
		Derive: deriveAPISchema,
	},
	"feature-new": {
		Name:        "feature-new",
		Description: "new feature module",
		Questions: []Question{
			{Name: "name", Message: "Feature name (kebab-case):", Kind: KindInput},
			{Name: "description", Message: "Brief description:", Kind: KindInput},
			{Name: "type", Message: "Feature type:", Kind: KindList, Choices: featureTypes},
		},
		Derive: deriveFeature,
	},
}

// Lookup returns the generator registered under name.
func Lookup(name string) (Generator, bool) {
	g, ok := generators[name]
	return g, ok
}

// Generators returns all registered generators sorted by name.
func Generators() []Generator {
	out := make([]Generator, 0, len(generators))
	for _, g := range generators {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func required(a Answers, key string) (string, error) {
	v := strings.TrimSpace(a[key])
	if v == "" {
		return "", &AnswerError{Question: key, Err: ErrEmptyAnswer}
	}
	return v, nil
}

func deriveComponentIndex(a Answers, opts Options) (Fields, error) {
	p, err := required(a, "component_path")
	if err != nil {
		return nil, err
	}
	return Fields(naming.Resolve(p, opts.ComponentExtensions, naming.CaseNone).Fields()), nil
}

func deriveAPISchema(a Answers, opts Options) (Fields, error) {
	p, err := required(a, "router_path")
	if err != nil {
		return nil, err
	}
	return Fields(naming.Resolve(p, opts.RouterExtensions, naming.CasePascal).Fields()), nil
}

func deriveFeature(a Answers, _ Options) (Fields, error) {
	name, err := required(a, "name")
	if err != nil {
		return nil, err
	}
	kind, ok := matchChoice(a["type"], featureTypes)
	if !ok {
		return nil, &AnswerError{Question: "type", Err: ErrInvalidChoice}
	}
	className := naming.PascalCase(naming.SnakeCase(name))
	return Fields{
		naming.KeyName:           name,
		naming.KeyBaseName:       name,
		naming.KeyClassName:      className,
		naming.KeyIdentifierName: className,
		"description":            strings.TrimSpace(a["description"]),
		"type":                   kind,
	}, nil
}
