package boundary

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCompile(t *testing.T, cfg Config) *Policy {
	t.Helper()
	p, err := Compile(cfg)
	require.NoError(t, err)
	return p
}

func TestClassify(t *testing.T) {
	t.Parallel()

	p := mustCompile(t, DefaultConfig())

	tests := []struct {
		path string
		want ModuleType
	}{
		{"apps/web/Button.tsx", "web"},
		{"apps/web/src/components/Button.tsx", "web"},
		{"./apps/web/index.ts", "web"},
		{`apps\mobile\App.tsx`, "mobile"},
		{"apps/api/routers/prediction.py", "api"},
		{"packages/shared/utils/date.ts", "shared"},
		{"apps/web", Unclassified},
		{"apps/desktop/main.ts", Unclassified},
		{"README.md", Unclassified},
		{"", Unclassified},
	}

	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, p.Classify(tc.path))
		})
	}
}

func TestClassify_WebAndShared(t *testing.T) {
	t.Parallel()

	elements := []Element{
		{Type: "web", Pattern: "apps/web/*"},
		{Type: "shared", Pattern: "packages/shared/*"},
	}
	assert.Equal(t, ModuleType("web"), Classify("apps/web/Button.tsx", elements))
	assert.Equal(t, ModuleType("shared"), Classify("packages/shared/x.ts", elements))
}

func TestClassify_FirstDeclaredWins(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		elements []Element
		path     string
		want     ModuleType
	}{
		{
			name: "broad pattern first",
			elements: []Element{
				{Type: "apps", Pattern: "apps/*"},
				{Type: "web", Pattern: "apps/web/*"},
			},
			path: "apps/web/Button.tsx",
			want: "apps",
		},
		{
			name: "narrow pattern first",
			elements: []Element{
				{Type: "web", Pattern: "apps/web/*"},
				{Type: "apps", Pattern: "apps/*"},
			},
			path: "apps/web/Button.tsx",
			want: "web",
		},
		{
			name: "identical patterns",
			elements: []Element{
				{Type: "first", Pattern: "libs/*"},
				{Type: "second", Pattern: "libs/*"},
			},
			path: "libs/a/b.go",
			want: "first",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			p := mustCompile(t, Config{Elements: tc.elements})
			for i := 0; i < 50; i++ {
				require.Equal(t, tc.want, p.Classify(tc.path), "run %d", i)
			}
		})
	}
}

func TestClassify_DoubleStarPattern(t *testing.T) {
	t.Parallel()

	p := mustCompile(t, Config{Elements: []Element{
		{Type: "feature", Pattern: "src/features/**"},
		{Type: "core", Pattern: "src/core/*.ts"},
	}})
	assert.Equal(t, ModuleType("feature"), p.Classify("src/features/auth/login/Form.tsx"))
	assert.Equal(t, ModuleType("core"), p.Classify("src/core/store.ts"))
	assert.Equal(t, Unclassified, p.Classify("src/core/store.go"))
}

func TestIsAllowed(t *testing.T) {
	t.Parallel()

	rules := RuleSet{
		"web":    NewTypeSet("web", "shared"),
		"shared": NewTypeSet("shared"),
		"api":    NewTypeSet("shared"),
	}

	tests := []struct {
		name string
		from ModuleType
		to   ModuleType
		def  Decision
		want bool
	}{
		{"shared may not import web", "shared", "web", Disallow, false},
		{"web may import shared", "web", "shared", Disallow, true},
		{"web may import web", "web", "web", Disallow, true},
		{"self not implicit", "api", "api", Disallow, false},
		{"self not implicit under allow default", "api", "api", Allow, false},
		{"no rule uses disallow default", "mobile", "shared", Disallow, false},
		{"no rule uses allow default", "mobile", "shared", Allow, true},
		{"unclassified from", Unclassified, "shared", Allow, false},
		{"unclassified to", "web", Unclassified, Allow, false},
		{"unclassified both", Unclassified, Unclassified, Allow, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, IsAllowed(tc.from, tc.to, rules, tc.def))
		})
	}
}

func TestPolicy_IsAllowedDefaultConfig(t *testing.T) {
	t.Parallel()

	p := mustCompile(t, DefaultConfig())
	assert.Equal(t, Disallow, p.Default())
	assert.False(t, p.IsAllowed("shared", "web"))
	assert.True(t, p.IsAllowed("web", "shared"))
	assert.False(t, p.IsAllowed("web", "api"))
	assert.True(t, p.IsAllowed("shared", "shared"))
}

func TestPolicy_Ignored(t *testing.T) {
	t.Parallel()

	p := mustCompile(t, DefaultConfig())
	assert.True(t, p.Ignored("apps/web/Button.test.tsx"))
	assert.True(t, p.Ignored("packages/shared/date.spec.ts"))
	assert.True(t, p.Ignored("apps/web/__tests__/setup.ts"))
	assert.False(t, p.Ignored("apps/web/Button.tsx"))
}

func TestCompile_Errors(t *testing.T) {
	t.Parallel()

	base := func() Config { return DefaultConfig() }

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
		field   string
	}{
		{
			name:    "malformed element pattern",
			mutate:  func(c *Config) { c.Elements[0].Pattern = "apps/[web/*" },
			wantErr: ErrBadPattern,
			field:   "elements",
		},
		{
			name:    "empty element pattern",
			mutate:  func(c *Config) { c.Elements[1].Pattern = " " },
			wantErr: ErrBadPattern,
			field:   "elements",
		},
		{
			name:    "malformed ignore pattern",
			mutate:  func(c *Config) { c.Ignore = append(c.Ignore, "{a,b") },
			wantErr: ErrBadPattern,
			field:   "ignore",
		},
		{
			name:    "duplicate type",
			mutate:  func(c *Config) { c.Elements = append(c.Elements, Element{Type: "web", Pattern: "web/*"}) },
			wantErr: ErrDuplicateType,
			field:   "elements",
		},
		{
			name:    "empty type",
			mutate:  func(c *Config) { c.Elements[2].Type = "" },
			wantErr: ErrEmptyType,
			field:   "elements",
		},
		{
			name:    "rule from unknown type",
			mutate:  func(c *Config) { c.Rules = append(c.Rules, Rule{From: "desktop"}) },
			wantErr: ErrUnknownType,
			field:   "rules",
		},
		{
			name:    "rule allows unknown type",
			mutate:  func(c *Config) { c.Rules[0].Allow = append(c.Rules[0].Allow, "desktop") },
			wantErr: ErrUnknownType,
			field:   "rules",
		},
		{
			name:    "duplicate rule",
			mutate:  func(c *Config) { c.Rules = append(c.Rules, Rule{From: "web"}) },
			wantErr: ErrDuplicateRule,
			field:   "rules",
		},
		{
			name:    "bad default",
			mutate:  func(c *Config) { c.Default = "maybe" },
			wantErr: ErrBadDecision,
			field:   "default",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := base()
			tc.mutate(&cfg)
			_, err := Compile(cfg)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.wantErr)

			var ce *ConfigError
			require.True(t, errors.As(err, &ce), "expected *ConfigError, got %T", err)
			assert.Equal(t, tc.field, ce.Field)
		})
	}
}

func TestCompile_DuplicateAllowEntriesCollapse(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Rules[0].Allow = []ModuleType{"shared", "web", "shared"}
	p := mustCompile(t, cfg)
	assert.Len(t, p.rules["web"], 2)
}

func TestCompile_DoesNotAliasInput(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	p := mustCompile(t, cfg)
	cfg.Elements[0].Pattern = "elsewhere/*"
	assert.Equal(t, ModuleType("web"), p.Classify("apps/web/a.ts"))

	els := p.Elements()
	els[0].Type = "mutated"
	assert.Equal(t, []ModuleType{"web", "mobile", "api", "shared"}, p.Types())
}

func TestParseDecision(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]Decision{"": Disallow, "disallow": Disallow, "Allow": Allow, " allow ": Allow} {
		got, err := ParseDecision(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseDecision("deny")
	assert.ErrorIs(t, err, ErrBadDecision)
}

func TestConfigError_Error(t *testing.T) {
	t.Parallel()

	e := &ConfigError{Source: "b.toml", Field: "elements", Index: 2, Value: "a[", Err: ErrBadPattern}
	assert.Equal(t, `b.toml: elements[2]: invalid glob pattern: "a["`, e.Error())

	e = &ConfigError{Field: "default", Index: -1, Value: "x", Err: ErrBadDecision}
	assert.Equal(t, `default: invalid default decision: "x"`, e.Error())
}

func TestPolicy_ConcurrentUse(t *testing.T) {
	t.Parallel()

	p := mustCompile(t, DefaultConfig())
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				if p.Classify("apps/web/a.tsx") != "web" || !p.IsAllowed("web", "shared") {
					t.Error("unexpected result under concurrency")
					return
				}
			}
		}()
	}
	wg.Wait()
}
