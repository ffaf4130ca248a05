// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pattern

import (
	"errors"
	"slices"
	"testing"
)

func TestMatchesEmptyIncludesMatchesAll(t *testing.T) {
	t.Parallel()
	pair := PatternPair{}
	if !pair.Matches("a.b") {
		t.Error("empty pair should match a.b")
	}
	if !pair.IsEmpty() {
		t.Error("zero PatternPair should report IsEmpty")
	}
}

func TestMatchesExcludeWins(t *testing.T) {
	t.Parallel()
	pair := MustCompile([]string{`a\.b`}, []string{`\.b$`})
	if pair.Matches("a.b") {
		t.Error("exclude should reject a.b even though an include matches")
	}
}

func TestMatchesRequiresInclude(t *testing.T) {
	t.Parallel()
	pair := MustCompile([]string{`^a\.`, `^b\.`}, []string{`bool`})

	tests := []struct {
		name string
		want bool
	}{
		{"a.0.random", true},
		{"b.3.enum", true},
		{"c.0.random", false},
		{"a.0.bool", false},
	}
	for _, test := range tests {
		if got := pair.Matches(test.name); got != test.want {
			t.Errorf("Matches(%q) = %v, want %v", test.name, got, test.want)
		}
	}
}

func TestMatchesUsesSearchSemantics(t *testing.T) {
	t.Parallel()
	pair := MustCompile([]string{"random"}, nil)
	if !pair.Matches("a.0.random") {
		t.Error("unanchored include should match mid-string")
	}
}

func TestExcludeOnly(t *testing.T) {
	t.Parallel()
	pair := MustCompile(nil, []string{`^c\.`})
	got := pair.Filter([]string{"a.0.x", "c.0.x", "b.0.x"})
	want := []string{"a.0.x", "b.0.x"}
	if !slices.Equal(got, want) {
		t.Errorf("Filter = %v, want %v", got, want)
	}
}

func TestCompileFailsFast(t *testing.T) {
	t.Parallel()
	_, err := Compile([]string{"ok"}, []string{"(unclosed"})
	var configError *ConfigError
	if !errors.As(err, &configError) {
		t.Fatalf("Compile error = %v, want *ConfigError", err)
	}
	if configError.Key != "exclude" || configError.Pattern != "(unclosed" {
		t.Errorf("ConfigError = %+v", configError)
	}
}

func TestFromConfig(t *testing.T) {
	t.Parallel()
	pair, err := FromConfig(map[string]any{
		"includes": []any{"^a", "^b"},
		"include":  "^c",
		"excluded": "bool$",
		"rate":     10,
	})
	if err != nil {
		t.Fatalf("FromConfig: %v", err)
	}
	if len(pair.Includes) != 3 || len(pair.Excludes) != 1 {
		t.Fatalf("FromConfig gave %d includes, %d excludes; want 3, 1", len(pair.Includes), len(pair.Excludes))
	}
	if pair.Matches("c.0.bool") {
		t.Error("c.0.bool should be excluded")
	}
	if !pair.Matches("c.0.enum") {
		t.Error("c.0.enum should be included")
	}
}

func TestFromConfigRejectsNonStrings(t *testing.T) {
	t.Parallel()
	if _, err := FromConfig(map[string]any{"include": []any{"ok", 3}}); err == nil {
		t.Error("non-string list item should fail")
	}
	if _, err := FromConfig(map[string]any{"exclude": 3}); err == nil {
		t.Error("non-string value should fail")
	}
	if _, err := FromConfig(map[string]any{"include": "["}); err == nil {
		t.Error("invalid regex should fail")
	}
}

func TestFromString(t *testing.T) {
	t.Parallel()
	pair, err := FromString("")
	if err != nil || !pair.IsEmpty() {
		t.Errorf("FromString(\"\") = %+v, %v", pair, err)
	}
	pair, err = FromString("lights")
	if err != nil || !pair.Matches("lights.on") || pair.Matches("a.0.bool") {
		t.Errorf("FromString(lights) = %+v, %v", pair, err)
	}
}

func TestMerge(t *testing.T) {
	t.Parallel()
	merged := MustCompile([]string{"^a"}, nil).Merge(MustCompile(nil, []string{"bool"}))
	if !merged.Matches("a.0.enum") || merged.Matches("a.0.bool") || merged.Matches("b.0.enum") {
		t.Error("merged pair should include ^a and exclude bool")
	}
}
