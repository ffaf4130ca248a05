// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package channel

import (
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/bureau-foundation/console/lib/clock"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

// testEnvironment builds a small environment mirroring the demo task
// layout: a bool, an enum int, and a double under "a.0", plus a
// commandable light switch.
func testEnvironment(t *testing.T) (*Environment, *clock.FakeClock) {
	t.Helper()
	fake := clock.Fake(epoch)
	environment := NewEnvironment("test", fake)

	if _, err := environment.RegisterEnum("Level", map[string]int64{"low": 1, "mid": 2, "high": 3}); err != nil {
		t.Fatalf("RegisterEnum: %v", err)
	}

	err := environment.WithNames("a", func() error {
		return environment.WithNames("0", func() error {
			if _, err := environment.FloatChannel("random", KindDouble); err != nil {
				return err
			}
			if _, err := environment.IntChannel("enum", KindInt32, WithEnum("Level"), Commandable()); err != nil {
				return err
			}
			_, err := environment.BoolChannel("bool")
			return err
		})
	})
	if err != nil {
		t.Fatalf("registering a.0.*: %v", err)
	}

	if _, err := environment.BoolChannel("lights.on", Commandable(), Initial(BoolValue(true))); err != nil {
		t.Fatalf("registering lights.on: %v", err)
	}
	return environment, fake
}

func TestEnvironmentNamesInRegistrationOrder(t *testing.T) {
	t.Parallel()
	environment, _ := testEnvironment(t)

	want := []string{"a.0.random", "a.0.enum", "a.0.bool", "lights.on"}
	if got := environment.Names(); !slices.Equal(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
	if environment.Len() != 4 {
		t.Errorf("Len() = %d, want 4", environment.Len())
	}
}

func TestEnvironmentIDsAreStable(t *testing.T) {
	t.Parallel()
	environment, _ := testEnvironment(t)

	before, _ := environment.Lookup("a.0.enum")
	if err := environment.Set("a.0.enum", "high"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	after, _ := environment.Lookup("a.0.enum")
	if before.ID != after.ID {
		t.Errorf("ID changed across Set: %d -> %d", before.ID, after.ID)
	}
	if before.ID != 2 {
		t.Errorf("a.0.enum ID = %d, want 2", before.ID)
	}
}

func TestEnvironmentEnumDefaultsToFirstItem(t *testing.T) {
	t.Parallel()
	environment, _ := testEnvironment(t)

	value, err := environment.Value("a.0.enum")
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if value.Int() != 1 {
		t.Errorf("enum initial value = %d, want 1", value.Int())
	}
}

func TestEnvironmentSetCoercesByType(t *testing.T) {
	t.Parallel()
	environment, _ := testEnvironment(t)

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"a.0.random", "2.5", "2.5"},
		{"a.0.bool", "yes", "true"},
		{"a.0.enum", "mid", "2"},
		{"a.0.enum", "3", "3"},
		{"lights.on", "off", "false"},
	}
	for _, test := range tests {
		if err := environment.Set(test.name, test.raw); err != nil {
			t.Errorf("Set(%q, %q): %v", test.name, test.raw, err)
			continue
		}
		value, _ := environment.Value(test.name)
		if got := value.String(); got != test.want {
			t.Errorf("after Set(%q, %q) value = %q, want %q", test.name, test.raw, got, test.want)
		}
	}
}

func TestEnvironmentSetRejectsBadValues(t *testing.T) {
	t.Parallel()
	environment, _ := testEnvironment(t)

	tests := []struct {
		name string
		raw  string
	}{
		{"a.0.random", "abc"},
		{"a.0.bool", "maybe"},
		{"a.0.enum", "extreme"},
		{"a.0.enum", "7"},
	}
	for _, test := range tests {
		before, _ := environment.Value(test.name)
		err := environment.Set(test.name, test.raw)
		var setError *SetError
		if !errors.As(err, &setError) {
			t.Errorf("Set(%q, %q) error = %v, want *SetError", test.name, test.raw, err)
			continue
		}
		if setError.Channel != test.name || setError.Raw != test.raw {
			t.Errorf("SetError = %+v, want channel %q raw %q", setError, test.name, test.raw)
		}
		after, _ := environment.Value(test.name)
		if !before.Equal(after) {
			t.Errorf("rejected Set(%q, %q) changed value %v -> %v", test.name, test.raw, before, after)
		}
	}
}

func TestEnvironmentUnknownChannel(t *testing.T) {
	t.Parallel()
	environment, _ := testEnvironment(t)

	if _, ok := environment.Lookup("nope"); ok {
		t.Error("Lookup(nope) should fail")
	}
	if _, err := environment.Value("nope"); !errors.Is(err, ErrUnknownChannel) {
		t.Errorf("Value(nope) error = %v, want ErrUnknownChannel", err)
	}
	if err := environment.Set("nope", "1"); !errors.Is(err, ErrUnknownChannel) {
		t.Errorf("Set(nope) error = %v, want ErrUnknownChannel", err)
	}
	if err := environment.Toggle("nope"); !errors.Is(err, ErrUnknownChannel) {
		t.Errorf("Toggle(nope) error = %v, want ErrUnknownChannel", err)
	}
}

func TestEnvironmentToggle(t *testing.T) {
	t.Parallel()
	environment, _ := testEnvironment(t)

	for _, want := range []bool{false, true} {
		if err := environment.Toggle("lights.on"); err != nil {
			t.Fatalf("Toggle: %v", err)
		}
		value, _ := environment.Value("lights.on")
		if value.Bool() != want {
			t.Errorf("after Toggle lights.on = %v, want %v", value.Bool(), want)
		}
	}

	if err := environment.Toggle("a.0.random"); !errors.Is(err, ErrNotBoolean) {
		t.Errorf("Toggle(a.0.random) error = %v, want ErrNotBoolean", err)
	}
}

func TestEnvironmentAgeTracksUpdates(t *testing.T) {
	t.Parallel()
	environment, fake := testEnvironment(t)

	fake.Advance(3 * time.Second)
	age, err := environment.Age("a.0.random")
	if err != nil {
		t.Fatalf("Age: %v", err)
	}
	if age != 3*time.Second {
		t.Errorf("Age = %v, want 3s", age)
	}

	if err := environment.SetFloat("a.0.random", 0.25); err != nil {
		t.Fatalf("SetFloat: %v", err)
	}
	age, _ = environment.Age("a.0.random")
	if age != 0 {
		t.Errorf("Age after update = %v, want 0", age)
	}
	updated, _ := environment.LastUpdated("a.0.random")
	if !updated.Equal(epoch.Add(3 * time.Second)) {
		t.Errorf("LastUpdated = %v, want %v", updated, epoch.Add(3*time.Second))
	}
}

func TestEnvironmentSamplePairsValueWithUpdateTime(t *testing.T) {
	t.Parallel()
	environment, fake := testEnvironment(t)

	fake.Advance(2 * time.Second)
	if err := environment.SetFloat("a.0.random", 0.75); err != nil {
		t.Fatalf("SetFloat: %v", err)
	}
	value, updated, err := environment.Sample("a.0.random")
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	if value.Float() != 0.75 || !updated.Equal(epoch.Add(2*time.Second)) {
		t.Errorf("Sample = %v at %v, want 0.75 at %v", value, updated, epoch.Add(2*time.Second))
	}

	if _, _, err := environment.Sample("no.such.channel"); !errors.Is(err, ErrUnknownChannel) {
		t.Errorf("Sample(unknown) error = %v, want ErrUnknownChannel", err)
	}
}

func TestEnvironmentRegistrationErrors(t *testing.T) {
	t.Parallel()
	environment, _ := testEnvironment(t)

	if _, err := environment.BoolChannel("lights.on"); err == nil {
		t.Error("duplicate registration should fail")
	}
	if _, err := environment.IntChannel("x", KindInt8, WithEnum("Missing")); err == nil {
		t.Error("unknown enum should fail")
	}
	if _, err := environment.FloatChannel("y", KindDouble, WithEnum("Level")); err == nil {
		t.Error("enum on a float channel should fail")
	}
	if _, err := environment.IntChannel("z", KindDouble); err == nil {
		t.Error("IntChannel with a float kind should fail")
	}
	if _, err := environment.RegisterEnum("Level", map[string]int64{"x": 1}); err == nil {
		t.Error("duplicate enum should fail")
	}
}

func TestEnvironmentSetValueRangeChecks(t *testing.T) {
	t.Parallel()
	environment := NewEnvironment("range", clock.Fake(epoch))
	if _, err := environment.IntChannel("small", KindInt8); err != nil {
		t.Fatal(err)
	}
	if err := environment.SetInt("small", 127); err != nil {
		t.Errorf("SetInt(127): %v", err)
	}
	if err := environment.SetInt("small", 128); err == nil {
		t.Error("SetInt(128) on int8 should fail")
	}
}
