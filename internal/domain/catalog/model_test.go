package catalog

import (
	"errors"
	"reflect"
	"testing"
)

// TestParse_RoundTrip verifies Parse(MarshalPretty(c)) == c for a valid catalog.
func TestParse_RoundTrip(t *testing.T) {
	c := Catalog{Weeks: map[string][][]string{
		"1": {{"a", "b"}, {"c"}},
		"2": {{"d"}},
	}}

	data, err := c.MarshalPretty()
	if err != nil {
		t.Fatalf("MarshalPretty failed: %v", err)
	}
	got, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !reflect.DeepEqual(got, c) {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, c)
	}
}

// TestParse_Invalid verifies malformed JSON yields a *ParseError.
func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte(`{"weeks": [not json`))
	if err == nil {
		t.Fatal("expected error for malformed JSON")
	}
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Errorf("error type = %T, want *ParseError", err)
	}
}

// TestParse_MissingWeeks verifies an empty object parses to an empty catalog.
func TestParse_MissingWeeks(t *testing.T) {
	c, err := Parse([]byte(`{}`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if c.Weeks == nil {
		t.Error("Weeks should be non-nil after Parse")
	}
	if c.WeekCount() != 0 {
		t.Errorf("WeekCount = %d, want 0", c.WeekCount())
	}
}

// TestWeekTasks verifies lookup by integer week and absent-week behavior.
func TestWeekTasks(t *testing.T) {
	c := Catalog{Weeks: map[string][][]string{
		"2": {{"x"}, {"y", "z"}},
	}}

	if got := c.WeekTasks(2); len(got) != 2 {
		t.Errorf("WeekTasks(2) len = %d, want 2", len(got))
	}
	if got := c.WeekTasks(5); got != nil {
		t.Errorf("WeekTasks(5) = %v, want nil", got)
	}
	if got := (Catalog{}).WeekTasks(1); got != nil {
		t.Errorf("WeekTasks on zero catalog = %v, want nil", got)
	}
}
