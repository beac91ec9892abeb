package catalog

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Catalog is the full program content: week number (as a string key) to an
// ordered list of days, each an ordered list of task descriptions.
//
// Week keys are strings because that is the on-disk JSON shape; absent weeks
// simply have no entry. Nominally a week has 7 days, but nothing enforces it.
type Catalog struct {
	Weeks map[string][][]string `json:"weeks"`
}

// Empty returns a catalog with no weeks.
func Empty() Catalog {
	return Catalog{Weeks: map[string][][]string{}}
}

// WeekTasks returns the ordered days for a week, or nil if the week is absent.
// INVARIANT: c is not mutated
func (c Catalog) WeekTasks(week int) [][]string {
	if c.Weeks == nil {
		return nil
	}
	return c.Weeks[strconv.Itoa(week)]
}

// WeekCount returns the number of weeks present in the catalog.
func (c Catalog) WeekCount() int {
	return len(c.Weeks)
}

// ParseError indicates the raw catalog text was not structurally valid JSON.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("catalog parse error: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse decodes a catalog from raw JSON.
// POST: Returns a catalog with a non-nil Weeks map, or a *ParseError
func Parse(data []byte) (Catalog, error) {
	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return Catalog{}, &ParseError{Err: err}
	}
	if c.Weeks == nil {
		c.Weeks = map[string][][]string{}
	}
	return c, nil
}

// MarshalPretty serializes the catalog as indented JSON, the form shown in
// the admin editor and written to disk.
func (c Catalog) MarshalPretty() ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}
