package testkit

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertStatusCode checks the response code with testify.
func AssertStatusCode(t *testing.T, scenario *Scenario, got int) bool {
	t.Helper()
	return assert.Equal(t, scenario.ExpectedCode, got,
		"[%s] HTTP status code mismatch", scenario.Name)
}

// AssertJSONBody deep-compares actual response bytes against the expected file
// contents after normalising both through JSON unmarshal (so key order and
// whitespace never matter).
func AssertJSONBody(t *testing.T, scenario *Scenario, expected, actual []byte) {
	t.Helper()
	if len(expected) == 0 {
		return
	}

	var expVal, actVal any

	require.NoError(t,
		json.Unmarshal(expected, &expVal),
		"[%s] expected response file is not valid JSON", scenario.Name,
	)

	if !assert.NoError(t,
		json.Unmarshal(actual, &actVal),
		"[%s] actual response is not valid JSON\nbody: %s", scenario.Name, string(actual),
	) {
		return
	}

	if !assert.Equal(t, expVal, actVal, "[%s] response body mismatch", scenario.Name) {
		for _, d := range DiffJSON("", expVal, actVal) {
			t.Log(d)
		}
	}
}

// AssertExpectations checks every path in scenario.Expect against doc.
// String values are expanded with vars first. A path ending in ".#" is
// compared against the length of the array or object found before it.
func AssertExpectations(t *testing.T, scenario *Scenario, doc any, vars Vars) {
	t.Helper()

	for path, want := range scenario.Expect {
		if s, ok := want.(string); ok {
			expanded, err := vars.Expand(s)
			if !assert.NoError(t, err, "[%s] expect %s", scenario.Name, path) {
				continue
			}
			want = expanded
		}

		if base, ok := strings.CutSuffix(path, ".#"); ok {
			got, found := Lookup(doc, base)
			if !assert.True(t, found, "[%s] nothing at %q", scenario.Name, base) {
				continue
			}
			n := -1
			switch x := got.(type) {
			case []any:
				n = len(x)
			case map[string]any:
				n = len(x)
			}
			assert.EqualValues(t, want, n, "[%s] length of %s", scenario.Name, base)
			continue
		}

		got, found := Lookup(doc, path)
		if !assert.True(t, found, "[%s] nothing at %q", scenario.Name, path) {
			continue
		}
		assert.Equal(t, want, got, "[%s] value at %s", scenario.Name, path)
	}
}

// ─── JSON diff helper (human-readable fallback) ───────────────────────────────

// DiffJSON returns human-readable differences between two JSON-decoded
// values, one line per leaf.
func DiffJSON(path string, expected, actual any) []string {
	var diffs []string
	switch exp := expected.(type) {
	case map[string]any:
		act, ok := actual.(map[string]any)
		if !ok {
			return append(diffs, fmt.Sprintf("  %s: expected object, got %T", keyPath(path), actual))
		}
		for k, ev := range exp {
			p := keyPath(path) + "." + k
			av, exists := act[k]
			if !exists {
				diffs = append(diffs, fmt.Sprintf("  %s: missing in actual", p))
				continue
			}
			diffs = append(diffs, DiffJSON(p, ev, av)...)
		}
	case []any:
		act, ok := actual.([]any)
		if !ok {
			return append(diffs, fmt.Sprintf("  %s: expected array, got %T", keyPath(path), actual))
		}
		if len(exp) != len(act) {
			diffs = append(diffs, fmt.Sprintf("  %s: array length expected=%d actual=%d", keyPath(path), len(exp), len(act)))
		}
		for i := 0; i < len(exp) && i < len(act); i++ {
			diffs = append(diffs, DiffJSON(fmt.Sprintf("%s[%d]", keyPath(path), i), exp[i], act[i])...)
		}
	default:
		if fmt.Sprintf("%v", expected) != fmt.Sprintf("%v", actual) {
			diffs = append(diffs, fmt.Sprintf("  %s:\n    - %v\n    + %v", keyPath(path), expected, actual))
		}
	}
	return diffs
}

func keyPath(path string) string {
	if path == "" {
		return "root"
	}
	return strings.TrimPrefix(path, ".")
}
