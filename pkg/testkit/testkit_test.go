package testkit_test

import (
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/catalog/pkg/testkit"
)

// echo answers /health, creates one item on POST /items and serves it back
// on GET /items/<id> when the X-Item header agrees with the path.
var echo http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.URL.Path == "/health":
		w.Write([]byte(`{"success":true,"data":{"status":"ok"}}`)) //nolint:errcheck
	case r.Method == http.MethodPost && r.URL.Path == "/items":
		var in struct {
			Title string `json:"title"`
		}
		json.NewDecoder(r.Body).Decode(&in) //nolint:errcheck
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck
			"data": map[string]any{"id": "42", "title": in.Title},
		})
	case strings.HasPrefix(r.URL.Path, "/items/") && r.Header.Get("X-Item") == strings.TrimPrefix(r.URL.Path, "/items/"):
		json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck
			"data": map[string]any{"id": strings.TrimPrefix(r.URL.Path, "/items/"), "tags": []string{"a", "b"}},
		})
	default:
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"success":false}`)) //nolint:errcheck
	}
})

func TestRun_ComparesFullBody(t *testing.T) {
	testkit.Run(t, echo, "testdata/health_check.json")
}

func TestRunFlow_ThreadsCapturedValues(t *testing.T) {
	vars := testkit.RunFlow(t, echo, "testdata/flows/echo_flow.json", testkit.Vars{"title": "Classic tee"})
	assert.Equal(t, "42", vars["item"])
	assert.Equal(t, "Classic tee", vars["title"])
}

func TestVarsExpand(t *testing.T) {
	v := testkit.Vars{"id": "abc", "token": "t0k"}

	out, err := v.Expand("/products/{{id}}?auth={{ token }}")
	require.NoError(t, err)
	assert.Equal(t, "/products/abc?auth=t0k", out)

	_, err = v.Expand("/products/{{missing}}")
	assert.ErrorContains(t, err, "missing")
}

func TestLookup(t *testing.T) {
	var doc any
	require.NoError(t, json.Unmarshal([]byte(`{"data":{"items":[{"title":"x"},{"title":"y"}],"n":3}}`), &doc))

	got, ok := testkit.Lookup(doc, "data.items.1.title")
	assert.True(t, ok)
	assert.Equal(t, "y", got)

	got, ok = testkit.Lookup(doc, "data.n")
	assert.True(t, ok)
	assert.Equal(t, float64(3), got)

	_, ok = testkit.Lookup(doc, "data.items.5")
	assert.False(t, ok)
	_, ok = testkit.Lookup(doc, "data.n.deeper")
	assert.False(t, ok)
}

func TestLoadFlow_RejectsIncompleteSteps(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/bad.json"
	require.NoError(t, os.WriteFile(path, []byte(`[{"name":"no url","expectedCode":200}]`), 0o644))

	_, err := testkit.LoadFlow(path)
	assert.ErrorContains(t, err, "requestUrl is required")
}

func TestDiffJSON(t *testing.T) {
	var exp, act any
	require.NoError(t, json.Unmarshal([]byte(`{"a":1,"b":[1,2]}`), &exp))
	require.NoError(t, json.Unmarshal([]byte(`{"a":2,"b":[1]}`), &act))

	diffs := testkit.DiffJSON("", exp, act)
	assert.Len(t, diffs, 2)
}
