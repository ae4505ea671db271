package testkit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

// Run executes a single scenario file against handler.
func Run(t *testing.T, handler http.Handler, scenarioPath string) {
	t.Helper()

	s, err := LoadScenario(scenarioPath)
	if err != nil {
		t.Fatalf("testkit: load scenario %q: %v", scenarioPath, err)
	}
	t.Run(s.Name, func(t *testing.T) {
		runScenario(t, handler, s, Vars{})
	})
}

// RunDir runs every *.json scenario file in dir as an independent subtest.
func RunDir(t *testing.T, handler http.Handler, dir string) {
	t.Helper()

	entries, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil || len(entries) == 0 {
		t.Fatalf("testkit: no scenario files found in %q", dir)
	}
	for _, path := range entries {
		s, err := LoadScenario(path)
		if err != nil {
			t.Errorf("testkit: load %q: %v", path, err)
			continue
		}
		t.Run(s.Name, func(t *testing.T) {
			runScenario(t, handler, s, Vars{})
		})
	}
}

// RunFlow runs the scenarios of a flow file in order, threading vars through
// them. The flow stops at the first failing step since later steps usually
// depend on what it would have captured. The final vars are returned.
func RunFlow(t *testing.T, handler http.Handler, flowPath string, vars Vars) Vars {
	t.Helper()

	flow, err := LoadFlow(flowPath)
	if err != nil {
		t.Fatalf("%v", err)
	}
	if vars == nil {
		vars = Vars{}
	}
	for i, s := range flow {
		ok := t.Run(fmt.Sprintf("%02d_%s", i+1, s.Name), func(t *testing.T) {
			runScenario(t, handler, s, vars)
		})
		if !ok {
			t.Fatalf("testkit: flow %q stopped at step %q", filepath.Base(flowPath), s.Name)
		}
	}
	return vars
}

func runScenario(t *testing.T, handler http.Handler, s *Scenario, vars Vars) {
	t.Helper()

	url, err := vars.Expand(s.RequestURL)
	if err != nil {
		t.Fatalf("[%s] url: %v", s.Name, err)
	}

	var reqBody io.Reader
	raw, err := s.Body()
	if err != nil {
		t.Fatalf("[%s] read request body: %v", s.Name, err)
	}
	if raw != nil {
		expanded, err := vars.Expand(string(raw))
		if err != nil {
			t.Fatalf("[%s] body: %v", s.Name, err)
		}
		reqBody = bytes.NewReader([]byte(expanded))
	}

	req := httptest.NewRequest(s.RequestMethod, url, reqBody)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, v := range s.Headers {
		val, err := vars.Expand(v)
		if err != nil {
			t.Fatalf("[%s] header %s: %v", s.Name, k, err)
		}
		req.Header.Set(k, val)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if !AssertStatusCode(t, s, rec.Code) {
		t.Logf("[%s] body: %s", s.Name, rec.Body.String())
	}

	if p := s.ResponseBodyPath(); p != "" {
		expected, err := os.ReadFile(p)
		if err != nil {
			t.Errorf("[%s] read response file %q: %v", s.Name, p, err)
		} else {
			AssertJSONBody(t, s, expected, rec.Body.Bytes())
		}
	}

	if len(s.Expect) == 0 && len(s.Capture) == 0 {
		return
	}

	var doc any
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("[%s] response is not JSON: %v\nbody: %s", s.Name, err, rec.Body.String())
	}
	AssertExpectations(t, s, doc, vars)

	for name, path := range s.Capture {
		v, ok := Lookup(doc, path)
		if !ok {
			t.Errorf("[%s] capture %s: nothing at %q", s.Name, name, path)
			continue
		}
		vars[name] = stringify(v)
	}
}

// DumpScenario prints a human-readable summary of the scenario.
func DumpScenario(s *Scenario) {
	fmt.Printf("Scenario: %s\n", s.Name)
	fmt.Printf("  %s %s → %d\n", s.RequestMethod, s.RequestURL, s.ExpectedCode)
	if s.RequestFileName != "" {
		fmt.Printf("  requestFile:  %s\n", s.RequestFileName)
	}
	if s.ResponseFileName != "" {
		fmt.Printf("  responseFile: %s\n", s.ResponseFileName)
	}
	for path, want := range s.Expect {
		fmt.Printf("  expect %s = %v\n", path, want)
	}
	for name, path := range s.Capture {
		fmt.Printf("  capture %s ← %s\n", name, path)
	}
}
