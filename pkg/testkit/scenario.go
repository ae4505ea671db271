// Package testkit drives REST API tests from JSON scenario files.
//
// A flow file holds an ordered array of scenarios run against one handler.
// Values captured from one response are available to later scenarios as
// {{name}} placeholders in the URL, headers and body:
//
//	[
//	  {
//	    "name": "login",
//	    "requestMethod": "POST",
//	    "requestUrl": "/auth/login",
//	    "requestBody": {"email": "{{email}}", "password": "{{password}}"},
//	    "expectedCode": 200,
//	    "capture": {"token": "data.access_token"}
//	  },
//	  {
//	    "name": "profile",
//	    "requestUrl": "/auth/profile",
//	    "headers": {"Authorization": "Bearer {{token}}"},
//	    "expectedCode": 200,
//	    "expect": {"data.email": "{{email}}"}
//	  }
//	]
//
// Example _test.go:
//
//	func TestCatalogFlow(t *testing.T) {
//	    handler := kernel.NewHTTPKernel(svc, kernel.Options{})
//	    testkit.RunFlow(t, handler, "testdata/catalog_flow.json", testkit.Vars{})
//	}
package testkit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Scenario describes a single REST API call and what it must answer.
type Scenario struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	RequestMethod   string            `json:"requestMethod"`   // defaults to GET
	RequestURL      string            `json:"requestUrl"`      // e.g. /products?page=2
	RequestBody     json.RawMessage   `json:"requestBody"`     // inline JSON body
	RequestFileName string            `json:"requestFileName"` // body file, relative to the scenario file
	Headers         map[string]string `json:"headers"`

	ExpectedCode     int    `json:"expectedCode"`
	ResponseFileName string `json:"responseFileName"` // full expected body, compared as JSON

	// Expect maps a dotted path (data.items.0.title) to the value found there.
	Expect map[string]any `json:"expect"`
	// Capture stores the value at a dotted path under a variable name.
	Capture map[string]string `json:"capture"`

	dir string
}

// LoadScenario reads and validates a single scenario file.
func LoadScenario(path string) (*Scenario, error) {
	abs, data, err := read(path)
	if err != nil {
		return nil, err
	}

	var s Scenario
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("testkit: parse %q: %w", abs, err)
	}
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("testkit: invalid scenario %q: %w", abs, err)
	}
	s.dir = filepath.Dir(abs)
	return &s, nil
}

// LoadFlow reads an ordered array of scenarios from one file.
func LoadFlow(path string) ([]*Scenario, error) {
	abs, data, err := read(path)
	if err != nil {
		return nil, err
	}

	var flow []*Scenario
	if err := json.Unmarshal(data, &flow); err != nil {
		return nil, fmt.Errorf("testkit: parse flow %q: %w", abs, err)
	}
	if len(flow) == 0 {
		return nil, fmt.Errorf("testkit: flow %q is empty", abs)
	}
	for i, s := range flow {
		if err := s.validate(); err != nil {
			return nil, fmt.Errorf("testkit: flow %q step %d: %w", abs, i, err)
		}
		s.dir = filepath.Dir(abs)
	}
	return flow, nil
}

func read(path string) (string, []byte, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", nil, fmt.Errorf("testkit: resolve path %q: %w", path, err)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return "", nil, fmt.Errorf("testkit: read %q: %w", abs, err)
	}
	return abs, data, nil
}

func (s *Scenario) validate() error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.RequestURL == "" {
		return fmt.Errorf("requestUrl is required")
	}
	if s.ExpectedCode == 0 {
		return fmt.Errorf("expectedCode is required")
	}
	if s.RequestMethod == "" {
		s.RequestMethod = "GET"
	}
	s.RequestMethod = strings.ToUpper(s.RequestMethod)
	if len(s.RequestBody) > 0 && s.RequestFileName != "" {
		return fmt.Errorf("requestBody and requestFileName are mutually exclusive")
	}
	return nil
}

// Body returns the raw request body, or nil when the scenario has none.
func (s *Scenario) Body() ([]byte, error) {
	if len(s.RequestBody) > 0 {
		return s.RequestBody, nil
	}
	if s.RequestFileName == "" {
		return nil, nil
	}
	return os.ReadFile(s.resolve(s.RequestFileName))
}

// ResponseBodyPath returns the absolute path of the expected response file,
// or "" when none is set.
func (s *Scenario) ResponseBodyPath() string {
	if s.ResponseFileName == "" {
		return ""
	}
	return s.resolve(s.ResponseFileName)
}

func (s *Scenario) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.dir, name)
}
