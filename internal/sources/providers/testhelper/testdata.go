// Package testhelper provides utilities for managing testdata files in source tests.
package testhelper

import (
	"encoding/json"
	"flag"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/agentstation/hackfinder/pkg/constants"
)

// UpdateTestdata is the global flag for updating testdata files.
var UpdateTestdata = flag.Bool("update", false, "update testdata files")

// LoadTestdata loads a testdata file from the caller's testdata directory.
func LoadTestdata(t *testing.T, filename string) []byte {
	t.Helper()

	testdataPath := filepath.Join("testdata", filename)

	data, err := os.ReadFile(testdataPath) //nolint:gosec // Test file paths are controlled
	if err != nil {
		t.Fatalf("Failed to load testdata file %s: %v", testdataPath, err)
	}

	return data
}

// SaveTestdata saves data to a testdata file if the -update flag is set.
func SaveTestdata(t *testing.T, filename string, data []byte) {
	t.Helper()

	if !*UpdateTestdata {
		return
	}

	testdataDir := "testdata"
	if err := os.MkdirAll(testdataDir, constants.DirPermissions); err != nil {
		t.Fatalf("Failed to create testdata directory: %v", err)
	}

	testdataPath := filepath.Join(testdataDir, filename)

	if err := os.WriteFile(testdataPath, data, constants.FilePermissions); err != nil {
		t.Fatalf("Failed to save testdata file %s: %v", testdataPath, err)
	}

	t.Logf("Updated testdata file: %s", testdataPath)
}

// CompareJSONWithTestdata compares actual JSON data with expected testdata file.
// If -update flag is set, it updates the testdata file with actual data.
func CompareJSONWithTestdata(t *testing.T, filename string, actual any) {
	t.Helper()

	actualData, err := json.MarshalIndent(actual, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal actual data for comparison: %v", err)
	}

	if *UpdateTestdata {
		SaveTestdata(t, filename, actualData)
		return
	}

	expected := LoadTestdata(t, filename)

	if string(actualData) != string(expected) {
		t.Errorf("JSON data does not match testdata file %s\nActual:\n%s\nExpected:\n%s",
			filename, string(actualData), string(expected))
	}
}

// Serve starts a server answering every request with a testdata file.
// The handler records each request it receives. The server is closed when
// the test ends.
func Serve(t *testing.T, filename, contentType string) (*httptest.Server, *[]*http.Request) {
	t.Helper()

	body := LoadTestdata(t, filename)
	var requests []*http.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r)
		w.Header().Set("Content-Type", contentType)
		_, _ = w.Write(body)
	}))
	t.Cleanup(server.Close)
	return server, &requests
}

// ServeStatus starts a server answering every request with the given status.
func ServeStatus(t *testing.T, status int) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, http.StatusText(status), status)
	}))
	t.Cleanup(server.Close)
	return server
}
