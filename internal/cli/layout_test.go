package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/openaims/sectorflow/pkg/errors"
)

func TestLoadAllocations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "allocs.json")
	content := `[
		{"code": "11120", "name": "Education facilities", "percentage": 60},
		{"code": "12220", "name": "Basic health care", "percentage": 40}
	]`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	allocs, err := loadAllocations(path)
	if err != nil {
		t.Fatalf("loadAllocations error: %v", err)
	}
	if len(allocs) != 2 || allocs[0].Code != "11120" {
		t.Errorf("allocs = %+v", allocs)
	}
}

func TestLoadAllocationsMissingFile(t *testing.T) {
	_, err := loadAllocations(filepath.Join(t.TempDir(), "absent.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error code = %q, want FILE_NOT_FOUND", errors.GetCode(err))
	}
}

func TestLoadAllocationsRejectsMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`[{"code": "11120"}]`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadAllocations(path); err == nil {
		t.Error("expected error for allocation missing fields")
	}
}
