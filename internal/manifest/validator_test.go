package manifest

import (
	"strings"
	"testing"
)

func TestValidateFile_ValidManifests(t *testing.T) {
	validFiles := []string{
		"valid-full.yaml",
		"valid-minimal.yaml",
		"valid-host.yaml",
	}

	for _, file := range validFiles {
		t.Run(file, func(t *testing.T) {
			result, err := ValidateFile(testPath(file))
			if err != nil {
				t.Fatalf("ValidateFile(%s) error: %v", file, err)
			}
			if !result.Valid {
				t.Errorf("expected valid, got invalid with %d issues:", len(result.Issues))
				for _, issue := range result.Issues {
					t.Errorf("  path=%s keyword=%s message=%s", issue.Path, issue.Keyword, issue.Message)
				}
			}
		})
	}
}

func TestValidateFile_InvalidManifests(t *testing.T) {
	invalidFiles := []struct {
		file    string
		keyword string
	}{
		{"invalid-missing-version.yaml", "required"},
		{"invalid-bad-profile.yaml", "enum"},
		{"invalid-unknown-field.yaml", "additionalProperties"},
		{"invalid-bad-semver.yaml", "semantic"},
		{"invalid-unknown-target.yaml", "semantic"},
	}

	for _, tt := range invalidFiles {
		t.Run(tt.file, func(t *testing.T) {
			result, err := ValidateFile(testPath(tt.file))
			if err != nil {
				t.Fatalf("ValidateFile(%s) unexpected error: %v", tt.file, err)
			}
			if result.Valid {
				t.Fatalf("expected invalid for %s, but got valid", tt.file)
			}
			found := false
			for _, issue := range result.Issues {
				if issue.Keyword == tt.keyword {
					found = true
				}
			}
			if !found {
				t.Errorf("no issue with keyword %q in %+v", tt.keyword, result.Issues)
			}
		})
	}
}

func TestValidate_UnknownTargetPath(t *testing.T) {
	result, err := ValidateFile(testPath("invalid-unknown-target.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Issues) != 1 {
		t.Fatalf("issues = %+v, want exactly one", result.Issues)
	}
	if result.Issues[0].Path != "/targets/1" {
		t.Errorf("Path = %q, want /targets/1", result.Issues[0].Path)
	}
}

func TestValidateFile_InvalidYAML(t *testing.T) {
	if _, err := ValidateFile(testPath("invalid-not-yaml.yaml")); err == nil {
		t.Fatal("expected error for invalid YAML, got nil")
	}
}

func TestInvalidError_Message(t *testing.T) {
	err := &InvalidError{
		Path: "nativestage.yaml",
		Issues: []ValidationIssue{
			{Path: "/version", Message: "bad version"},
			{Message: "missing name"},
		},
	}
	msg := err.Error()
	if !strings.Contains(msg, "/version: bad version") || !strings.Contains(msg, "missing name") {
		t.Errorf("Error() = %q", msg)
	}
}
