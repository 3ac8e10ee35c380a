package branding

import "testing"

func TestEmbeddedValues(t *testing.T) {
	if got := CLIName(); got != "nativestage" {
		t.Errorf("CLIName() = %q, want %q", got, "nativestage")
	}
	if got := ProjectFile(); got != "nativestage.yaml" {
		t.Errorf("ProjectFile() = %q, want %q", got, "nativestage.yaml")
	}
}

func TestEnvVar(t *testing.T) {
	if got := EnvVar("profile"); got != "NATIVESTAGE_PROFILE" {
		t.Errorf("EnvVar(profile) = %q", got)
	}
}
