package stage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vacco-oss/nativestage/internal/logger"
	"github.com/vacco-oss/nativestage/internal/platform"
)

func testLayout(t *testing.T) Layout {
	t.Helper()
	root := t.TempDir()
	return Layout{
		BuildDir:     filepath.Join(root, "build"),
		ResourcesDir: filepath.Join(root, "resources"),
		Library:      "minilm",
	}
}

func testStager() *Stager {
	s := New(
		WithLogger(logger.Discard()),
		WithVersion("0.5.0"),
		WithClock(func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }),
	)
	return s
}

// writeBuildOutputs creates a fake library for every entry of plan, with
// content derived from the key so copies can be told apart.
func writeBuildOutputs(t *testing.T, plan *Plan) {
	t.Helper()
	for _, e := range plan.Entries {
		writeFile(t, e.Source, "ELF:"+e.Key.String())
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0755); err != nil {
		t.Fatal(err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func crossPlan(t *testing.T, layout Layout) *Plan {
	t.Helper()
	plan, err := PlanCross(layout, platform.CrossTargets())
	if err != nil {
		t.Fatalf("PlanCross: %v", err)
	}
	return plan
}
