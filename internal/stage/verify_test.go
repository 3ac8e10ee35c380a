package stage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vacco-oss/nativestage/internal/platform"
)

func TestVerify_AfterRun(t *testing.T) {
	layout := testLayout(t)
	plan := crossPlan(t, layout)
	writeBuildOutputs(t, plan)

	staged, err := testStager().Run(context.Background(), plan)
	if err != nil {
		t.Fatal(err)
	}
	rec, err := Verify(layout)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if rec.RunID != staged.RunID {
		t.Errorf("RunID = %s, want %s", rec.RunID, staged.RunID)
	}
}

func TestVerify_NotStaged(t *testing.T) {
	if _, err := Verify(testLayout(t)); !errors.Is(err, ErrNotStaged) {
		t.Fatalf("error = %v, want ErrNotStaged", err)
	}
}

func TestVerify_DetectsTampering(t *testing.T) {
	layout := testLayout(t)
	plan := crossPlan(t, layout)
	writeBuildOutputs(t, plan)
	if _, err := testStager().Run(context.Background(), plan); err != nil {
		t.Fatal(err)
	}

	writeFile(t, plan.Entries[3].Dest, "patched")
	_, err := Verify(layout)
	var mm *MismatchError
	if !errors.As(err, &mm) {
		t.Fatalf("error = %v, want *MismatchError", err)
	}
	if mm.Path != plan.Entries[3].Dest {
		t.Errorf("Path = %s", mm.Path)
	}
}

func TestVerify_DetectsMissingFile(t *testing.T) {
	layout := testLayout(t)
	plan := crossPlan(t, layout)
	writeBuildOutputs(t, plan)
	if _, err := testStager().Run(context.Background(), plan); err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(plan.Entries[1].Dest); err != nil {
		t.Fatal(err)
	}
	if _, err := Verify(layout); !errors.Is(err, ErrRecordMismatch) {
		t.Fatalf("error = %v, want ErrRecordMismatch", err)
	}
}

func TestClean(t *testing.T) {
	layout := testLayout(t)
	plan := crossPlan(t, layout)
	writeBuildOutputs(t, plan)
	if _, err := testStager().Run(context.Background(), plan); err != nil {
		t.Fatal(err)
	}

	// A file that staging does not own must survive.
	other := filepath.Join(layout.NativeRoot(), "README")
	writeFile(t, other, "keep")

	if err := Clean(plan); err != nil {
		t.Fatalf("Clean: %v", err)
	}
	for _, e := range plan.Entries {
		if _, err := os.Stat(e.Dest); !os.IsNotExist(err) {
			t.Errorf("%s still exists", e.Dest)
		}
	}
	if _, err := os.Stat(other); err != nil {
		t.Errorf("unrelated file removed: %v", err)
	}
	if _, err := Verify(layout); !errors.Is(err, ErrNotStaged) {
		t.Errorf("Verify after Clean = %v", err)
	}
}

func TestClean_NothingStaged(t *testing.T) {
	layout := testLayout(t)
	if err := Clean(crossPlan(t, layout)); err != nil {
		t.Fatalf("Clean on empty tree: %v", err)
	}
}

func TestVerifyPlan(t *testing.T) {
	layout := testLayout(t)
	plan := crossPlan(t, layout)
	writeBuildOutputs(t, plan)
	if _, err := testStager().Run(context.Background(), plan); err != nil {
		t.Fatal(err)
	}

	if _, err := VerifyPlan(plan); err != nil {
		t.Fatalf("VerifyPlan with the staged plan: %v", err)
	}

	fewer, err := PlanCross(layout, platform.CrossTargets()[:2])
	if err != nil {
		t.Fatal(err)
	}
	if _, err := VerifyPlan(fewer); !errors.Is(err, ErrRecordMismatch) {
		t.Errorf("VerifyPlan with fewer targets = %v, want ErrRecordMismatch", err)
	}

	renamed := layout
	renamed.Library = "tok"
	other, err := PlanCross(renamed, platform.CrossTargets())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := VerifyPlan(other); !errors.Is(err, ErrRecordMismatch) {
		t.Errorf("VerifyPlan with another library = %v, want ErrRecordMismatch", err)
	}

	host, err := PlanHost(layout, "linux", "amd64")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := VerifyPlan(host); !errors.Is(err, ErrRecordMismatch) {
		t.Errorf("VerifyPlan with host profile = %v, want ErrRecordMismatch", err)
	}
}
