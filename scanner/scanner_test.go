package scanner

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func touch(t *testing.T, path string, mtime time.Time) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatalf("chtimes %s: %v", path, err)
	}
}

func TestListMEDMFiles(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	touch(t, filepath.Join(dir, "b.adl"), now)
	touch(t, filepath.Join(dir, "a.adl"), now)
	touch(t, filepath.Join(dir, "notes.txt"), now)
	touch(t, filepath.Join(dir, "sub", "c.adl"), now)

	flat, err := ListMEDMFiles(dir, false)
	if err != nil {
		t.Fatalf("ListMEDMFiles: %v", err)
	}
	want := []string{filepath.Join(dir, "a.adl"), filepath.Join(dir, "b.adl")}
	if diff := cmp.Diff(want, flat); diff != "" {
		t.Errorf("flat listing (-want +got):\n%s", diff)
	}

	recursive, err := ListMEDMFiles(dir, true)
	if err != nil {
		t.Fatalf("ListMEDMFiles recursive: %v", err)
	}
	want = append(want, filepath.Join(dir, "sub", "c.adl"))
	if diff := cmp.Diff(want, recursive); diff != "" {
		t.Errorf("recursive listing (-want +got):\n%s", diff)
	}

	if _, err := ListMEDMFiles(filepath.Join(dir, "missing"), false); err == nil {
		t.Error("missing directory should be an error")
	}
}

func TestListGestaltFiles(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	touch(t, filepath.Join(dir, "a.yml"), now)
	touch(t, filepath.Join(dir, "b.yaml"), now)
	touch(t, filepath.Join(dir, "c.adl"), now)

	got, err := ListGestaltFiles(dir, false)
	if err != nil {
		t.Fatalf("ListGestaltFiles: %v", err)
	}
	want := []string{filepath.Join(dir, "a.yml"), filepath.Join(dir, "b.yaml")}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("listing (-want +got):\n%s", diff)
	}
}

func TestGestaltPathFor(t *testing.T) {
	got := GestaltPathFor("/screens/sub/motor.adl", "/screens", "/out")
	if want := filepath.Join("/out", "sub", "motor.yml"); got != want {
		t.Errorf("nested mapping = %q, want %q", got, want)
	}

	// Outside the root the tree structure cannot be mirrored.
	got = GestaltPathFor("/elsewhere/motor.adl", "/screens", "/out")
	if want := filepath.Join("/out", "motor.yml"); got != want {
		t.Errorf("outside-root mapping = %q, want %q", got, want)
	}
}

func TestStatus(t *testing.T) {
	dir := t.TempDir()
	base := time.Now().Add(-time.Hour)

	medm := filepath.Join(dir, "motor.adl")
	gestalt := filepath.Join(dir, "motor.yml")
	touch(t, medm, base)

	st := Status(medm, dir)
	if st.Exists || st.Status != StatusNeedsConversion {
		t.Errorf("unconverted: %+v", st)
	}

	touch(t, gestalt, base.Add(time.Minute))
	st = Status(medm, dir)
	if !st.Exists || st.Status != StatusConverted || !st.UpToDate {
		t.Errorf("fresh output: %+v", st)
	}

	touch(t, gestalt, base.Add(-time.Minute))
	st = Status(medm, dir)
	if st.Status != StatusConverted || st.UpToDate {
		t.Errorf("stale output: %+v", st)
	}

	// Equal timestamps count as current.
	touch(t, gestalt, base)
	if st = Status(medm, dir); !st.UpToDate {
		t.Errorf("equal mtimes should be up to date: %+v", st)
	}
}

func TestScan(t *testing.T) {
	medmRoot := t.TempDir()
	gestaltRoot := t.TempDir()
	base := time.Now().Add(-time.Hour)

	touch(t, filepath.Join(medmRoot, "fresh.adl"), base)
	touch(t, filepath.Join(gestaltRoot, "fresh.yml"), base.Add(time.Minute))

	touch(t, filepath.Join(medmRoot, "stale.adl"), base)
	touch(t, filepath.Join(gestaltRoot, "stale.yml"), base.Add(-time.Minute))

	touch(t, filepath.Join(medmRoot, "sub", "pending.adl"), base)

	s, err := Scan(medmRoot, gestaltRoot, true)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if s.TotalMEDM != 3 {
		t.Errorf("TotalMEDM = %d, want 3", s.TotalMEDM)
	}
	if len(s.Converted) != 2 || len(s.UpToDate) != 1 || len(s.Outdated) != 1 {
		t.Errorf("converted buckets: %+v", s)
	}
	if len(s.NeedsConversion) != 1 || s.NeedsConversion[0] != filepath.Join(medmRoot, "sub", "pending.adl") {
		t.Errorf("pending bucket: %+v", s.NeedsConversion)
	}
}
