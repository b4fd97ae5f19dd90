package testutil

import (
	"net/http"
	"testing"
)

func TestAssertStatusCode(t *testing.T) {
	t.Parallel()

	AssertStatusCode(t, http.StatusOK, http.StatusOK)
	AssertStatusCode(t, http.StatusNotFound, http.StatusNotFound)
}

func TestAssertNoError(t *testing.T) {
	t.Parallel()

	AssertNoError(t, nil)
}

func TestAssertZeroMean(t *testing.T) {
	t.Parallel()

	AssertZeroMean(t, []float64{-1, 0, 1}, ProfileTolerance)
	AssertZeroMean(t, []float64{0.25, -0.125, -0.125}, ProfileTolerance)
}

func TestAssertPeriodic(t *testing.T) {
	t.Parallel()

	AssertPeriodic(t, []float64{0.5, -1, 0.5})
	AssertPeriodic(t, []float64{3})
}

func TestRamp(t *testing.T) {
	t.Parallel()

	got := Ramp(4, -1, 0.5)
	want := []float64{-1, -0.5, 0, 0.5}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Ramp[%d] = %g, want %g", i, got[i], want[i])
		}
	}
}

func TestNewTestRequest(t *testing.T) {
	t.Parallel()

	req := NewTestRequest(http.MethodGet, "/api/frame")
	if req.Method != http.MethodGet {
		t.Errorf("method = %s, want GET", req.Method)
	}
	if req.URL.Path != "/api/frame" {
		t.Errorf("path = %s, want /api/frame", req.URL.Path)
	}
}

func TestNewTestRecorder(t *testing.T) {
	t.Parallel()

	rec := NewTestRecorder()
	if rec == nil {
		t.Fatal("NewTestRecorder returned nil")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("default code = %d, want 200", rec.Code)
	}
}
