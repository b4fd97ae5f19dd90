// Package testutil provides shared test utilities and fixtures.
//
// This package centralises the profile assertions used by the ripple
// simulator tests and the HTTP helpers used by the live server tests.
package testutil

import (
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
)

// ProfileTolerance is the absolute error accepted for profile means and sums
// accumulated over many events.
const ProfileTolerance = 1e-12

// AssertStatusCode checks that the response status code matches expected.
func AssertStatusCode(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("status code = %d, want %d", got, want)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertZeroMean fails the test if the profile mean is not within tol of zero.
func AssertZeroMean(t *testing.T, profile []float64, tol float64) {
	t.Helper()
	if len(profile) == 0 {
		t.Fatal("empty profile")
	}
	var sum float64
	for _, h := range profile {
		sum += h
	}
	if mean := sum / float64(len(profile)); math.Abs(mean) > tol {
		t.Errorf("profile mean = %g, want 0 (tol %g)", mean, tol)
	}
}

// AssertPeriodic fails the test unless the first and last cells are equal.
func AssertPeriodic(t *testing.T, profile []float64) {
	t.Helper()
	if len(profile) == 0 {
		t.Fatal("empty profile")
	}
	if first, last := profile[0], profile[len(profile)-1]; first != last {
		t.Errorf("profile[0] = %g, profile[last] = %g, want equal", first, last)
	}
}

// Ramp returns n heights rising linearly from start by step per cell.
func Ramp(n int, start, step float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

// NewTestRequest creates a test HTTP request.
func NewTestRequest(method, path string) *http.Request {
	return httptest.NewRequest(method, path, nil)
}

// NewTestRecorder creates a test response recorder.
func NewTestRecorder() *httptest.ResponseRecorder {
	return httptest.NewRecorder()
}
