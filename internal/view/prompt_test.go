package view

import (
	"testing"
	"time"
)

func TestComposeDayPrompt_EmptyInput(t *testing.T) {
	t.Parallel()

	// 2026-09-15 is a Tuesday.
	date := time.Date(2026, time.September, 15, 0, 0, 0, 0, time.UTC)
	got := ComposeDayPrompt("", date)
	want := "On Tuesday, September 15, "
	if got != want {
		t.Fatalf("ComposeDayPrompt = %q, want %q", got, want)
	}
}

func TestComposeDayPrompt_ReplacesExistingPrefix(t *testing.T) {
	t.Parallel()

	first := time.Date(2026, time.September, 15, 0, 0, 0, 0, time.UTC)
	second := time.Date(2026, time.September, 20, 0, 0, 0, 0, time.UTC)

	input := ComposeDayPrompt("", first)
	got := ComposeDayPrompt(input, second)
	want := "On Sunday, September 20, "
	if got != want {
		t.Fatalf("second click should replace the prefix: got %q, want %q", got, want)
	}
}

func TestComposeDayPrompt_AppendsToFreeText(t *testing.T) {
	t.Parallel()

	date := time.Date(2026, time.September, 20, 0, 0, 0, 0, time.UTC)
	got := ComposeDayPrompt("Lunch with Sarah", date)
	want := "Lunch with Sarah on Sunday, September 20"
	if got != want {
		t.Fatalf("ComposeDayPrompt = %q, want %q", got, want)
	}
}
