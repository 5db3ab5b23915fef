package grading

import "testing"

func TestSummarize(t *testing.T) {
	s := Summarize([]int{78, 92, 60, 85})
	if s.Count != 4 || s.Min != 60 || s.Max != 92 || s.Sum != 315 {
		t.Errorf("unexpected stats: %+v", s)
	}
	if s.Mean != 78.75 {
		t.Errorf("Mean = %v, want 78.75", s.Mean)
	}
	// Upper middle of [60 78 85 92].
	if s.Median != 85 {
		t.Errorf("Median = %d, want 85", s.Median)
	}
}

func TestSummarize_Odd(t *testing.T) {
	s := Summarize([]int{50, 10, 30})
	if s.Median != 30 {
		t.Errorf("Median = %d, want 30", s.Median)
	}
}

func TestSummarize_Empty(t *testing.T) {
	if s := Summarize(nil); s != (Stats{}) {
		t.Errorf("expected zero stats, got %+v", s)
	}
}
