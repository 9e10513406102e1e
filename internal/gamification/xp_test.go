package gamification

import "testing"

func TestCalculateLevel(t *testing.T) {
	tests := []struct {
		points int64
		want   int
	}{
		{0, 1},
		{1, 1},
		{499, 1},
		{500, 2},
		{999, 2},
		{1000, 3},
		{4999, 10},
		{5000, 11},
	}

	for _, tt := range tests {
		if got := CalculateLevel(tt.points); got != tt.want {
			t.Errorf("CalculateLevel(%d) = %d, want %d", tt.points, got, tt.want)
		}
	}
}

func TestCalculateLevelProgress(t *testing.T) {
	tests := []struct {
		points int64
		want   float64
	}{
		{0, 0},
		{125, 25},
		{250, 50},
		{500, 0},
		{750, 50},
		{1250, 50},
	}

	for _, tt := range tests {
		if got := CalculateLevelProgress(tt.points); got != tt.want {
			t.Errorf("CalculateLevelProgress(%d) = %v, want %v", tt.points, got, tt.want)
		}
	}

	// Progress stays within [0, 100) no matter the total
	for _, points := range []int64{0, 1, 499, 500, 501, 999, 12345, 999999} {
		got := CalculateLevelProgress(points)
		if got < 0 || got >= 100 {
			t.Errorf("CalculateLevelProgress(%d) = %v, want value in [0, 100)", points, got)
		}
	}
}

func TestCalculateXPToNextLevel(t *testing.T) {
	tests := []struct {
		points int64
		want   int64
	}{
		{0, 500},
		{499, 1},
		{500, 500},
		{750, 250},
		{999, 1},
		{1000, 500},
	}

	for _, tt := range tests {
		if got := CalculateXPToNextLevel(tt.points); got != tt.want {
			t.Errorf("CalculateXPToNextLevel(%d) = %d, want %d", tt.points, got, tt.want)
		}
	}
}

func TestQuizXP(t *testing.T) {
	tests := []struct {
		score int
		want  int
	}{
		{0, 50},
		{25, 75},
		{50, 100},
		{75, 125},
		{100, 150},
		{87, 137},
		{-10, 50},  // clamped
		{150, 150}, // clamped
	}

	for _, tt := range tests {
		if got := QuizXP(tt.score); got != tt.want {
			t.Errorf("QuizXP(%d) = %d, want %d", tt.score, got, tt.want)
		}
	}
}
