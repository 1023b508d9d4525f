package core

import "testing"

func TestRectEdges(t *testing.T) {
	tests := []struct {
		name          string
		r             Rect
		right, bottom int
	}{
		{"origin", NewRect(0, 0, 20, 10), 20, 10},
		{"offset", NewRect(5, 10, 20, 15), 25, 25},
		{"empty", NewRect(3, 4, 0, 0), 3, 4},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.r.Right(); got != tc.right {
				t.Errorf("Right() = %d, expected %d", got, tc.right)
			}
			if got := tc.r.Bottom(); got != tc.bottom {
				t.Errorf("Bottom() = %d, expected %d", got, tc.bottom)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name                    string
		val, min, max, expected int
	}{
		{"within", 5, 0, 10, 5},
		{"below", -5, 0, 10, 0},
		{"above", 15, 0, 10, 10},
		{"at min", 0, 0, 10, 0},
		{"at max", 10, 0, 10, 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Clamp(tc.val, tc.min, tc.max); got != tc.expected {
				t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, got, tc.expected)
			}
		})
	}
}

func TestMaxAbs(t *testing.T) {
	if Max(5, 10) != 10 || Max(10, 5) != 10 {
		t.Error("Max should pick the larger value")
	}
	if Max(-3, -7) != -3 {
		t.Errorf("Max(-3, -7) = %d, expected -3", Max(-3, -7))
	}
	for _, v := range []int{-5, 5} {
		if Abs(v) != 5 {
			t.Errorf("Abs(%d) = %d, expected 5", v, Abs(v))
		}
	}
	if Abs(0) != 0 {
		t.Error("Abs(0) should be 0")
	}
}
