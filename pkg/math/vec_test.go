package math

import (
	"testing"
)

func TestVec2Cross(t *testing.T) {
	tests := []struct {
		name string
		a, b Vec2
		want float32
	}{
		{"counter-clockwise", Vec2{1, 0}, Vec2{0, 1}, 1},
		{"clockwise", Vec2{0, 1}, Vec2{1, 0}, -1},
		{"collinear", Vec2{2, 2}, Vec2{1, 1}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cross(tt.b); got != tt.want {
				t.Errorf("Vec2.Cross() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVec2Length(t *testing.T) {
	v := Vec2{3, 4}
	got := v.Length()
	want := float32(5)
	if got != want {
		t.Errorf("Vec2.Length() = %v, want %v", got, want)
	}
}

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Normalize(t *testing.T) {
	n := Vec3{3, 0, 4}.Normalize()
	l := n.Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec3.Normalize().Length() = %v, want ~1", l)
	}

	if z := (Vec3{}).Normalize(); z != (Vec3{}) {
		t.Errorf("zero vector normalized to %v, want zero", z)
	}
}

func TestVec3Project(t *testing.T) {
	v := Vec3{1, 2, 3}
	tests := []struct {
		a, b int
		want Vec2
	}{
		{1, 2, Vec2{2, 3}},
		{0, 2, Vec2{1, 3}},
		{0, 1, Vec2{1, 2}},
	}

	for _, tt := range tests {
		if got := v.Project(tt.a, tt.b); got != tt.want {
			t.Errorf("Project(%d, %d) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestVec3Distance(t *testing.T) {
	got := Vec3{1, 1, 1}.Distance(Vec3{1, 4, 5})
	if got != 5 {
		t.Errorf("Distance() = %v, want 5", got)
	}
}
