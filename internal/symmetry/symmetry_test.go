package symmetry

import (
	"image"
	"reflect"
	"testing"
)

func TestMirror(t *testing.T) {
	tests := []struct {
		name string
		x, y int
		axis Axis
		w, h int
		want []image.Point
	}{
		{"vertical 512", 10, 10, Vertical, 512, 512, []image.Point{{10, 10}, {502, 10}}},
		{"horizontal 512", 10, 10, Horizontal, 512, 512, []image.Point{{10, 10}, {10, 502}}},
		{"both 512", 10, 20, Both, 512, 512, []image.Point{{10, 20}, {502, 20}, {10, 492}, {502, 492}}},
		{"edge mirror dropped", 0, 5, Vertical, 512, 512, []image.Point{{0, 5}}},
		{"center collapses", 256, 256, Both, 512, 512, []image.Point{{256, 256}}},
		{"odd width", 1, 0, Vertical, 5, 1, []image.Point{{1, 0}, {3, 0}}},
		{"out of bounds original", 8, 0, Vertical, 8, 8, nil},
		{"out of bounds both", -1, 3, Both, 8, 8, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Mirror(tt.x, tt.y, tt.axis, tt.w, tt.h)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Mirror(%d,%d,%v) = %v, want %v", tt.x, tt.y, tt.axis, got, tt.want)
			}
		})
	}
}

func TestPointsDisabled(t *testing.T) {
	if got := Points(10, 10, false, Both, 512, 512); !reflect.DeepEqual(got, []image.Point{{10, 10}}) {
		t.Errorf("Points disabled = %v", got)
	}
	if got := Points(600, 10, false, Both, 512, 512); len(got) != 0 {
		t.Errorf("out-of-bounds disabled = %v, want none", got)
	}
}

func TestAxisText(t *testing.T) {
	for _, a := range []Axis{Vertical, Horizontal, Both} {
		b, err := a.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var back Axis
		if err := back.UnmarshalText(b); err != nil || back != a {
			t.Errorf("round trip %v -> %q -> %v (%v)", a, b, back, err)
		}
	}
	if _, err := ParseAxis("diagonal"); err == nil {
		t.Error("ParseAxis accepted an unknown axis")
	}
}
