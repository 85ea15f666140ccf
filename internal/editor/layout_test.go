package editor

import (
	"image"
	"testing"
)

func TestLayoutBasic(t *testing.T) {
	l := newLayoutBuilder(120, 40).
		TopFixed("toolbar", 1).
		BottomFixed("footer", 1).
		LeftFixed("palette", 26).
		RightFixed("panel", 32).
		Remaining("canvas").
		Build()

	tests := []struct {
		name string
		want image.Rectangle
	}{
		{"toolbar", image.Rect(0, 0, 120, 1)},
		{"footer", image.Rect(0, 39, 120, 40)},
		{"palette", image.Rect(0, 1, 26, 39)},
		{"panel", image.Rect(88, 1, 120, 39)},
		{"canvas", image.Rect(26, 1, 88, 39)},
	}
	for _, tc := range tests {
		if got := l.Get(tc.name).Rect; got != tc.want {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestLayoutRemainingOnly(t *testing.T) {
	l := newLayoutBuilder(80, 24).Remaining("full").Build()
	if r := l.Get("full").Rect; r != image.Rect(0, 0, 80, 24) {
		t.Errorf("full: expected (0,0)-(80,24), got %v", r)
	}
}

func TestLayoutDegenerate(t *testing.T) {
	l := newLayoutBuilder(40, 3).
		TopFixed("toolbar", 1).
		BottomFixed("footer", 1).
		LeftFixed("palette", 26).
		RightFixed("panel", 32).
		Remaining("canvas").
		Build()

	if r := l.Get("canvas").Rect; r != (image.Rectangle{}) {
		t.Errorf("canvas: expected empty rect, got %v", r)
	}
	if r := l.Get("missing").Rect; r != (image.Rectangle{}) {
		t.Errorf("missing region: expected empty rect, got %v", r)
	}
}
