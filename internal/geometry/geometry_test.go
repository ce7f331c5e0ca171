package geometry

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCutout_PaddedBounds(t *testing.T) {
	target := Rect{Left: 100, Top: 100, Right: 200, Bottom: 150}
	vp := Size{Width: 800, Height: 600}

	path := Cutout(&target, vp, DefaultCutoutOptions())

	if !path.HasCutout {
		t.Fatal("expected a cutout for a resolved target")
	}
	wantInner := Ring{
		Bounds:  Rect{Left: 92, Top: 92, Right: 208, Bottom: 158},
		Radius:  8,
		Winding: CounterClockwise,
	}
	if diff := cmp.Diff(wantInner, path.Inner); diff != "" {
		t.Errorf("inner ring mismatch (-want +got):\n%s", diff)
	}
	wantOuter := Ring{
		Bounds:  Rect{Right: 800, Bottom: 600},
		Winding: Clockwise,
	}
	if diff := cmp.Diff(wantOuter, path.Outer); diff != "" {
		t.Errorf("outer ring mismatch (-want +got):\n%s", diff)
	}
}

func TestCutout_RadiusClampedForSmallTargets(t *testing.T) {
	// Padded box is 20x18, so the radius must clamp to 9 (half the height).
	target := Rect{Left: 50, Top: 50, Right: 54, Bottom: 52}
	vp := Size{Width: 800, Height: 600}

	path := Cutout(&target, vp, CutoutOptions{Padding: 8, Radius: 24})

	if got, want := path.Inner.Radius, 9.0; got != want {
		t.Errorf("radius = %v, want %v", got, want)
	}
}

func TestCutout_NoTarget(t *testing.T) {
	vp := Size{Width: 800, Height: 600}
	path := Cutout(nil, vp, DefaultCutoutOptions())

	if path.HasCutout {
		t.Error("expected no cutout without a target")
	}
	// The backdrop still covers the whole viewport.
	if !path.Covers(400, 300) {
		t.Error("backdrop should cover the viewport center")
	}
	if path.Covers(900, 300) {
		t.Error("backdrop should not cover points outside the viewport")
	}
}

func TestCutoutPath_Covers(t *testing.T) {
	target := Rect{Left: 100, Top: 100, Right: 200, Bottom: 150}
	vp := Size{Width: 800, Height: 600}
	path := Cutout(&target, vp, DefaultCutoutOptions())

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"far outside the cutout", 10, 10, true},
		{"target center", 150, 125, false},
		{"inside padded edge", 93, 125, false},
		{"just left of the cutout", 91, 125, true},
		{"corner outside the rounding arc", 92.5, 92.5, true},
		{"outside the viewport", 820, 10, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := path.Covers(tt.x, tt.y); got != tt.want {
				t.Errorf("Covers(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestAnchor_Directional(t *testing.T) {
	target := Rect{Left: 300, Top: 200, Right: 400, Bottom: 240}
	vp := Size{Width: 800, Height: 600}
	tip := Size{Width: 100, Height: 60}

	tests := []struct {
		placement Placement
		want      Point
	}{
		{PlaceTop, Point{X: 300, Y: 200 - 16 - 60}},
		{PlaceBottom, Point{X: 300, Y: 240 + 16}},
		{PlaceLeft, Point{X: 300 - 16 - 100, Y: 220 - 30}},
		{PlaceRight, Point{X: 400 + 16, Y: 220 - 30}},
		{PlaceTopStart, Point{X: 300, Y: 124}},
		{PlaceTopEnd, Point{X: 400 - 100, Y: 124}},
		{PlaceBottomStart, Point{X: 300, Y: 256}},
		{PlaceBottomEnd, Point{X: 300, Y: 256}},
	}
	for _, tt := range tests {
		t.Run(tt.placement.String(), func(t *testing.T) {
			got := Anchor(&target, tt.placement, tip, vp)
			if got != tt.want {
				t.Errorf("Anchor(%v) = %+v, want %+v", tt.placement, got, tt.want)
			}
		})
	}
}

func TestAnchor_ClampsNearViewportEdge(t *testing.T) {
	// Target flush against the right edge: the unclamped left coordinate
	// (780+16 = 796) must come back to 800-320-16 = 464.
	target := Rect{Left: 700, Top: 200, Right: 780, Bottom: 240}
	vp := Size{Width: 800, Height: 600}
	tip := Size{Width: 320, Height: 200}

	got := Anchor(&target, PlaceRight, tip, vp)

	if got.X != 464 {
		t.Errorf("clamped X = %v, want 464", got.X)
	}
}

func TestAnchor_Centered(t *testing.T) {
	vp := Size{Width: 800, Height: 600}
	tip := Size{Width: 200, Height: 100}

	got := Anchor(nil, PlaceCenter, tip, vp)
	want := Point{X: 300, Y: 250}
	if got != want {
		t.Errorf("centered anchor = %+v, want %+v", got, want)
	}

	// Explicit center placement ignores the target entirely.
	target := Rect{Left: 10, Top: 10, Right: 20, Bottom: 20}
	if got := Anchor(&target, PlaceCenter, tip, vp); got != want {
		t.Errorf("center placement with target = %+v, want %+v", got, want)
	}
}

func TestAnchor_TooltipLargerThanViewport(t *testing.T) {
	vp := Size{Width: 300, Height: 200}
	tip := Size{Width: 400, Height: 300}

	got := Anchor(nil, PlaceCenter, tip, vp)

	// Oversized tooltips pin to the top-left inset.
	want := Point{X: ViewportInset, Y: ViewportInset}
	if got != want {
		t.Errorf("oversized anchor = %+v, want %+v", got, want)
	}
}

func TestParsePlacement_RoundTrip(t *testing.T) {
	all := []Placement{
		PlaceCenter, PlaceTop, PlaceBottom, PlaceLeft, PlaceRight,
		PlaceTopStart, PlaceTopEnd, PlaceBottomStart, PlaceBottomEnd,
	}
	for _, p := range all {
		got, ok := ParsePlacement(p.String())
		if !ok || got != p {
			t.Errorf("ParsePlacement(%q) = %v, %v", p.String(), got, ok)
		}
	}
	if _, ok := ParsePlacement("diagonal"); ok {
		t.Error("expected unknown placement to be rejected")
	}
}
