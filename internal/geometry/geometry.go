// Package geometry computes spotlight cutouts and tooltip anchor positions
// from a target rectangle and the current viewport size. Everything here is
// a pure function of its inputs; callers re-run these on every resize,
// scroll, or step change rather than caching results.
package geometry

// Layout constants shared by the cutout and anchoring computations.
const (
	// DefaultPadding is the breathing room added around a spotlit target.
	DefaultPadding = 8.0

	// DefaultRadius is the corner radius of the spotlight cutout.
	DefaultRadius = 8.0

	// TooltipGap separates the tooltip from the target's edge.
	TooltipGap = 16.0

	// ViewportInset is the minimum distance the tooltip keeps from every
	// viewport edge; clamping to it takes priority over exact alignment.
	ViewportInset = 16.0
)

// Rect is an axis-aligned rectangle in viewport coordinates.
type Rect struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() float64 { return r.Right - r.Left }

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// CenterX returns the horizontal midpoint.
func (r Rect) CenterX() float64 { return (r.Left + r.Right) / 2 }

// CenterY returns the vertical midpoint.
func (r Rect) CenterY() float64 { return (r.Top + r.Bottom) / 2 }

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.Left && x < r.Right && y >= r.Top && y < r.Bottom
}

// Expand grows the rectangle by d on all sides.
func (r Rect) Expand(d float64) Rect {
	return Rect{Left: r.Left - d, Top: r.Top - d, Right: r.Right + d, Bottom: r.Bottom + d}
}

// Size is a width/height pair. The viewport is described by one.
type Size struct {
	Width  float64
	Height float64
}

// Point is a position in viewport coordinates; for tooltips it is the
// top-left corner of the tooltip box.
type Point struct {
	X float64
	Y float64
}

// Placement is the requested side and alignment of a tooltip relative to
// its target.
type Placement int

const (
	PlaceCenter Placement = iota
	PlaceTop
	PlaceBottom
	PlaceLeft
	PlaceRight
	PlaceTopStart
	PlaceTopEnd
	PlaceBottomStart
	PlaceBottomEnd
)

// String returns the wire/YAML form of the placement.
func (p Placement) String() string {
	switch p {
	case PlaceTop:
		return "top"
	case PlaceBottom:
		return "bottom"
	case PlaceLeft:
		return "left"
	case PlaceRight:
		return "right"
	case PlaceTopStart:
		return "top-start"
	case PlaceTopEnd:
		return "top-end"
	case PlaceBottomStart:
		return "bottom-start"
	case PlaceBottomEnd:
		return "bottom-end"
	default:
		return "center"
	}
}

// ParsePlacement converts the wire/YAML form back to a Placement.
func ParsePlacement(s string) (Placement, bool) {
	switch s {
	case "center", "":
		return PlaceCenter, true
	case "top":
		return PlaceTop, true
	case "bottom":
		return PlaceBottom, true
	case "left":
		return PlaceLeft, true
	case "right":
		return PlaceRight, true
	case "top-start":
		return PlaceTopStart, true
	case "top-end":
		return PlaceTopEnd, true
	case "bottom-start":
		return PlaceBottomStart, true
	case "bottom-end":
		return PlaceBottomEnd, true
	}
	return PlaceCenter, false
}

// Winding is the traversal direction of a ring. The cutout pairs a
// clockwise outer ring with a counter-clockwise inner ring so that both
// nonzero and even-odd fill rules leave the inner region unfilled.
type Winding int

const (
	Clockwise Winding = iota
	CounterClockwise
)

// Ring is one sub-path of a cutout: a rounded rectangle with a traversal
// direction. Radius zero is a plain rectangle.
type Ring struct {
	Bounds  Rect
	Radius  float64
	Winding Winding
}

// contains reports whether the point is inside the rounded rectangle.
func (g Ring) contains(x, y float64) bool {
	if !g.Bounds.Contains(x, y) {
		return false
	}
	if g.Radius <= 0 {
		return true
	}
	r := g.Radius
	// Corner circle centers, inset by the radius.
	cx := x
	cy := y
	switch {
	case x < g.Bounds.Left+r && y < g.Bounds.Top+r:
		cx, cy = g.Bounds.Left+r, g.Bounds.Top+r
	case x >= g.Bounds.Right-r && y < g.Bounds.Top+r:
		cx, cy = g.Bounds.Right-r, g.Bounds.Top+r
	case x < g.Bounds.Left+r && y >= g.Bounds.Bottom-r:
		cx, cy = g.Bounds.Left+r, g.Bounds.Bottom-r
	case x >= g.Bounds.Right-r && y >= g.Bounds.Bottom-r:
		cx, cy = g.Bounds.Right-r, g.Bounds.Bottom-r
	default:
		return true
	}
	dx, dy := x-cx, y-cy
	return dx*dx+dy*dy <= r*r
}

// CutoutPath is the overlay shape: the full viewport minus a rounded
// rectangle around the target. When HasCutout is false the path is an
// unbroken backdrop (modal steps, unresolved targets).
type CutoutPath struct {
	HasCutout bool
	Outer     Ring
	Inner     Ring
}

// Covers reports whether the dimming backdrop covers the given point,
// i.e. the point is inside the viewport but outside the cutout.
func (c CutoutPath) Covers(x, y float64) bool {
	if !c.Outer.Bounds.Contains(x, y) {
		return false
	}
	if !c.HasCutout {
		return true
	}
	return !c.Inner.contains(x, y)
}

// CutoutOptions configures the spotlight shape.
type CutoutOptions struct {
	Padding float64
	Radius  float64
}

// DefaultCutoutOptions returns the standard spotlight padding and radius.
func DefaultCutoutOptions() CutoutOptions {
	return CutoutOptions{Padding: DefaultPadding, Radius: DefaultRadius}
}

// Cutout builds the spotlight path for a target inside the viewport. A nil
// target yields a cutout-free backdrop. The corner radius is clamped to
// half the padded box's width and height so tiny targets never produce a
// malformed rounded rectangle.
func Cutout(target *Rect, vp Size, opts CutoutOptions) CutoutPath {
	outer := Ring{
		Bounds:  Rect{Right: vp.Width, Bottom: vp.Height},
		Winding: Clockwise,
	}
	if target == nil {
		return CutoutPath{Outer: outer}
	}
	padded := target.Expand(opts.Padding)
	radius := opts.Radius
	if max := padded.Width() / 2; radius > max {
		radius = max
	}
	if max := padded.Height() / 2; radius > max {
		radius = max
	}
	if radius < 0 {
		radius = 0
	}
	return CutoutPath{
		HasCutout: true,
		Outer:     outer,
		Inner:     Ring{Bounds: padded, Radius: radius, Winding: CounterClockwise},
	}
}

// AnchorOptions configures the tooltip offset and edge clamping. The
// defaults suit pixel-like coordinate spaces; terminal hosts pass
// cell-sized values.
type AnchorOptions struct {
	// Gap separates the tooltip from the target's edge.
	Gap float64

	// Inset is the minimum distance kept from every viewport edge.
	Inset float64
}

// DefaultAnchorOptions returns the standard gap and inset.
func DefaultAnchorOptions() AnchorOptions {
	return AnchorOptions{Gap: TooltipGap, Inset: ViewportInset}
}

// Anchor computes the tooltip's top-left position using the default gap
// and inset. The tip size is the tooltip's last-measured box; position
// depends on size, so callers feed the previous render's measurement and
// accept one frame of lag after a step change.
func Anchor(target *Rect, placement Placement, tip Size, vp Size) Point {
	return AnchorWith(target, placement, tip, vp, DefaultAnchorOptions())
}

// AnchorWith is Anchor with explicit offset configuration. A nil target
// or center placement anchors at the viewport center. The result is
// clamped so the whole tooltip stays inside the viewport minus the inset;
// clamping wins over alignment.
func AnchorWith(target *Rect, placement Placement, tip Size, vp Size, opts AnchorOptions) Point {
	if target == nil || placement == PlaceCenter {
		return clamp(Point{
			X: (vp.Width - tip.Width) / 2,
			Y: (vp.Height - tip.Height) / 2,
		}, tip, vp, opts.Inset)
	}

	var p Point
	switch placement {
	case PlaceTop, PlaceTopStart, PlaceTopEnd:
		p.Y = target.Top - opts.Gap - tip.Height
		p.X = alignCross(placement, *target, tip.Width)
	case PlaceBottom, PlaceBottomStart, PlaceBottomEnd:
		p.Y = target.Bottom + opts.Gap
		p.X = alignCross(placement, *target, tip.Width)
	case PlaceLeft:
		p.X = target.Left - opts.Gap - tip.Width
		p.Y = target.CenterY() - tip.Height/2
	case PlaceRight:
		p.X = target.Right + opts.Gap
		p.Y = target.CenterY() - tip.Height/2
	}
	return clamp(p, tip, vp, opts.Inset)
}

// alignCross picks the horizontal position for top/bottom placements:
// centered by default, flush with the target's left edge for -start and
// right edge for -end.
func alignCross(placement Placement, target Rect, tipWidth float64) float64 {
	switch placement {
	case PlaceTopStart, PlaceBottomStart:
		return target.Left
	case PlaceTopEnd, PlaceBottomEnd:
		return target.Right - tipWidth
	default:
		return target.CenterX() - tipWidth/2
	}
}

func clamp(p Point, tip Size, vp Size, inset float64) Point {
	p.X = clampAxis(p.X, vp.Width-tip.Width-inset, inset)
	p.Y = clampAxis(p.Y, vp.Height-tip.Height-inset, inset)
	return p
}

// clampAxis keeps v within [lo, hi]. When the tooltip is larger than the
// viewport allows, the top/left inset wins.
func clampAxis(v, hi, lo float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
