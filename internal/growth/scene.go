package growth

// Scene is the full render output for one plant at one growth stage: an
// ordered list of layers, each an ordered list of primitives. Order is
// paint order (back to front). The scene is a pure function of the
// descriptor and the stage; a renderer replaying the same scene twice gets
// identical geometry.
type Scene struct {
	Variant string  `json:"variant"`
	Family  string  `json:"family"`
	ViewBox ViewBox `json:"viewBox"`
	Layers  []Layer `json:"layers"`
}

type ViewBox struct {
	MinX   float64 `json:"minX"`
	MinY   float64 `json:"minY"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Layer groups primitives that enter together (trunk, branches, canopy...).
// A layer with no elements is valid and means "nothing at this stage yet".
type Layer struct {
	Name  string      `json:"name"`
	Elems []Primitive `json:"elems"`
}

type Kind string

const (
	KindPath    Kind = "path"
	KindEllipse Kind = "ellipse"
	KindRect    Kind = "rect"
	KindCircle  Kind = "circle"
	KindPolygon Kind = "polygon"
)

// Point is a coordinate in scene space: x grows right, y grows down, the
// ground line is y=0 and plants grow toward negative y.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Segment is one piece of a path: a quadratic curve when Ctrl is set,
// otherwise a straight line to End.
type Segment struct {
	Ctrl *Point `json:"ctrl,omitempty"`
	End  Point  `json:"end"`
}

// Primitive is a single positioned visual element. Exactly the fields for
// its Kind are meaningful; the rest stay zero.
type Primitive struct {
	Kind Kind `json:"kind"`

	// path
	Start  Point     `json:"start,omitempty"`
	Segs   []Segment `json:"segs,omitempty"`
	Closed bool      `json:"closed,omitempty"`

	// ellipse / circle
	Center Point   `json:"center,omitempty"`
	RX     float64 `json:"rx,omitempty"`
	RY     float64 `json:"ry,omitempty"`

	// rect
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	W      float64 `json:"w,omitempty"`
	H      float64 `json:"h,omitempty"`
	Radius float64 `json:"radius,omitempty"`

	// polygon
	Points []Point `json:"points,omitempty"`

	// paint
	Fill        string  `json:"fill,omitempty"`
	Stroke      string  `json:"stroke,omitempty"`
	StrokeWidth float64 `json:"strokeWidth,omitempty"`
	Opacity     float64 `json:"opacity,omitempty"`

	// Delay schedules the entry animation, in seconds from scene start.
	// Delays are part of the scene value: replaying the same scene yields
	// the same growth sequence.
	Delay float64 `json:"delay"`
}

func (s *Scene) addLayer(l Layer) {
	s.Layers = append(s.Layers, l)
}

// ElementCount returns the total primitive count across layers.
func (s *Scene) ElementCount() int {
	n := 0
	for _, l := range s.Layers {
		n += len(l.Elems)
	}
	return n
}

func ellipse(cx, cy, rx, ry float64, fill string, delay float64) Primitive {
	return Primitive{Kind: KindEllipse, Center: Point{X: cx, Y: cy}, RX: rx, RY: ry, Fill: fill, Opacity: 1, Delay: delay}
}

func circle(cx, cy, r float64, fill string, delay float64) Primitive {
	return Primitive{Kind: KindCircle, Center: Point{X: cx, Y: cy}, RX: r, RY: r, Fill: fill, Opacity: 1, Delay: delay}
}

func rect(x, y, w, h, radius float64, fill string, delay float64) Primitive {
	return Primitive{Kind: KindRect, X: x, Y: y, W: w, H: h, Radius: radius, Fill: fill, Opacity: 1, Delay: delay}
}

func polygon(points []Point, fill string, delay float64) Primitive {
	return Primitive{Kind: KindPolygon, Points: points, Fill: fill, Opacity: 1, Delay: delay}
}

// strokedPath starts an open stroked path at (x, y).
func strokedPath(x, y float64, stroke string, width float64, delay float64) Primitive {
	return Primitive{Kind: KindPath, Start: Point{X: x, Y: y}, Stroke: stroke, StrokeWidth: width, Opacity: 1, Delay: delay}
}

func (p Primitive) lineTo(x, y float64) Primitive {
	p.Segs = append(p.Segs, Segment{End: Point{X: x, Y: y}})
	return p
}

func (p Primitive) quadTo(cx, cy, x, y float64) Primitive {
	p.Segs = append(p.Segs, Segment{Ctrl: &Point{X: cx, Y: cy}, End: Point{X: x, Y: y}})
	return p
}

func (p Primitive) filled(fill string) Primitive {
	p.Fill = fill
	p.Stroke = ""
	p.StrokeWidth = 0
	p.Closed = true
	return p
}

// viewBoxFor sizes the viewport: fixed 800 wide, tall enough for the plant
// plus headroom, ground line pinned near the bottom edge.
func viewBoxFor(plantHeight float64) ViewBox {
	h := plantHeight + 100
	if h < 400 {
		h = 400
	}
	return ViewBox{MinX: -400, MinY: -(h - 50), Width: 800, Height: h}
}
