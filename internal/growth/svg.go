package growth

import (
	"fmt"
	"strings"
)

// RenderSVG serializes a scene to a standalone SVG document. Layer names
// become group ids and the entry delay is carried as a data attribute so a
// styling layer can animate the growth sequence.
func RenderSVG(s *Scene) string {
	var b strings.Builder

	fmt.Fprintf(&b,
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="%s %s %s %s" preserveAspectRatio="xMidYMax meet">`,
		ftoa(s.ViewBox.MinX), ftoa(s.ViewBox.MinY), ftoa(s.ViewBox.Width), ftoa(s.ViewBox.Height))
	b.WriteByte('\n')

	for _, layer := range s.Layers {
		if len(layer.Elems) == 0 {
			continue
		}
		fmt.Fprintf(&b, `<g id=%q>`, layer.Name)
		b.WriteByte('\n')
		for _, e := range layer.Elems {
			writePrimitive(&b, e)
		}
		b.WriteString("</g>\n")
	}

	b.WriteString("</svg>\n")
	return b.String()
}

func writePrimitive(b *strings.Builder, e Primitive) {
	switch e.Kind {
	case KindEllipse:
		fmt.Fprintf(b, `<ellipse cx="%s" cy="%s" rx="%s" ry="%s"%s/>`,
			ftoa(e.Center.X), ftoa(e.Center.Y), ftoa(e.RX), ftoa(e.RY), paintAttrs(e))
	case KindCircle:
		fmt.Fprintf(b, `<circle cx="%s" cy="%s" r="%s"%s/>`,
			ftoa(e.Center.X), ftoa(e.Center.Y), ftoa(e.RX), paintAttrs(e))
	case KindRect:
		fmt.Fprintf(b, `<rect x="%s" y="%s" width="%s" height="%s" rx="%s"%s/>`,
			ftoa(e.X), ftoa(e.Y), ftoa(e.W), ftoa(e.H), ftoa(e.Radius), paintAttrs(e))
	case KindPolygon:
		pts := make([]string, 0, len(e.Points))
		for _, p := range e.Points {
			pts = append(pts, ftoa(p.X)+","+ftoa(p.Y))
		}
		fmt.Fprintf(b, `<polygon points="%s"%s/>`, strings.Join(pts, " "), paintAttrs(e))
	case KindPath:
		fmt.Fprintf(b, `<path d="%s"%s/>`, pathData(e), paintAttrs(e))
	}
	b.WriteByte('\n')
}

func pathData(e Primitive) string {
	var d strings.Builder
	fmt.Fprintf(&d, "M %s %s", ftoa(e.Start.X), ftoa(e.Start.Y))
	for _, seg := range e.Segs {
		if seg.Ctrl != nil {
			fmt.Fprintf(&d, " Q %s %s %s %s", ftoa(seg.Ctrl.X), ftoa(seg.Ctrl.Y), ftoa(seg.End.X), ftoa(seg.End.Y))
		} else {
			fmt.Fprintf(&d, " L %s %s", ftoa(seg.End.X), ftoa(seg.End.Y))
		}
	}
	if e.Closed {
		d.WriteString(" Z")
	}
	return d.String()
}

func paintAttrs(e Primitive) string {
	var b strings.Builder
	if e.Fill != "" {
		fmt.Fprintf(&b, ` fill=%q`, e.Fill)
	} else {
		b.WriteString(` fill="none"`)
	}
	if e.Stroke != "" {
		fmt.Fprintf(&b, ` stroke=%q stroke-width="%s" stroke-linecap="round"`, e.Stroke, ftoa(e.StrokeWidth))
	}
	if e.Opacity > 0 && e.Opacity < 1 {
		fmt.Fprintf(&b, ` opacity="%s"`, ftoa(e.Opacity))
	}
	fmt.Fprintf(&b, ` data-delay="%s"`, ftoa(e.Delay))
	return b.String()
}

// ftoa formats coordinates compactly (two decimals, trailing zeros
// trimmed) so SVG output is stable and diffable.
func ftoa(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	if s == "-0" || s == "" {
		s = "0"
	}
	return s
}
