package growth

import (
	"fmt"

	"github.com/fogleman/gg"
)

// RenderPNG rasterizes a scene to a PNG file. Scene space is mapped so the
// viewBox fills the image; scale keeps the 800-unit width proportional.
func RenderPNG(s *Scene, path string, width int) error {
	if width <= 0 {
		width = 800
	}
	scale := float64(width) / s.ViewBox.Width
	height := int(s.ViewBox.Height * scale)

	dc := gg.NewContext(width, height)
	dc.SetHexColor("#F1F8E9")
	dc.Clear()

	// Translate scene coordinates into image space.
	dc.Translate(-s.ViewBox.MinX*scale, -s.ViewBox.MinY*scale)
	dc.Scale(scale, scale)

	for _, layer := range s.Layers {
		for _, e := range layer.Elems {
			drawPrimitive(dc, e)
		}
	}

	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("save png: %w", err)
	}
	return nil
}

func drawPrimitive(dc *gg.Context, e Primitive) {
	switch e.Kind {
	case KindEllipse:
		dc.DrawEllipse(e.Center.X, e.Center.Y, e.RX, e.RY)
	case KindCircle:
		dc.DrawCircle(e.Center.X, e.Center.Y, e.RX)
	case KindRect:
		if e.Radius > 0 {
			r := e.Radius
			if r > e.W/2 {
				r = e.W / 2
			}
			dc.DrawRoundedRectangle(e.X, e.Y, e.W, e.H, r)
		} else {
			dc.DrawRectangle(e.X, e.Y, e.W, e.H)
		}
	case KindPolygon:
		if len(e.Points) == 0 {
			return
		}
		dc.MoveTo(e.Points[0].X, e.Points[0].Y)
		for _, p := range e.Points[1:] {
			dc.LineTo(p.X, p.Y)
		}
		dc.ClosePath()
	case KindPath:
		dc.MoveTo(e.Start.X, e.Start.Y)
		for _, seg := range e.Segs {
			if seg.Ctrl != nil {
				dc.QuadraticTo(seg.Ctrl.X, seg.Ctrl.Y, seg.End.X, seg.End.Y)
			} else {
				dc.LineTo(seg.End.X, seg.End.Y)
			}
		}
		if e.Closed {
			dc.ClosePath()
		}
	default:
		return
	}

	opacity := e.Opacity
	if opacity <= 0 {
		opacity = 1
	}

	if e.Fill != "" {
		setHexColorAlpha(dc, e.Fill, opacity)
		if e.Stroke != "" {
			dc.FillPreserve()
		} else {
			dc.Fill()
		}
	}
	if e.Stroke != "" {
		setHexColorAlpha(dc, e.Stroke, opacity)
		dc.SetLineWidth(e.StrokeWidth)
		dc.SetLineCapRound()
		dc.Stroke()
	}
}

func setHexColorAlpha(dc *gg.Context, hex string, alpha float64) {
	var r, g, b int
	if _, err := fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b); err != nil {
		dc.SetRGBA(0, 0, 0, alpha)
		return
	}
	dc.SetRGBA(float64(r)/255, float64(g)/255, float64(b)/255, alpha)
}
