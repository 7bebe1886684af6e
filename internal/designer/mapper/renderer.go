package mapper

import (
	"fmt"
	"html"
	"math"
	"strconv"
	"strings"

	"room-designer/internal/designer/models"
)

const (
	wallThickness  = 6.0
	selectedStroke = "#9b87f5"
	handleFill     = "#7E69AB"
)

// ============================================================
// Renderer
// ============================================================

// Renderer draws the top-down editor view of a room as SVG.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render draws room with furniture in z-order. The selected piece is drawn
// last with an outline and its resize handle.
func (r *Renderer) Render(room models.Room, selectedID string) (string, error) {
	if room.Width <= 0 || room.Height <= 0 {
		return "", fmt.Errorf("room %q has no area", room.ID)
	}

	var elements []string
	elements = append(elements, r.renderFloor(room)...)

	var selected *models.Furniture
	for i := range room.Furniture {
		f := room.Furniture[i]
		if f.ID == selectedID {
			selected = &f
			continue
		}
		elements = append(elements, r.renderFurniture(f, false)...)
	}
	if selected != nil {
		elements = append(elements, r.renderFurniture(*selected, true)...)
	}

	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`,
		formatFloat(room.Width), formatFloat(room.Height), formatFloat(room.Width), formatFloat(room.Height)))
	builder.WriteString("\n")
	builder.WriteString("  <title>")
	builder.WriteString(html.EscapeString(room.Name))
	builder.WriteString("</title>\n")

	for _, elem := range elements {
		builder.WriteString("  ")
		builder.WriteString(elem)
		builder.WriteString("\n")
	}

	builder.WriteString(`</svg>`)
	return builder.String(), nil
}

// ============================================================
// Element renderers
// ============================================================

func (r *Renderer) renderFloor(room models.Room) []string {
	inset := wallThickness / 2
	return []string{
		fmt.Sprintf(`<rect id="floor" x="0" y="0" width="%s" height="%s" fill="%s" />`,
			formatFloat(room.Width), formatFloat(room.Height), html.EscapeString(room.FloorColor)),
		fmt.Sprintf(`<rect id="walls" x="%s" y="%s" width="%s" height="%s" fill="none" stroke="%s" stroke-width="%s" />`,
			formatFloat(inset), formatFloat(inset),
			formatFloat(room.Width-wallThickness), formatFloat(room.Height-wallThickness),
			html.EscapeString(room.WallColor), formatFloat(wallThickness)),
	}
}

func (r *Renderer) renderFurniture(f models.Furniture, selected bool) []string {
	stroke := `stroke="none"`
	if selected {
		stroke = `stroke="` + selectedStroke + `" stroke-width="2"`
	}

	out := []string{
		fmt.Sprintf(`<path id="%s" data-type="%s" d="%s" fill="%s" %s />`,
			html.EscapeString(f.ID), f.Type, polygonPath(f.Corners()), html.EscapeString(f.Color), stroke),
	}

	c := f.Center()
	out = append(out, fmt.Sprintf(`<text x="%s" y="%s" font-size="10" text-anchor="middle" fill="#fff">%s</text>`,
		formatFloat(c.X), formatFloat(c.Y), html.EscapeString(string(f.Type))))

	if selected {
		out = append(out, fmt.Sprintf(`<path id="%s-handle" d="%s" fill="%s" />`,
			html.EscapeString(f.ID), polygonPath(f.HandleCorners()), handleFill))
	}

	return out
}

// ============================================================
// Formatting helpers
// ============================================================

func polygonPath(points []models.Point) string {
	var path strings.Builder
	path.WriteString("M ")
	path.WriteString(formatPoint(points[0]))
	for _, p := range points[1:] {
		path.WriteString(" L ")
		path.WriteString(formatPoint(p))
	}
	path.WriteString(" Z")
	return path.String()
}

func formatFloat(val float64) string {
	return strconv.FormatFloat(round(val), 'f', -1, 64)
}

// round trims float noise from rotated coordinates.
func round(val float64) float64 {
	v := math.Round(val*1e6) / 1e6
	if v == 0 {
		return 0
	}
	return v
}

func formatPoint(p models.Point) string {
	return formatFloat(p.X) + " " + formatFloat(p.Y)
}
