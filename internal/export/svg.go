package export

import (
	"fmt"
	"strings"
)

// SeriesToSVG renders one time series as an SVG polyline.
func SeriesToSVG(times, values []float64, width, height int, strokeColor string) string {
	if len(times) < 2 || len(times) != len(values) {
		return ""
	}

	minT, maxT := times[0], times[len(times)-1]
	minV, maxV := values[0], values[0]
	for _, v := range values {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}

	rangeT := maxT - minT
	rangeV := maxV - minV
	if rangeT == 0 {
		rangeT = 1
	}
	if rangeV == 0 {
		rangeV = 1
	}
	minV -= rangeV * 0.1
	maxV += rangeV * 0.1
	rangeV = maxV - minV

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i := range times {
		x := (times[i] - minT) / rangeT * float64(width)
		y := float64(height) - (values[i]-minV)/rangeV*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

// RunToSVG stacks the velocity and displacement curves of a run into one
// document, velocity on top.
func RunToSVG(times, speeds, hingeX []float64, width, height int) string {
	top := SeriesToSVG(times, speeds, width, height/2, "#00ff88")
	bottom := SeriesToSVG(times, hingeX, width, height/2, "#ffaa00")
	if top == "" || bottom == "" {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d">
`, width, height))
	sb.WriteString(embed(top, 0))
	sb.WriteString(embed(bottom, height/2))
	sb.WriteString("</svg>")
	return sb.String()
}

func embed(doc string, yOffset int) string {
	// Strip the XML prolog so the panel nests inside the outer svg element.
	if i := strings.Index(doc, "<svg"); i > 0 {
		doc = doc[i:]
	}
	doc = strings.Replace(doc, "<svg ", fmt.Sprintf(`<svg y="%d" `, yOffset), 1)
	return doc + "\n"
}
