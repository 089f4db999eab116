// Package chart turns attribute vectors and categorical counts into chart
// specifications ready for interactive rendering, and rasterizes radar
// charts for document embedding.
package chart

import (
	"sort"

	"github.com/udlz/scouting/internal/domain/record"
	"github.com/udlz/scouting/internal/domain/stats"
	"github.com/udlz/scouting/pkg/metrics"
)

// Chart kinds.
const (
	KindRadar = "radar"
	KindBar   = "bar"
	KindPie   = "pie"
)

// A radar needs at least this many axes to form a polygon.
const minRadarAxes = 3

// Default series palette, applied in insertion order when no fixed
// category mapping exists.
var defaultPalette = []string{
	"#2600ff", "#00b7ff", "#ff9633", "#ff0000", "#2ecc71",
	"#9b59b6", "#f1c40f", "#e74c3c", "#1abc9c", "#34495e",
}

// Point is a single labeled value in a series.
type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Series is one named data series. Color applies to the whole series;
// Colors, when set, carries one color per point.
type Series struct {
	Name   string   `json:"name"`
	Data   []Point  `json:"data"`
	Color  string   `json:"color,omitempty"`
	Colors []string `json:"colors,omitempty"`
}

// Spec defines how to render a chart.
type Spec struct {
	Kind        string   `json:"kind"`
	Title       string   `json:"title"`
	Axes        []string `json:"axes,omitempty"`
	Series      []Series `json:"series"`
	MaxValue    float64  `json:"maxValue,omitempty"`
	Placeholder bool     `json:"placeholder"`
	Message     string   `json:"message,omitempty"`
}

// Vector is a named attribute-to-value mapping compared on a radar.
type Vector struct {
	Name   string
	Values map[string]float64
}

// ActionColors is the fixed category-to-color mapping for the action
// dimension.
func ActionColors() map[string]string {
	return map[string]string{
		record.ActionSign:         "#2ecc71",
		record.ActionKeepScouting: "#e67e22",
		record.ActionDiscard:      "#e74c3c",
	}
}

// Radar builds a radar spec over the union of axes where at least one
// vector holds a strictly positive value. On an included axis a vector
// without a positive value plots as 0. With fewer than three usable axes
// the spec degrades to a placeholder instead of a malformed polygon.
func Radar(title string, vectors ...Vector) *Spec {
	axisSet := make(map[string]struct{})
	for _, v := range vectors {
		for axis, val := range v.Values {
			if val > 0 {
				axisSet[axis] = struct{}{}
			}
		}
	}
	axes := make([]string, 0, len(axisSet))
	for axis := range axisSet {
		axes = append(axes, axis)
	}
	sort.Strings(axes)

	if len(axes) < minRadarAxes {
		metrics.RecordRadarPlaceholder()
		return &Spec{
			Kind:        KindRadar,
			Title:       title,
			Placeholder: true,
			Message:     "insufficient rated attributes",
		}
	}

	spec := &Spec{Kind: KindRadar, Title: title, Axes: axes, MaxValue: 5}
	for i, v := range vectors {
		s := Series{Name: v.Name, Color: defaultPalette[i%len(defaultPalette)]}
		for _, axis := range axes {
			val := v.Values[axis]
			if val < 0 {
				val = 0
			}
			s.Data = append(s.Data, Point{Label: axis, Value: val})
		}
		spec.Series = append(spec.Series, s)
	}
	metrics.RecordChartSpec(KindRadar)
	return spec
}

// Bar builds a horizontal-bar spec over categorical counts, sorted by
// descending count. A non-nil colors mapping pins category colors; other
// categories take the palette in insertion order.
func Bar(title string, counts []stats.Count, colors map[string]string) *Spec {
	spec := &Spec{Kind: KindBar, Title: title}
	spec.Series = []Series{countSeries(title, counts, colors)}
	metrics.RecordChartSpec(KindBar)
	return spec
}

// Pie builds a pie spec over categorical counts, sorted by descending
// count.
func Pie(title string, counts []stats.Count) *Spec {
	spec := &Spec{Kind: KindPie, Title: title}
	spec.Series = []Series{countSeries(title, counts, nil)}
	metrics.RecordChartSpec(KindPie)
	return spec
}

func countSeries(name string, counts []stats.Count, colors map[string]string) Series {
	sorted := make([]stats.Count, len(counts))
	copy(sorted, counts)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Total > sorted[j].Total })

	s := Series{Name: name}
	for i, c := range sorted {
		s.Data = append(s.Data, Point{Label: c.Label, Value: float64(c.Total)})
		color, ok := colors[c.Label]
		if !ok {
			color = defaultPalette[i%len(defaultPalette)]
		}
		s.Colors = append(s.Colors, color)
	}
	return s
}
