package report

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/nexa-assets/nexa/pkg/errclass"
	"github.com/nexa-assets/nexa/pkg/model"
)

// FallbackColor is used for statuses missing from the color table.
const FallbackColor = "#A0AEC0"

// StatusColors maps each status to its chart color.
var StatusColors = map[model.AssetStatus]string{
	model.StatusInStock:         "#10B981",
	model.StatusAssigned:        "#EF4444",
	model.StatusInRepair:        "#F59E0B",
	model.StatusAwaitingReimage: "#6366F1",
	model.StatusLostOrStolen:    "#6B7280",
	model.StatusDisposed:        "#1F2937",
}

// ColorFor returns the chart color for status.
func ColorFor(status model.AssetStatus) string {
	if c, ok := StatusColors[status]; ok {
		return c
	}
	return FallbackColor
}

// PieDatum is one status in the chart.
type PieDatum struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Color string `json:"color"`
}

// Pie is chart data, largest value first.
type Pie struct {
	Data  []PieDatum `json:"data"`
	Total int        `json:"total"`
}

// Slice is a datum with its start and end angles in degrees.
type Slice struct {
	PieDatum
	StartAngle float64 `json:"startAngle"`
	EndAngle   float64 `json:"endAngle"`
}

// Sweep is the slice's angular size.
func (s Slice) Sweep() float64 {
	return s.EndAngle - s.StartAngle
}

const (
	startAngle = -90.0
	endAngle   = startAngle + 360
)

// PieChart builds chart data from per-status counts. Statuses with a zero
// count are dropped. Ties keep the status declaration order, with unknown
// statuses last in name order.
func PieChart(counts map[model.AssetStatus]int) Pie {
	var p Pie
	for _, s := range orderedStatuses(counts) {
		n := counts[s]
		if n <= 0 {
			continue
		}
		p.Data = append(p.Data, PieDatum{Name: string(s), Value: n, Color: ColorFor(s)})
		p.Total += n
	}
	sort.SliceStable(p.Data, func(i, j int) bool {
		return p.Data[i].Value > p.Data[j].Value
	})
	return p
}

func orderedStatuses(counts map[model.AssetStatus]int) []model.AssetStatus {
	out := make([]model.AssetStatus, 0, len(counts))
	for _, s := range model.AllStatuses {
		if _, ok := counts[s]; ok {
			out = append(out, s)
		}
	}
	var extra []model.AssetStatus
	for s := range counts {
		if !s.Valid() {
			extra = append(extra, s)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(out, extra...)
}

// Empty reports whether there is nothing to draw.
func (p Pie) Empty() bool {
	return p.Total == 0
}

// Slices lays out the data clockwise from 12 o'clock. Each slice spans
// value/total of the circle; the last slice ends exactly at the start so the
// sweeps always total 360 degrees. An empty chart returns ErrNoData.
func (p Pie) Slices() ([]Slice, error) {
	if p.Empty() {
		return nil, errclass.ErrNoData.WithMessage("no assets to chart")
	}
	out := make([]Slice, len(p.Data))
	angle := startAngle
	for i, d := range p.Data {
		end := angle + float64(d.Value)/float64(p.Total)*360
		if i == len(p.Data)-1 {
			end = endAngle
		}
		out[i] = Slice{PieDatum: d, StartAngle: angle, EndAngle: end}
		angle = end
	}
	return out, nil
}

// Donut geometry.
const (
	svgSize     = 200
	outerRadius = 80
	innerRadius = 40
)

// RenderPieSVG writes the chart as a donut SVG. An empty chart renders a
// "No data" placeholder instead of slices.
func RenderPieSVG(w io.Writer, p Pie) error {
	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		svgSize, svgSize, svgSize, svgSize)

	slices, err := p.Slices()
	if err != nil {
		c := svgSize / 2
		fmt.Fprintf(&b, `  <circle cx="%d" cy="%d" r="%d" fill="none" stroke="%s" stroke-width="%d"/>`+"\n",
			c, c, (outerRadius+innerRadius)/2, FallbackColor, outerRadius-innerRadius)
		fmt.Fprintf(&b, `  <text x="%d" y="%d" text-anchor="middle" dominant-baseline="middle" font-family="sans-serif" font-size="14">No data</text>`+"\n", c, c)
	} else {
		for _, s := range slices {
			fmt.Fprintf(&b, `  <path d="%s" fill="%s"><title>%s: %d</title></path>`+"\n",
				donutPath(s.StartAngle, s.EndAngle), s.Color, xmlEscape(s.Name), s.Value)
		}
	}
	b.WriteString("</svg>\n")

	_, err = io.WriteString(w, b.String())
	return err
}

// donutPath draws the ring segment between two angles. A full circle is split
// in two arcs since a single SVG arc cannot start and end at the same point.
func donutPath(from, to float64) string {
	if to-from >= 360-1e-9 {
		mid := from + 180
		return donutPath(from, mid) + " " + donutPath(mid, to)
	}
	large := 0
	if to-from > 180 {
		large = 1
	}
	ox1, oy1 := polar(outerRadius, from)
	ox2, oy2 := polar(outerRadius, to)
	ix1, iy1 := polar(innerRadius, to)
	ix2, iy2 := polar(innerRadius, from)
	return fmt.Sprintf("M %.3f %.3f A %d %d 0 %d 1 %.3f %.3f L %.3f %.3f A %d %d 0 %d 0 %.3f %.3f Z",
		ox1, oy1, outerRadius, outerRadius, large, ox2, oy2,
		ix1, iy1, innerRadius, innerRadius, large, ix2, iy2)
}

func polar(r int, deg float64) (float64, float64) {
	rad := deg * math.Pi / 180
	c := float64(svgSize) / 2
	return c + float64(r)*math.Cos(rad), c + float64(r)*math.Sin(rad)
}

var xmlReplacer = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

func xmlEscape(s string) string {
	return xmlReplacer.Replace(s)
}
