// Package svg renders frequency tables as standalone SVG files.
package svg

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/cognicore/corpora/pkg/corpora/analytics"
)

// Word cloud canvas and limits.
const (
	CloudWidth    = 800
	CloudHeight   = 400
	CloudMaxWords = 200

	minFont = 10.0
	maxFont = 60.0
)

// Bar chart geometry.
const (
	barWidth  = 800
	barHeight = 22
	barGap    = 6
	labelCol  = 180
	margin    = 20
)

var palette = []string{"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd", "#8c564b"}

// Renderer writes <name>.svg files into Dir.
type Renderer struct {
	Dir string
}

// New creates a renderer writing into dir.
func New(dir string) *Renderer {
	return &Renderer{Dir: dir}
}

// Path returns the file an artifact name is written to.
func (r *Renderer) Path(name string) string {
	return filepath.Join(r.Dir, name+".svg")
}

// BarChart draws a horizontal bar chart. The last table row is drawn on
// top, so an ascending table puts the most frequent item first.
func (r *Renderer) BarChart(name string, t analytics.Table) error {
	top := 0
	for _, it := range t {
		if it.Count > top {
			top = it.Count
		}
	}
	height := 2*margin + 30 + len(t)*(barHeight+barGap)
	plot := float64(barWidth - labelCol - 2*margin - 50)

	var buf bytes.Buffer
	header(&buf, barWidth, height)
	fmt.Fprintf(&buf, `<text x="%d" y="%d" font-size="16" font-weight="bold">%s</text>`+"\n", margin, margin+12, escape(name))

	for row := range t {
		it := t[len(t)-1-row]
		y := margin + 30 + row*(barHeight+barGap)
		w := 0.0
		if top > 0 {
			w = plot * float64(it.Count) / float64(top)
		}
		fmt.Fprintf(&buf, `<text x="%d" y="%d" font-size="12" text-anchor="end">%s</text>`+"\n",
			margin+labelCol-6, y+barHeight-6, escape(it.Key))
		fmt.Fprintf(&buf, `<rect x="%d" y="%d" width="%.1f" height="%d" fill="%s"/>`+"\n",
			margin+labelCol, y, w, barHeight, palette[0])
		fmt.Fprintf(&buf, `<text x="%.1f" y="%d" font-size="12">%d</text>`+"\n",
			float64(margin+labelCol)+w+4, y+barHeight-6, it.Count)
	}
	buf.WriteString("</svg>\n")
	return r.write(name, buf.Bytes())
}

// WordCloud draws up to CloudMaxWords of the most frequent items with font
// size scaled to frequency. Words that cannot be placed are dropped.
func (r *Renderer) WordCloud(name string, t analytics.Table) error {
	words := analytics.Reverse(analytics.TopK(t, CloudMaxWords))

	lo, hi := math.MaxInt, 0
	for _, it := range words {
		lo = min(lo, it.Count)
		hi = max(hi, it.Count)
	}

	var buf bytes.Buffer
	header(&buf, CloudWidth, CloudHeight)
	var placed []box
	for i, it := range words {
		size := fontSize(it.Count, lo, hi)
		x, y, ok := place(&placed, textWidth(it.Key, size), size)
		if !ok {
			continue
		}
		fmt.Fprintf(&buf, `<text x="%.1f" y="%.1f" font-size="%.1f" fill="%s">%s</text>`+"\n",
			x, y+size*0.8, size, palette[i%len(palette)], escape(it.Key))
	}
	buf.WriteString("</svg>\n")
	return r.write(name, buf.Bytes())
}

func (r *Renderer) write(name string, data []byte) error {
	if err := os.MkdirAll(r.Dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(r.Path(name), data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

func header(buf *bytes.Buffer, w, h int) {
	fmt.Fprintf(buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" font-family="sans-serif">`+"\n", w, h, w, h)
	fmt.Fprintf(buf, `<rect width="%d" height="%d" fill="white"/>`+"\n", w, h)
}

func escape(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

func fontSize(count, lo, hi int) float64 {
	if hi <= lo {
		return (minFont + maxFont) / 2
	}
	return minFont + (maxFont-minFont)*float64(count-lo)/float64(hi-lo)
}

// textWidth approximates rendered width for a sans-serif face.
func textWidth(s string, size float64) float64 {
	return 0.6 * size * float64(utf8.RuneCountInString(s))
}

type box struct {
	x, y, w, h float64
}

func (a box) overlaps(b box) bool {
	return a.x < b.x+b.w && b.x < a.x+a.w && a.y < b.y+b.h && b.y < a.y+a.h
}

// place walks an archimedean spiral out from the centre until the box fits
// on the canvas without touching an already placed word.
func place(placed *[]box, w, h float64) (float64, float64, bool) {
	cx, cy := CloudWidth/2.0, CloudHeight/2.0
	for step := 0; step < 4000; step++ {
		theta := float64(step) * 0.1
		radius := 2.0 * theta
		b := box{
			x: cx + radius*math.Cos(theta) - w/2,
			y: cy + radius*math.Sin(theta)*0.5 - h/2,
			w: w,
			h: h,
		}
		if b.x < 0 || b.y < 0 || b.x+b.w > CloudWidth || b.y+b.h > CloudHeight {
			continue
		}
		free := true
		for _, p := range *placed {
			if p.overlaps(b) {
				free = false
				break
			}
		}
		if free {
			*placed = append(*placed, b)
			return b.x, b.y, true
		}
	}
	return 0, 0, false
}
