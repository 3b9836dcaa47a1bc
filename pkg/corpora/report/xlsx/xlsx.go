// Package xlsx renders frequency tables as Excel workbooks.
package xlsx

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/cognicore/corpora/pkg/corpora/analytics"
)

// Sheet names used in generated workbooks.
const (
	TableSheet = "Frequencies"
	CloudSheet = "WordCloud"
)

// Word cloud font range and word limit.
const (
	minFont   = 10.0
	maxFont   = 48.0
	maxWords  = 200
	chartCell = "D2"
)

// Renderer writes <name>.xlsx workbooks into Dir.
type Renderer struct {
	Dir string
}

// New creates a renderer writing into dir.
func New(dir string) *Renderer {
	return &Renderer{Dir: dir}
}

// Path returns the file an artifact name is written to.
func (r *Renderer) Path(name string) string {
	return filepath.Join(r.Dir, name+".xlsx")
}

// BarChart writes the table with a native horizontal bar chart beside it.
func (r *Renderer) BarChart(name string, t analytics.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", TableSheet); err != nil {
		return err
	}
	if err := writeTable(f, TableSheet, t); err != nil {
		return err
	}

	if len(t) > 0 {
		last := len(t) + 1
		err := f.AddChart(TableSheet, chartCell, &excelize.Chart{
			Type: excelize.Bar,
			Series: []excelize.ChartSeries{{
				Name:       fmt.Sprintf("%s!$B$1", TableSheet),
				Categories: fmt.Sprintf("%s!$A$2:$A$%d", TableSheet, last),
				Values:     fmt.Sprintf("%s!$B$2:$B$%d", TableSheet, last),
			}},
			Title:  []excelize.RichTextRun{{Text: name}},
			Legend: excelize.ChartLegend{Position: "none"},
			Dimension: excelize.ChartDimension{
				Width:  640,
				Height: uint(160 + 18*len(t)),
			},
		})
		if err != nil {
			return fmt.Errorf("add chart: %w", err)
		}
	}
	return r.save(f, name)
}

// WordCloud writes the most frequent words, largest first, each in a font
// size scaled to its frequency.
func (r *Renderer) WordCloud(name string, t analytics.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", CloudSheet); err != nil {
		return err
	}
	words := analytics.Reverse(analytics.TopK(t, maxWords))
	if err := writeTable(f, CloudSheet, words); err != nil {
		return err
	}

	lo, hi := 0, 0
	if len(words) > 0 {
		hi, lo = words[0].Count, words[len(words)-1].Count
	}
	styles := make(map[int]int)
	for i, it := range words {
		size := fontSize(it.Count, lo, hi)
		key := int(size * 10)
		style, ok := styles[key]
		if !ok {
			var err error
			style, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Size: size, Bold: size >= maxFont/2}})
			if err != nil {
				return err
			}
			styles[key] = style
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(CloudSheet, cell, cell, style); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(CloudSheet, "A", "A", 40); err != nil {
		return err
	}
	return r.save(f, name)
}

func writeTable(f *excelize.File, sheet string, t analytics.Table) error {
	if err := f.SetSheetRow(sheet, "A1", &[]any{"item", "frequency"}); err != nil {
		return err
	}
	for i, it := range t {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &[]any{it.Key, it.Count}); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) save(f *excelize.File, name string) error {
	if err := os.MkdirAll(r.Dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := f.SaveAs(r.Path(name)); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

func fontSize(count, lo, hi int) float64 {
	if hi <= lo {
		return (minFont + maxFont) / 2
	}
	return minFont + (maxFont-minFont)*float64(count-lo)/float64(hi-lo)
}
