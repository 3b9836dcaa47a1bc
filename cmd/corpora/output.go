package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/cognicore/corpora/pkg/corpora/analytics"
	"github.com/cognicore/corpora/pkg/corpora/store"
)

type jsonReport struct {
	Pattern     string            `json:"pattern"`
	Statistics  analytics.Summary `json:"statistics"`
	TopTokens   analytics.Table   `json:"top_tokens"`
	TopEntities analytics.Table   `json:"top_entities"`
}

// report prints the statistics and both top tables, as text or JSON.
func (s *session) report(c *cli.Context) error {
	if err := s.oneShot(c); err != nil {
		return err
	}
	wc, err := s.engine.WordCount(c.Context)
	if err != nil {
		return err
	}

	if !c.Bool("json") {
		printStatistics(c.App.Writer, s.engine.Statistics())
		printTable(c.App.Writer, "Top tokens", wc.Tokens)
		printTable(c.App.Writer, "Top entities", wc.Entities)
		return nil
	}

	out, err := json.MarshalIndent(jsonReport{
		Pattern:     c.String("pattern"),
		Statistics:  s.engine.Statistics(),
		TopTokens:   analytics.Reverse(wc.Tokens),
		TopEntities: analytics.Reverse(wc.Entities),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	fmt.Fprintln(c.App.Writer, string(out))
	return nil
}

func printStatistics(w io.Writer, s analytics.Summary) {
	fmt.Fprintf(w, "Documents: %d\n", s.Documents)
	fmt.Fprintf(w, "Tokens: %d\n", s.Tokens)
	fmt.Fprintf(w, "Unique tokens: %d\n", s.UniqueTokens)
	fmt.Fprintf(w, "Entities: %d\n", s.Entities)
	fmt.Fprintf(w, "Unique entities: %d\n", s.UniqueEntities)
	fmt.Fprintf(w, "Publication years: %s\n", formatRange(s.PublicationYear))
	fmt.Fprintf(w, "Page counts: %s\n", formatRange(s.PageCount))
	if len(s.Languages) > 0 {
		langs := make([]string, 0, len(s.Languages))
		for lang, n := range s.Languages {
			langs = append(langs, fmt.Sprintf("%s=%d", lang, n))
		}
		sort.Strings(langs)
		fmt.Fprintf(w, "Languages: %s\n", strings.Join(langs, " "))
	}
}

func formatRange(r analytics.Range) string {
	if !r.Valid {
		return "n/a"
	}
	return strconv.FormatFloat(r.Min, 'f', -1, 64) + "-" + strconv.FormatFloat(r.Max, 'f', -1, 64)
}

// printTable lists a table most frequent first.
func printTable(w io.Writer, title string, t analytics.Table) {
	fmt.Fprintf(w, "%s:\n", title)
	if len(t) == 0 {
		fmt.Fprintln(w, "  (none)")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, it := range analytics.Reverse(t) {
		fmt.Fprintf(tw, "  %s\t%d\n", it.Key, it.Count)
	}
	tw.Flush()
}

func printHistory(w io.Writer, reports []store.Report) {
	if len(reports) == 0 {
		fmt.Fprintln(w, "no reports")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tKIND\tITEMS\tCREATED\tPATTERN")
	for _, r := range reports {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", r.ID, r.Kind, len(r.Items),
			r.CreatedAt.Local().Format("2006-01-02 15:04:05"), r.Pattern)
	}
	tw.Flush()
}
