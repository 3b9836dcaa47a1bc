package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/cognicore/corpora/internal/logger"
)

// Interactive goals.
const (
	goalStatistics   = "statistics"
	goalWordCount    = "wordcount"
	goalWordCloud    = "wordcloud"
	goalMetadataFreq = "metadatafreq"
)

var goals = []string{goalStatistics, goalWordCount, goalWordCloud, goalMetadataFreq}

// interactive asks for a pattern when none was given, builds the corpus once
// and then serves goals until the input ends.
func (s *session) interactive(c *cli.Context) error {
	in := bufio.NewScanner(c.App.Reader)
	out := c.App.Writer

	pattern := c.String("pattern")
	for pattern == "" {
		fmt.Fprint(out, "Enter a file, archive or pattern to load: ")
		if !in.Scan() {
			return in.Err()
		}
		pattern = strings.TrimSpace(in.Text())
	}
	s.build(c, pattern)

	prompt := fmt.Sprintf("What would you like to do (%s)? ", strings.Join(goals, ", "))
	for {
		goal, ok := readLine(in, out, prompt)
		if !ok {
			return in.Err()
		}

		var err error
		switch strings.ToLower(goal) {
		case goalStatistics:
			printStatistics(out, s.engine.Statistics())
		case goalWordCount:
			err = s.runWordCount(c)
		case goalWordCloud:
			err = s.runWordCloud(c)
		case goalMetadataFreq:
			key, ok := readLine(in, out, "Metadata key: ")
			if !ok {
				return in.Err()
			}
			err = s.runMetadataFreq(c, key)
		default:
			continue
		}
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			logger.FromContext(c.Context).Warn("goal failed", zap.String("goal", goal), zap.Error(err))
		}
	}
}

// readLine prompts and returns the next trimmed line. ok is false at the
// end of input.
func readLine(in *bufio.Scanner, out io.Writer, prompt string) (string, bool) {
	fmt.Fprint(out, prompt)
	if !in.Scan() {
		fmt.Fprintln(out)
		return "", false
	}
	return strings.TrimSpace(in.Text()), true
}
