package dupcmp

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Reporter renders duplicate groups and recorded errors
type Reporter struct {
	format string
	out    io.Writer
	errOut io.Writer
	errFmt *color.Color
}

// NewReporter creates a reporter writing groups to out and errors to errOut
func NewReporter(format string, out, errOut io.Writer) (*Reporter, error) {
	format = strings.ToLower(format)
	if err := ValidateOutputFormat(format); err != nil {
		return nil, err
	}

	errFmt := color.New(color.FgRed)
	if !isTerminal(errOut) {
		errFmt.DisableColor()
	}

	return &Reporter{format: format, out: out, errOut: errOut, errFmt: errFmt}, nil
}

// WriteGroups writes the groups in the configured format, keeping their order
func (r *Reporter) WriteGroups(groups []DuplicateGroup) error {
	var lines [][]byte

	switch r.format {
	case FormatHuman:
		for _, g := range groups {
			for i, m := range g.Members {
				lines = append(lines, fmt.Appendf(nil, "%d %d %s\n", g.Count, i+1, m.Path))
			}
		}
	case FormatFdupes:
		for i, g := range groups {
			if i > 0 {
				lines = append(lines, []byte("\n"))
			}
			for _, m := range g.Members {
				lines = append(lines, fmt.Appendf(nil, "%s\n", m.Path))
			}
		}
	case FormatJSON:
		if groups == nil {
			groups = []DuplicateGroup{}
		}
		data, err := json.MarshalIndent(groups, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode groups: %w", err)
		}
		lines = append(lines, append(data, '\n'))
	}

	if err := writeLines(r.out, lines); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// WriteErrors writes one line per recorded error, in the order they happened
func (r *Reporter) WriteErrors(errs ErrorList) error {
	for _, err := range errs {
		if _, werr := r.errFmt.Fprintln(r.errOut, err.Error()); werr != nil {
			return fmt.Errorf("failed to write error report: %w", werr)
		}
	}
	return nil
}

// WriteStats writes a one-line summary of the run to the error stream
func (r *Reporter) WriteStats(groups []DuplicateGroup, stats Stats) error {
	var dupFiles int
	var reclaimable int64
	for _, g := range groups {
		dupFiles += g.Count - 1
		reclaimable += int64(g.Count-1) * g.Size()
	}
	_, err := fmt.Fprintf(r.errOut,
		"%d candidates in %d directories, %d groups, %d redundant files (%s), %d size rejections, %d content comparisons, %s read\n",
		stats.Candidates, stats.DirsRead, len(groups), dupFiles, humanSize(reclaimable),
		stats.SizeRejects, stats.ContentCompares, humanSize(stats.BytesRead))
	return err
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// writeSequential is the plain io.Writer path for writeLines
func writeSequential(w io.Writer, lines [][]byte) error {
	for _, line := range lines {
		if _, err := w.Write(line); err != nil {
			return err
		}
	}
	return nil
}
