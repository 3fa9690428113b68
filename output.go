package main

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gocarina/gocsv"
	"github.com/jadenpxrk/sizeband/majority"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by --format.
const (
	formatText = "text"
	formatYAML = "yaml"
	formatCSV  = "csv"
)

// render produces the report for all inputs in the requested format.
func render(format string, reports []InputReport) (string, error) {
	switch strings.ToLower(format) {
	case "", formatText:
		return renderText(reports), nil
	case formatYAML:
		return renderYAML(reports)
	case formatCSV:
		return renderCSV(reports)
	default:
		return "", fmt.Errorf("unsupported output format: %s. Use 'text', 'yaml' or 'csv'", format)
	}
}

// massNoun names what a share is a share of.
func massNoun(m majority.Mass) string {
	if m == majority.MassFiles {
		return "files"
	}
	return "space"
}

// answer is the one-sentence summary of a result.
func answer(res majority.Result) string {
	p := res.Projection
	return fmt.Sprintf("Majority of files (%.2f%% of %s) have sizes between %s and %s",
		p.Share*100, massNoun(res.Config.Mass), formatBytes(p.Low), formatBytes(p.High))
}

func formatBytes(n int64) string {
	if n < 1024 {
		return fmt.Sprintf("%d B", n)
	}
	return fmt.Sprintf("%s (%d B)", humanize.IBytes(uint64(n)), n)
}

// renderText generates the human-readable report.
func renderText(reports []InputReport) string {
	var builder strings.Builder
	for i, r := range reports {
		if i > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString(fmt.Sprintf("=== %s\n", r.Input))
		if r.Err != nil {
			builder.WriteString(fmt.Sprintf("Error: %v\n", r.Err))
			continue
		}

		res := r.Result
		p := res.Projection
		builder.WriteString(fmt.Sprintf("Files: %s, total %s\n", humanize.Comma(int64(p.Total)), humanize.IBytes(uint64(p.TotalBytes))))
		builder.WriteString(fmt.Sprintf("Search: minimal %s holding %.0f%% of %s\n",
			res.Config.Objective, res.Config.MajorityCoeff*100, massNoun(res.Config.Mass)))
		builder.WriteString(fmt.Sprintf("Interval: %s, %s files (%.2f%% of files), span %s\n",
			p.Interval, humanize.Comma(int64(p.Count)), p.FileShare*100, humanize.IBytes(uint64(p.Span()))))
		builder.WriteString(answer(res))
		builder.WriteString("\n\n")

		builder.WriteString(fmt.Sprintf("%-8s %-17s %12s %9s\n", "Segment", "Positions", "Files", "Share"))
		for _, s := range p.Segments {
			builder.WriteString(fmt.Sprintf("%-8s %-17s %12s %8.2f%%\n",
				s.Kind, s.Interval, humanize.Comma(int64(s.Count)), s.Mass*100))
		}
	}

	summary := summarize(reports)
	builder.WriteString("\n--- Summary ---\n")
	builder.WriteString(fmt.Sprintf("Inputs analyzed: %d\n", summary.TotalInputs-summary.FailedInputs))
	builder.WriteString(fmt.Sprintf("Total files: %d\n", summary.TotalFiles))
	builder.WriteString(fmt.Sprintf("Total size: %d bytes\n", summary.TotalSize))
	if summary.FailedInputs > 0 {
		builder.WriteString(fmt.Sprintf("Inputs failed: %d\n", summary.FailedInputs))
	}
	return builder.String()
}

type yamlReport struct {
	Input  string           `yaml:"input"`
	Files  int              `yaml:"files"`
	Error  string           `yaml:"error,omitempty"`
	Answer string           `yaml:"answer,omitempty"`
	Result *majority.Result `yaml:"result,omitempty"`
}

func renderYAML(reports []InputReport) (string, error) {
	out := make([]yamlReport, 0, len(reports))
	for _, r := range reports {
		yr := yamlReport{Input: r.Input, Files: r.Files}
		if r.Err != nil {
			yr.Error = r.Err.Error()
		} else {
			res := r.Result
			yr.Answer = answer(res)
			yr.Result = &res
		}
		out = append(out, yr)
	}
	data, err := yaml.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("marshal yaml report: %w", err)
	}
	return string(data), nil
}

// segmentRow is one line of the CSV report.
type segmentRow struct {
	Input   string  `csv:"input"`
	Segment string  `csv:"segment"`
	L       int     `csv:"l"`
	R       int     `csv:"r"`
	Files   int     `csv:"files"`
	Mass    float64 `csv:"mass"`
	Low     int64   `csv:"low"`
	High    int64   `csv:"high"`
	Error   string  `csv:"error"`
}

func renderCSV(reports []InputReport) (string, error) {
	rows := []segmentRow{}
	for _, r := range reports {
		if r.Err != nil {
			rows = append(rows, segmentRow{Input: r.Input, Error: r.Err.Error()})
			continue
		}
		sorted := r.Result.Sorted
		for _, s := range r.Result.Projection.Segments {
			rows = append(rows, segmentRow{
				Input:   r.Input,
				Segment: string(s.Kind),
				L:       s.Interval.L,
				R:       s.Interval.R,
				Files:   s.Count,
				Mass:    s.Mass,
				Low:     sorted[s.Interval.L-1],
				High:    sorted[s.Interval.R-1],
			})
		}
	}
	out, err := gocsv.MarshalString(&rows)
	if err != nil {
		return "", fmt.Errorf("marshal csv report: %w", err)
	}
	return out, nil
}
