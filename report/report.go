// Package report renders the results of a port check for people and scripts.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/liamg/portcheck/scan"
)

type Format string

const (
	FormatTable Format = "table"
	FormatText  Format = "text"
	FormatJSON  Format = "json"
)

func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case FormatTable, FormatText, FormatJSON:
		return f, nil
	}
	return "", fmt.Errorf("Unknown output format '%s'", name)
}

type Report struct {
	Domain  string
	Host    *Host
	Results []scan.Result
	Elapsed time.Duration
}

// OpenOnly returns a copy of the report without closed ports.
func (r Report) OpenOnly() Report {
	r.Results = scan.OpenResults(r.Results)
	return r
}

func (r Report) Write(w io.Writer, format Format) error {
	switch format {
	case FormatJSON:
		return r.writeJSON(w)
	case FormatText:
		return r.writeText(w)
	default:
		return r.writeTable(w)
	}
}

func (r Report) title() string {
	if r.Host != nil {
		return fmt.Sprintf("Check results for host %s", r.Host)
	}
	return fmt.Sprintf("Check results for host %s", r.Domain)
}

func (r Report) writeTable(w io.Writer) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(r.title())
	t.AppendHeader(table.Row{"Port", "Protocol", "State", "Service"})
	for _, result := range r.Results {
		t.AppendRow(table.Row{result.Port, result.Protocol, result.State(), result.Service()})
	}
	if r.Elapsed > 0 {
		t.AppendFooter(table.Row{"", "", "Elapsed", r.Elapsed.Round(time.Millisecond).String()})
	}
	t.Render()
	return nil
}

func (r Report) writeText(w io.Writer) error {
	text := r.title() + "\n"
	if len(r.Results) > 0 {
		text = fmt.Sprintf("%s\t%s\t%s\t%s\n", text, "PORT      ", "STATE     ", "SERVICE")
	}
	for _, result := range r.Results {
		text = fmt.Sprintf("%s\t%s\n", text, result.String())
	}
	_, err := io.WriteString(w, text)
	return err
}

func (r Report) writeJSON(w io.Writer) error {
	results := r.Results
	if results == nil {
		results = []scan.Result{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(struct {
		Domain  string        `json:"domain"`
		Results []scan.Result `json:"results"`
	}{
		Domain:  r.Domain,
		Results: results,
	})
}
