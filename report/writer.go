// Package report exports finished pipeline runs as Markdown files.
package report

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/nao1215/markdown"

	"github.com/nexxia-ai/leadgen"
)

// Writer renders a completed pipeline state to Markdown. The editor already
// produces the report body; Writer prefixes it with a run metadata table so
// exported files are self-describing.
type Writer struct {
	output io.Writer

	// now is swappable in tests.
	now func() time.Time
}

// NewWriter returns a Writer that renders to output.
func NewWriter(output io.Writer) *Writer {
	return &Writer{output: output, now: time.Now}
}

// Write renders the metadata header and report body for state.
func (w *Writer) Write(state *leadgen.State) error {
	md := markdown.NewMarkdown(w.output)

	md.H1("Lead Generation Run")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Job ID", "`" + state.Params.JobID + "`"},
			{"Target", state.Params.TargetDescription()},
			{"Outreach Channels", state.Params.OutreachChannels},
			{"Documents Enriched", strconv.Itoa(countDocs(state))},
			{"Briefings", strconv.Itoa(len(state.Briefings))},
			{"Exported", w.now().Format("2006-01-02 15:04:05 MST")},
		},
	})
	md.PlainText("")
	md.HorizontalRule()
	md.PlainText("")

	if state.Report != "" {
		md.PlainText(state.Report)
	} else {
		md.PlainText("No report was generated for this run.")
		if state.Err != "" {
			md.PlainText("")
			md.PlainText("Error: " + state.Err)
		}
	}

	return md.Build()
}

// WriteFile exports the report for state to path.
func WriteFile(path string, state *leadgen.State) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	defer f.Close()

	if err := NewWriter(f).Write(state); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return f.Close()
}

func countDocs(state *leadgen.State) int {
	n := 0
	for _, docs := range state.EnrichedDocs {
		n += len(docs)
	}
	return n
}
