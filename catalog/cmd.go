package catalog

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/pkg/errors"
)

// Main holds the config for the runs command, which lists recorded pipeline
// runs, most recent first.
type Main struct {
	Catalog string `help:"Path to the bolt run catalog."`
	N       int    `help:"Show at most this many recent runs. 0 shows all."`

	out io.Writer
}

// NewMain gets a new Main with default values.
func NewMain() *Main {
	return &Main{
		Catalog: "brewkit_runs.db",
		out:     os.Stdout,
	}
}

// SetOutput redirects the listing, used by tests.
func (m *Main) SetOutput(w io.Writer) {
	m.out = w
}

// Run lists the recorded runs.
func (m *Main) Run() error {
	if _, err := os.Stat(m.Catalog); err != nil {
		return errors.Wrapf(err, "no catalog at '%s'", m.Catalog)
	}
	c, err := Open(m.Catalog)
	if err != nil {
		return err
	}
	defer c.Close()

	runs, err := c.Runs()
	if err != nil {
		return errors.Wrap(err, "reading runs")
	}
	// newest first
	for i, j := 0, len(runs)-1; i < j; i, j = i+1, j-1 {
		runs[i], runs[j] = runs[j], runs[i]
	}
	if m.N > 0 && len(runs) > m.N {
		runs = runs[:m.N]
	}

	tw := tabwriter.NewWriter(m.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "STAGE\tSTARTED\tDURATION\tROWS\tOUTPUT")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
			r.Stage, r.Started.Format("2006-01-02 15:04:05"),
			r.Duration.Round(time.Millisecond), r.Rows, r.Output)
	}
	return errors.Wrap(tw.Flush(), "flushing output")
}
