package cmd

import (
	"io"

	"github.com/jaffee/commandeer"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/brewkit/brewkit/catalog"
)

// RunsMain is wrapped by NewRunsCommand and only exported for testing purposes.
var RunsMain *catalog.Main

// NewRunsCommand returns a new cobra command wrapping RunsMain.
func NewRunsCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	RunsMain = catalog.NewMain()
	RunsMain.SetOutput(stdout)
	runsCommand := &cobra.Command{
		Use:   "runs",
		Short: "runs - list recorded pipeline runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := RunsMain.Run(); err != nil {
				return errors.Wrap(err, "listing runs")
			}
			return nil
		},
	}
	flags := runsCommand.Flags()
	if err := commandeer.Flags(flags, RunsMain); err != nil {
		panic(err)
	}
	return runsCommand
}

func init() {
	subcommandFns["runs"] = NewRunsCommand
}
