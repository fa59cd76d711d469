package cmd

import (
	"io"
	"log"
	"time"

	"github.com/jaffee/commandeer"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/brewkit/brewkit/pipeline"
)

// PipelineMain is wrapped by NewPipelineCommand and only exported for testing purposes.
var PipelineMain *pipeline.Main

// NewPipelineCommand returns a new cobra command wrapping PipelineMain.
func NewPipelineCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	PipelineMain = pipeline.NewMain()
	pipelineCommand := &cobra.Command{
		Use:   "pipeline",
		Short: "pipeline - run fetch, transform, aggregate, and check in order",
		Long: `Runs all four stages in one process, stopping at the first failure. Meant
for local runs and smoke tests; production schedules each stage separately.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			if err := PipelineMain.Run(); err != nil {
				return errors.Wrap(err, "running pipeline")
			}
			log.Println("Done: ", time.Since(start))
			return nil
		},
	}
	flags := pipelineCommand.Flags()
	if err := commandeer.Flags(flags, PipelineMain); err != nil {
		panic(err)
	}
	return pipelineCommand
}

func init() {
	subcommandFns["pipeline"] = NewPipelineCommand
}
