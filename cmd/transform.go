package cmd

import (
	"io"
	"log"
	"time"

	"github.com/jaffee/commandeer"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/brewkit/brewkit/silver"
)

// TransformMain is wrapped by NewTransformCommand and only exported for testing purposes.
var TransformMain *silver.Main

// NewTransformCommand returns a new cobra command wrapping TransformMain.
func NewTransformCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	TransformMain = silver.NewMain()
	transformCommand := &cobra.Command{
		Use:   "transform",
		Short: "transform - normalize bronze records into partitioned parquet",
		Long: `Reads the latest bronze run file (or an explicit one), normalizes each
record, drops records missing their grouping keys, and rewrites the silver
parquet tree partitioned by country and state.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			if err := TransformMain.Run(); err != nil {
				return errors.Wrap(err, "running transform")
			}
			log.Println("Done: ", time.Since(start))
			return nil
		},
	}
	flags := transformCommand.Flags()
	if err := commandeer.Flags(flags, TransformMain); err != nil {
		panic(err)
	}
	return transformCommand
}

func init() {
	subcommandFns["transform"] = NewTransformCommand
}
