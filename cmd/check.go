package cmd

import (
	"io"
	"log"
	"time"

	"github.com/jaffee/commandeer"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/brewkit/brewkit/quality"
)

// CheckMain is wrapped by NewCheckCommand and only exported for testing purposes.
var CheckMain *quality.Main

// NewCheckCommand returns a new cobra command wrapping CheckMain.
func NewCheckCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	CheckMain = quality.NewMain()
	checkCommand := &cobra.Command{
		Use:   "check",
		Short: "check - validate the aggregated gold output",
		Long: `Asserts that the gold file has rows and that no grouping column is blank.
Exits non-zero on failure so an orchestrator can halt downstream consumers.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			if err := CheckMain.Run(); err != nil {
				return errors.Wrap(err, "running check")
			}
			log.Println("Done: ", time.Since(start))
			return nil
		},
	}
	flags := checkCommand.Flags()
	if err := commandeer.Flags(flags, CheckMain); err != nil {
		panic(err)
	}
	return checkCommand
}

func init() {
	subcommandFns["check"] = NewCheckCommand
}
