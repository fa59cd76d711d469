package cmd

import (
	"io"
	"log"
	"time"

	"github.com/jaffee/commandeer"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/brewkit/brewkit/gold"
)

// AggregateMain is wrapped by NewAggregateCommand and only exported for testing purposes.
var AggregateMain *gold.Main

// NewAggregateCommand returns a new cobra command wrapping AggregateMain.
func NewAggregateCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	AggregateMain = gold.NewMain()
	aggregateCommand := &cobra.Command{
		Use:   "aggregate",
		Short: "aggregate - count breweries per type and location",
		Long: `Reads the whole silver tree and writes a single gold parquet file with
brewery counts grouped by type, country, and state.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			if err := AggregateMain.Run(); err != nil {
				return errors.Wrap(err, "running aggregate")
			}
			log.Println("Done: ", time.Since(start))
			return nil
		},
	}
	flags := aggregateCommand.Flags()
	if err := commandeer.Flags(flags, AggregateMain); err != nil {
		panic(err)
	}
	return aggregateCommand
}

func init() {
	subcommandFns["aggregate"] = NewAggregateCommand
}
