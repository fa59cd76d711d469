package cmd

import (
	"io"
	"log"
	"time"

	"github.com/jaffee/commandeer"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/brewkit/brewkit/bronze"
)

// FetchMain is wrapped by NewFetchCommand and only exported for testing purposes.
var FetchMain *bronze.Main

// NewFetchCommand returns a new cobra command wrapping FetchMain.
func NewFetchCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	FetchMain = bronze.NewMain()
	fetchCommand := &cobra.Command{
		Use:   "fetch",
		Short: "fetch - pull brewery records into the bronze layer",
		Long: `Pages through the brewery listing API and writes every record, untouched,
to a timestamped JSON file in the bronze directory. Optionally archives the
file to S3.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			if err := FetchMain.Run(); err != nil {
				return errors.Wrap(err, "running fetch")
			}
			log.Println("Done: ", time.Since(start))
			return nil
		},
	}
	flags := fetchCommand.Flags()
	if err := commandeer.Flags(flags, FetchMain); err != nil {
		panic(err)
	}
	return fetchCommand
}

func init() {
	subcommandFns["fetch"] = NewFetchCommand
}
