// brewkit ingests brewery records from the Open Brewery DB API and lands them
// in a three layer filesystem tree, medallion style.
//
// 1. Bronze
//
//	The fetch stage pages through the API and writes every record it saw,
//	verbatim, to one timestamped JSON file per run. Bronze files are never
//	modified after they are written.
//
// 2. Silver
//
//	The transform stage reads the latest bronze file, normalizes field types
//	(coordinates to floats, missing strings to "unknown", a geohash column
//	where coordinates exist), drops records that are missing the partition
//	keys, and writes parquet files partitioned by country and state.
//
// 3. Gold
//
//	The aggregate stage recomputes a single summary parquet file from the
//	whole silver tree: brewery counts grouped by brewery type, country, and
//	state. The check stage then asserts the summary is non-empty and that no
//	grouping column is blank.
//
// Each stage is a subcommand of the brewkit binary and is meant to be run as
// a discrete task by an external orchestrator, which owns scheduling and
// retries. Stages do not retry; errors propagate to a non-zero exit status.
package brewkit
