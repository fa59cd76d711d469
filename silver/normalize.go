// Package silver is the cleaned layer: bronze records with types coerced,
// missing optional fields filled, and a parquet tree partitioned by country
// and state.
package silver

import (
	"github.com/mmcloughlin/geohash"

	"github.com/brewkit/brewkit"
)

// Unknown fills optional string fields that the API left empty, so nulls
// never propagate into the silver or gold layers.
const Unknown = "unknown"

// DefaultGeohashPrecision gives ~1.2km cells, enough to group breweries by
// neighborhood without pretending the coordinates are survey-grade.
const DefaultGeohashPrecision = 6

// Normalizer turns raw bronze records into Normalized records. Records
// missing brewery_type or state are dropped: both are required downstream,
// one as a grouping key and one as a partition key, and a record without
// them can't be placed. The dropped count is reported through Stats and Log.
type Normalizer struct {
	GeohashPrecision uint
	Log              brewkit.Logger
	Stats            brewkit.Statter
}

// NewNormalizer gets a Normalizer with default values.
func NewNormalizer() *Normalizer {
	return &Normalizer{
		GeohashPrecision: DefaultGeohashPrecision,
		Log:              brewkit.NopLogger{},
		Stats:            brewkit.NopStatter{},
	}
}

// Normalize converts each raw record, dropping the ones missing required
// partition keys. Output order follows input order.
func (n *Normalizer) Normalize(records []map[string]interface{}) []brewkit.Normalized {
	out := make([]brewkit.Normalized, 0, len(records))
	dropped := 0
	for _, raw := range records {
		rec, ok := n.one(raw)
		if !ok {
			dropped++
			continue
		}
		out = append(out, rec)
	}
	if dropped > 0 {
		n.Log.Printf("dropped %d records with missing brewery_type or state", dropped)
	}
	n.Stats.Count("records-normalized", int64(len(out)), 1)
	n.Stats.Count("records-dropped", int64(dropped), 1)
	return out
}

func (n *Normalizer) one(raw map[string]interface{}) (brewkit.Normalized, bool) {
	fields := brewkit.LowerKeys(raw)

	breweryType := brewkit.StringField(fields["brewery_type"])
	state := brewkit.StringField(fields["state"])
	if breweryType == "" || state == "" {
		return brewkit.Normalized{}, false
	}

	rec := brewkit.Normalized{
		ID:            brewkit.StringField(fields["id"]),
		Name:          brewkit.StringField(fields["name"]),
		BreweryType:   breweryType,
		State:         state,
		Address1:      orUnknown(fields["address_1"]),
		Address2:      orUnknown(fields["address_2"]),
		Address3:      orUnknown(fields["address_3"]),
		Street:        orUnknown(fields["street"]),
		City:          orUnknown(fields["city"]),
		StateProvince: orUnknown(fields["state_province"]),
		PostalCode:    orUnknown(fields["postal_code"]),
		Country:       orUnknown(fields["country"]),
		Phone:         orUnknown(fields["phone"]),
		WebsiteURL:    orUnknown(fields["website_url"]),
		Latitude:      brewkit.FloatField(fields["latitude"]),
		Longitude:     brewkit.FloatField(fields["longitude"]),
	}
	if rec.Latitude != nil && rec.Longitude != nil {
		rec.Geohash = geohash.EncodeWithPrecision(*rec.Latitude, *rec.Longitude, n.GeohashPrecision)
	}
	return rec, true
}

func orUnknown(v interface{}) string {
	if s := brewkit.StringField(v); s != "" {
		return s
	}
	return Unknown
}
