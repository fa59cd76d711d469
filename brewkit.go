// Package brewkit holds the record types and small interfaces shared by the
// pipeline stages. The stages themselves live in sub-packages (openbrewery,
// bronze, silver, gold, quality) and are wired to the brewkit binary in cmd.
package brewkit

// Layer names, used for run bookkeeping and log messages.
const (
	LayerBronze = "bronze"
	LayerSilver = "silver"
	LayerGold   = "gold"
	LayerCheck  = "check"
)

// Normalized is one brewery after silver normalization. Country and State are
// also materialized as partition directories, but stay in the file so every
// parquet file is self-describing.
type Normalized struct {
	ID            string   `parquet:"name=id,type=BYTE_ARRAY,convertedtype=UTF8"`
	Name          string   `parquet:"name=name,type=BYTE_ARRAY,convertedtype=UTF8"`
	BreweryType   string   `parquet:"name=brewery_type,type=BYTE_ARRAY,convertedtype=UTF8"`
	Address1      string   `parquet:"name=address_1,type=BYTE_ARRAY,convertedtype=UTF8"`
	Address2      string   `parquet:"name=address_2,type=BYTE_ARRAY,convertedtype=UTF8"`
	Address3      string   `parquet:"name=address_3,type=BYTE_ARRAY,convertedtype=UTF8"`
	Street        string   `parquet:"name=street,type=BYTE_ARRAY,convertedtype=UTF8"`
	City          string   `parquet:"name=city,type=BYTE_ARRAY,convertedtype=UTF8"`
	StateProvince string   `parquet:"name=state_province,type=BYTE_ARRAY,convertedtype=UTF8"`
	PostalCode    string   `parquet:"name=postal_code,type=BYTE_ARRAY,convertedtype=UTF8"`
	Country       string   `parquet:"name=country,type=BYTE_ARRAY,convertedtype=UTF8"`
	State         string   `parquet:"name=state,type=BYTE_ARRAY,convertedtype=UTF8"`
	Phone         string   `parquet:"name=phone,type=BYTE_ARRAY,convertedtype=UTF8"`
	WebsiteURL    string   `parquet:"name=website_url,type=BYTE_ARRAY,convertedtype=UTF8"`
	Longitude     *float64 `parquet:"name=longitude,type=DOUBLE,repetitiontype=OPTIONAL"`
	Latitude      *float64 `parquet:"name=latitude,type=DOUBLE,repetitiontype=OPTIONAL"`
	Geohash       string   `parquet:"name=geohash,type=BYTE_ARRAY,convertedtype=UTF8"`
}

// TypeCount is one gold aggregate row: the number of breweries for a
// (brewery_type, country, state) group.
type TypeCount struct {
	BreweryType  string `parquet:"name=brewery_type,type=BYTE_ARRAY,convertedtype=UTF8"`
	Country      string `parquet:"name=country,type=BYTE_ARRAY,convertedtype=UTF8"`
	State        string `parquet:"name=state,type=BYTE_ARRAY,convertedtype=UTF8"`
	BreweryCount int64  `parquet:"name=brewery_count,type=INT64"`
}
