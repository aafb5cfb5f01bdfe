package parquet

import "github.com/BielosX/wombat/home-scraper/src/detail"

type UsageRow struct {
	Season      string `parquet:"name=season, type=BYTE_ARRAY, convertedtype=UTF8"`
	Kind        string `parquet:"name=kind, type=BYTE_ARRAY, convertedtype=UTF8"`
	PokemonID   string `parquet:"name=pokemon_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	PokemonName string `parquet:"name=pokemon_name, type=BYTE_ARRAY, convertedtype=UTF8"`
	FormID      string `parquet:"name=form_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	Rank        int32  `parquet:"name=rank, type=INT32"`
	Subject     string `parquet:"name=subject, type=BYTE_ARRAY, convertedtype=UTF8"`
	UsageRate   string `parquet:"name=usage_rate, type=BYTE_ARRAY, convertedtype=UTF8"`
}

func ToUsageRow(seasonName string, row detail.Row) UsageRow {
	return UsageRow{
		Season:      seasonName,
		Kind:        row.Kind.String(),
		PokemonID:   row.PokemonID,
		PokemonName: row.PokemonName,
		FormID:      row.FormID,
		Rank:        int32(row.Rank),
		Subject:     row.Subject,
		UsageRate:   row.Rate(),
	}
}
