// Package detail turns pdetail pages into flat, name-decoded usage rows.
package detail

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/BielosX/wombat/home-scraper/src/home"
	"github.com/BielosX/wombat/home-scraper/src/lookup"
	"github.com/BielosX/wombat/home-scraper/src/season"
)

// PageCount is the number of pdetail pages the service publishes per ladder.
const PageCount = 6

type PageSource interface {
	GetDetailPage(ctx context.Context, cid string, rst int, ts int64, page int) (home.DetailPage, error)
}

// Aggregate folds one page into rows. Ranks follow the upstream order of
// each list and start at 1.
func Aggregate(page home.DetailPage, tables lookup.Tables) Result {
	var result Result
	for _, pokemon := range page {
		name := pokemonName(pokemon.PokemonID, tables.Pokemon)
		for _, form := range pokemon.Forms {
			if form.Usage == nil {
				continue
			}
			lists := []struct {
				kind    Kind
				entries []home.UsageEntry
				table   lookup.Table
			}{
				{KindMove, form.Usage.Moves, tables.Move},
				{KindAbility, form.Usage.Abilities, tables.Ability},
				{KindItem, form.Usage.Items, tables.Item},
				{KindTeraType, form.Usage.TeraTypes, tables.Type},
			}
			for _, list := range lists {
				for i, entry := range list.entries {
					result.appendRow(Row{
						Kind:        list.kind,
						PokemonID:   pokemon.PokemonID,
						PokemonName: name,
						FormID:      form.FormID,
						Rank:        i + 1,
						Subject:     list.table.RawName(entry.ID),
						UsageRate:   entry.Val,
					})
				}
			}
		}
	}
	return result
}

// Pokémon ids start at 1 while the name table is 0-indexed.
func pokemonName(id string, table lookup.Table) string {
	n, err := strconv.Atoi(id)
	if err != nil {
		return lookup.Unknown(id)
	}
	return table.Index(n - 1)
}

type Fetcher struct {
	source PageSource
	tables lookup.Tables
	sugar  *zap.SugaredLogger
}

func NewFetcher(source PageSource, tables lookup.Tables, sugar *zap.SugaredLogger) *Fetcher {
	return &Fetcher{
		source: source,
		tables: tables,
		sugar:  sugar,
	}
}

// FetchAll reads pages 1 through PageCount one after another. A page that
// fails is logged and contributes nothing.
func (f *Fetcher) FetchAll(ctx context.Context, record season.Record) Result {
	var result Result
	for page := 1; page <= PageCount; page++ {
		f.sugar.Infof("Fetching detail page %d/%d", page, PageCount)
		detailPage, err := f.source.GetDetailPage(ctx, record.CompetitionID, record.RankingType, record.Timestamp, page)
		if err != nil {
			f.sugar.Errorf("Failed to fetch detail page %d: %s", page, err)
			continue
		}
		result.Extend(Aggregate(detailPage, f.tables))
	}
	return result
}
