// Package report builds the JSON documents read by the site and writes them
// to the data directory.
package report

import (
	"time"

	"github.com/BielosX/wombat/home-scraper/src/detail"
	"github.com/BielosX/wombat/home-scraper/src/home"
)

const (
	HomeFile    = "pokemon_home_data.json"
	RankingFile = "pokemon_ranking.json"
	DetailFile  = "pokemon_detail_data.json"

	// RankingLimit is how many entries the simplified ranking keeps.
	RankingLimit = 30
)

// FormatDocument is {} when a ladder produced no ranking.
type FormatDocument struct {
	Ranking *home.Ranking `json:"ranking,omitempty"`
	Details *[]detail.Row `json:"details,omitempty"`
}

func NewFormatDocument(ranking *home.Ranking) FormatDocument {
	if ranking == nil {
		return FormatDocument{}
	}
	details := []detail.Row{}
	return FormatDocument{Ranking: ranking, Details: &details}
}

func (d FormatDocument) Entries() []home.RankingEntry {
	if d.Ranking == nil {
		return nil
	}
	return d.Ranking.Entries
}

type HomeDocument struct {
	SeasonName string         `json:"season_name"`
	UpdatedAt  string         `json:"updated_at"`
	Single     FormatDocument `json:"single"`
	Double     FormatDocument `json:"double"`
}

type RankingDocument struct {
	SeasonName    string              `json:"season_name"`
	UpdatedAt     string              `json:"updated_at"`
	SingleRanking []home.RankingEntry `json:"single_ranking"`
	DoubleRanking []home.RankingEntry `json:"double_ranking"`
}

type DetailDocument struct {
	SeasonName string       `json:"season_name"`
	Moves      []detail.Row `json:"moves"`
	Abilities  []detail.Row `json:"abilities"`
	Items      []detail.Row `json:"items"`
	TeraTypes  []detail.Row `json:"tera_types"`
}

func Timestamp(t time.Time) string {
	return t.Format("2006-01-02T15:04:05.000000")
}

func (d HomeDocument) Simplify() RankingDocument {
	return RankingDocument{
		SeasonName:    d.SeasonName,
		UpdatedAt:     d.UpdatedAt,
		SingleRanking: top(d.Single.Entries(), RankingLimit),
		DoubleRanking: top(d.Double.Entries(), RankingLimit),
	}
}

func top(entries []home.RankingEntry, n int) []home.RankingEntry {
	if len(entries) > n {
		entries = entries[:n]
	}
	return append([]home.RankingEntry{}, entries...)
}

func NewDetailDocument(seasonName string, result detail.Result) DetailDocument {
	return DetailDocument{
		SeasonName: seasonName,
		Moves:      nonNil(result.Moves),
		Abilities:  nonNil(result.Abilities),
		Items:      nonNil(result.Items),
		TeraTypes:  nonNil(result.TeraTypes),
	}
}

func nonNil(rows []detail.Row) []detail.Row {
	if rows == nil {
		return []detail.Row{}
	}
	return rows
}
