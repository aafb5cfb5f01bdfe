// Package season picks the current season out of the season list and splits
// it into its singles and doubles ladders.
package season

import (
	"errors"

	"github.com/BielosX/wombat/home-scraper/src/home"
)

var ErrNoData = errors.New("no season data")

const UnknownSeasonName = "Unknown Season"

type Format int

const (
	Singles Format = 0
	Doubles Format = 1
)

func (f Format) String() string {
	if f == Doubles {
		return "double"
	}
	return "single"
}

type Record struct {
	CompetitionID string
	RankingType   int
	Timestamp     int64
	Format        Format
	Name          string
}

type Resolution struct {
	SeasonKey  string
	SeasonName string
	Singles    *Record
	Doubles    *Record
}

// Records lists the ladders present, singles first.
func (r *Resolution) Records() []Record {
	var records []Record
	if r.Singles != nil {
		records = append(records, *r.Singles)
	}
	if r.Doubles != nil {
		records = append(records, *r.Doubles)
	}
	return records
}

// Resolve treats the first season in the list as the current one. The
// service has always listed the newest season first but does not document
// that ordering.
func Resolve(list *home.SeasonList) (*Resolution, error) {
	if list == nil || len(list.Seasons) == 0 {
		return nil, ErrNoData
	}
	current := list.Seasons[0]
	result := &Resolution{SeasonKey: current.Key}
	for _, ladder := range current.Ladders {
		if ladder.Record.Rule == nil {
			continue
		}
		switch Format(*ladder.Record.Rule) {
		case Singles:
			if result.Singles == nil {
				result.Singles = toRecord(ladder, Singles)
			}
		case Doubles:
			if result.Doubles == nil {
				result.Doubles = toRecord(ladder, Doubles)
			}
		}
	}
	if result.Singles == nil && result.Doubles == nil {
		return nil, ErrNoData
	}
	base := result.Singles
	if base == nil {
		base = result.Doubles
	}
	result.SeasonName = base.Name
	if result.SeasonName == "" {
		result.SeasonName = UnknownSeasonName
	}
	return result, nil
}

func toRecord(ladder home.Ladder, format Format) *Record {
	cid := ladder.Record.CompetitionID
	if cid == "" {
		cid = ladder.Key
	}
	return &Record{
		CompetitionID: cid,
		RankingType:   ladder.Record.RankingType,
		Timestamp:     ladder.Record.Timestamp,
		Format:        format,
		Name:          ladder.Record.Name,
	}
}
