// Package scraper runs one fetch of the ranked battle data and publishes
// the resulting documents.
package scraper

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/BielosX/wombat/home-scraper/src/config"
	"github.com/BielosX/wombat/home-scraper/src/ddb"
	"github.com/BielosX/wombat/home-scraper/src/detail"
	"github.com/BielosX/wombat/home-scraper/src/home"
	"github.com/BielosX/wombat/home-scraper/src/report"
	"github.com/BielosX/wombat/home-scraper/src/s3"
	"github.com/BielosX/wombat/home-scraper/src/season"
)

type Upstream interface {
	ListSeasons(ctx context.Context) (*home.SeasonList, error)
	GetRanking(ctx context.Context, cid string, rst int, ts int64) (*home.Ranking, error)
	detail.PageSource
}

type Scraper struct {
	upstream Upstream
	cfg      config.Config
	writer   *report.Writer
	uploader *s3.Client
	table    ddb.DynamoDBAPI
	sugar    *zap.SugaredLogger
	now      func() time.Time
}

type Option func(*Scraper)

func WithUploader(uploader *s3.Client) Option {
	return func(s *Scraper) {
		s.uploader = uploader
	}
}

func WithRankingTable(api ddb.DynamoDBAPI) Option {
	return func(s *Scraper) {
		s.table = api
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Scraper) {
		s.now = now
	}
}

func New(upstream Upstream, cfg config.Config, sugar *zap.SugaredLogger, opts ...Option) *Scraper {
	s := &Scraper{
		upstream: upstream,
		cfg:      cfg,
		writer:   report.NewWriter(cfg.DataDir, sugar),
		sugar:    sugar,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Scraper) resolveSeason(ctx context.Context) (*season.Resolution, error) {
	list, err := s.upstream.ListSeasons(ctx)
	if err != nil {
		s.sugar.Errorf("Error fetching season list: %s", err)
		return nil, fmt.Errorf("%w: %w", season.ErrNoData, err)
	}
	resolution, err := season.Resolve(list)
	if err != nil {
		s.sugar.Errorf("No valid battle data found: %s", err)
		return nil, err
	}
	return resolution, nil
}

// fetchRanking returns nil when the ranking could not be read; the other
// ladder is still fetched.
func (s *Scraper) fetchRanking(ctx context.Context, record season.Record) *home.Ranking {
	s.sugar.Infof("Fetching %s battle data, cid: %s", record.Format, record.CompetitionID)
	ranking, err := s.upstream.GetRanking(ctx, record.CompetitionID, record.RankingType, record.Timestamp)
	if err != nil {
		s.sugar.Errorf("Error fetching %s ranking: %s", record.Format, err)
		return nil
	}
	top := ranking.Top(report.RankingLimit)
	s.sugar.Infof("Got %d %s ranking entries (%s response)", len(top.Entries), record.Format, ranking.Shape)
	return &top
}

func (s *Scraper) RunRankings(ctx context.Context) error {
	resolution, err := s.resolveSeason(ctx)
	if err != nil {
		return err
	}
	s.sugar.Infof("Fetching data for season: %s", resolution.SeasonName)
	document := report.HomeDocument{
		SeasonName: resolution.SeasonName,
		UpdatedAt:  report.Timestamp(s.now()),
		Single:     report.FormatDocument{},
		Double:     report.FormatDocument{},
	}
	fetched := 0
	for _, record := range resolution.Records() {
		ranking := s.fetchRanking(ctx, record)
		if ranking != nil {
			fetched++
		}
		switch record.Format {
		case season.Singles:
			document.Single = report.NewFormatDocument(ranking)
		case season.Doubles:
			document.Double = report.NewFormatDocument(ranking)
		}
	}
	if fetched == 0 {
		return fmt.Errorf("%w: no ranking fetched for %s", season.ErrNoData, resolution.SeasonName)
	}

	if err := s.publishDocument(ctx, report.HomeFile, document); err != nil {
		return err
	}
	simple := document.Simplify()
	if err := s.publishDocument(ctx, report.RankingFile, simple); err != nil {
		return err
	}
	return s.storeRankings(ctx, simple)
}

func (s *Scraper) RunDetails(ctx context.Context, fetcher *detail.Fetcher) error {
	resolution, err := s.resolveSeason(ctx)
	if err != nil {
		return err
	}
	if resolution.Singles == nil {
		s.sugar.Errorf("No single battle data found")
		return fmt.Errorf("%w: season %s has no singles ladder", season.ErrNoData, resolution.SeasonKey)
	}
	s.sugar.Infof("Fetching detailed data for season: %s", resolution.SeasonName)
	result := fetcher.FetchAll(ctx, *resolution.Singles)

	document := report.NewDetailDocument(resolution.SeasonName, result)
	if err := s.publishDocument(ctx, report.DetailFile, document); err != nil {
		return err
	}
	s.sugar.Infof("Moves: %d entries, Abilities: %d entries, Items: %d entries, Tera Types: %d entries",
		len(document.Moves),
		len(document.Abilities),
		len(document.Items),
		len(document.TeraTypes))
	return s.exportUsage(ctx, resolution.SeasonName, result)
}

func (s *Scraper) publishDocument(ctx context.Context, name string, document any) error {
	data, err := report.Encode(document)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}
	return s.publish(ctx, name, data, "application/json")
}

func (s *Scraper) publish(ctx context.Context, name string, data []byte, contentType string) error {
	if _, err := s.writer.Write(name, data); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	if s.uploader == nil {
		return nil
	}
	s.sugar.Infof("Sending %s of size %d to S3", name, len(data))
	key, err := s.uploader.PutFile(ctx, bytes.NewReader(data), s.cfg.Bucket, name, contentType)
	if err != nil {
		return fmt.Errorf("uploading %s: %w", key, err)
	}
	return nil
}

func (s *Scraper) storeRankings(ctx context.Context, document report.RankingDocument) error {
	if s.table == nil {
		return nil
	}
	var rows []ddb.RankingRow
	ladders := []struct {
		format  season.Format
		entries []home.RankingEntry
	}{
		{season.Singles, document.SingleRanking},
		{season.Doubles, document.DoubleRanking},
	}
	for _, ladder := range ladders {
		for i, entry := range ladder.entries {
			identity, err := entry.Identity()
			if err != nil {
				s.sugar.Warnf("Skipping %s ranking entry %d: %s", ladder.format, i+1, err)
				continue
			}
			rows = append(rows, ddb.RankingRow{
				Season:    document.SeasonName,
				Format:    ladder.format.String(),
				Rank:      i + 1,
				PokemonID: identity.ID,
				Form:      identity.Form,
			})
		}
	}
	if err := ddb.PutRankingRows(ctx, s.table, s.cfg.RankingTable, rows); err != nil {
		return err
	}
	s.sugar.Infof("Stored %d ranking rows in %s", len(rows), s.cfg.RankingTable)
	return nil
}
