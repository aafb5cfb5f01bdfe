package scraper

import (
	"context"
	"errors"
	"fmt"

	"github.com/BielosX/wombat/home-scraper/src/csv"
	"github.com/BielosX/wombat/home-scraper/src/detail"
	"github.com/BielosX/wombat/home-scraper/src/parquet"
)

const (
	UsageParquetFile = "usage.parquet"
	UsageCsvFile     = "usage.csv"
)

// exportUsage writes every detail row as one flat table, once as parquet
// and once as CSV.
func (s *Scraper) exportUsage(ctx context.Context, seasonName string, result detail.Result) error {
	rows := result.All()
	if len(rows) == 0 {
		s.sugar.Infof("No usage rows to export")
		return nil
	}
	parquetWriter, err := parquet.NewUsageWriter()
	if err != nil {
		s.sugar.Errorf("Failed to create Usage Parquet Writer: %s", err)
		return err
	}
	csvWriter := csv.NewUsageWriter()
	if err := csvWriter.WriteHeader(); err != nil {
		return err
	}
	for _, row := range rows {
		entry := parquet.ToUsageRow(seasonName, row)
		if err := parquetWriter.WriteRow(&entry); err != nil {
			s.sugar.Errorf("Error writing usage row to Parquet: %s", err)
			return err
		}
		if err := csvWriter.Write(entry); err != nil {
			s.sugar.Errorf("Error writing usage row to CSV: %s", err)
			return err
		}
	}
	if err := parquetWriter.Finish(); err != nil {
		return fmt.Errorf("finishing parquet: %w", err)
	}
	if err := csvWriter.Finish(); err != nil {
		return fmt.Errorf("finishing csv: %w", err)
	}
	s.sugar.Infof("Exporting %d usage rows, parquet file of size %d, csv file of size %d",
		len(rows), parquetWriter.Size(), csvWriter.Size())
	return errors.Join(
		s.publish(ctx, UsageParquetFile, parquetWriter.Bytes(), "application/vnd.apache.parquet"),
		s.publish(ctx, UsageCsvFile, csvWriter.Bytes(), "text/csv"),
	)
}
