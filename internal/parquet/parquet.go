// Package parquet exports normalized play events to a parquet file for
// downstream analysis outside this tool.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/thenickcox/spotify-rediscover/internal/history"
)

// PlayRow is the parquet schema for one play event. Ts is null for events
// whose timestamp was absent or unparseable; those rows also carry an
// empty month.
type PlayRow struct {
	Ts       *time.Time `parquet:"ts,optional,snappy"`
	Month    string     `parquet:"month,snappy"`
	MsPlayed int64      `parquet:"ms_played,snappy"`
	Artist   string     `parquet:"artist,snappy"`
	Album    string     `parquet:"album,snappy"`
	Track    string     `parquet:"track,snappy"`
	Podcast  bool       `parquet:"podcast,snappy"`
}

// WritePlays writes one row per event. The schema is inferred from the
// PlayRow struct tags.
func WritePlays(events []history.PlayEvent, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("creating parquet file: %w", err)
	}
	defer file.Close()

	writer := parquet.NewGenericWriter[PlayRow](file)
	if _, err := writer.Write(toRows(events)); err != nil {
		writer.Close()
		return fmt.Errorf("writing parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("closing parquet writer: %w", err)
	}
	return nil
}

func toRows(events []history.PlayEvent) []PlayRow {
	rows := make([]PlayRow, len(events))
	for i, e := range events {
		row := PlayRow{
			MsPlayed: e.MS,
			Artist:   e.Artist,
			Album:    e.Album,
			Track:    e.Track,
			Podcast:  e.Podcast,
		}
		if !e.Time.IsZero() {
			ts := e.Time
			row.Ts = &ts
			row.Month = history.MonthKey(e.Time)
		}
		rows[i] = row
	}
	return rows
}
