package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/thenickcox/spotify-rediscover/internal/analysis"
)

var sectionColor = color.New(color.FgCyan, color.Bold)

// printReport writes the console report: one table per insight category,
// capped at top rows each, then the run summary.
func printReport(w io.Writer, in *analysis.Insights, stats *analysis.Stats, files, top int) {
	printSection(w, "Top artists (all time) by plays",
		[]string{"#", "Artist", "Plays", "Hours"},
		topArtistRows(in.TopArtists), top)

	printSection(w, "Single-month spikes (artists)",
		[]string{"Month", "Artist", "Plays", "z"},
		artistSpikeRows(in.ArtistSpikes), top)

	printSection(w, "Single-month spikes (albums)",
		[]string{"Month", "Artist", "Album", "Plays", "z"},
		albumSpikeRows(in.AlbumSpikes), top)

	printSection(w, "Peak then drop-off (artists)",
		[]string{"Peak Month", "Artist", "Peak Plays", "Lifetime Plays", "Peak Share %", "Last Played"},
		artistDropoffRows(in.ArtistDropoffs), top)

	printSection(w, "Peak then drop-off (albums)",
		[]string{"Peak Month", "Artist", "Album", "Peak Plays", "Lifetime Plays", "Peak Share %", "Last Played"},
		albumDropoffRows(in.AlbumDropoffs), top)

	printSection(w, "Dormant favorites",
		[]string{"Artist", "Plays", "Hours", "Months Dormant", "Last Played"},
		dormantRows(in.Dormant), top)

	printSection(w, "One-album obsessions",
		[]string{"Artist", "Album", "Album Plays", "Artist Plays", "Share %", "Peak Month"},
		obsessionRows(in.Obsessions), top)

	sectionColor.Fprintf(w, "\n## Summary\n")
	fmt.Fprintf(w, "Files read: %d; music rows: %d; total hours: %.1f\n",
		files, stats.Events, float64(stats.TotalMS)/1000/60/60)
}

func printSection(w io.Writer, title string, headers []string, rows [][]string, top int) {
	sectionColor.Fprintf(w, "\n## %s\n", title)
	if len(rows) == 0 {
		fmt.Fprintln(w, "(none detected with current thresholds)")
		return
	}
	if top > 0 && len(rows) > top {
		rows = rows[:top]
	}

	table := tablewriter.NewWriter(w)
	table.Header(headers)
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			fmt.Fprintf(w, "Error rendering table: %v\n", err)
			return
		}
	}
	if err := table.Render(); err != nil {
		fmt.Fprintf(w, "Error rendering table: %v\n", err)
	}
}

// displayName substitutes a placeholder for entities whose export metadata
// was missing. The empty string stays the grouping key everywhere else.
func displayName(name string) string {
	if name == "" {
		return "(unknown)"
	}
	return name
}

func topArtistRows(items []analysis.TopArtist) [][]string {
	rows := make([][]string, len(items))
	for i, a := range items {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			displayName(a.Artist),
			strconv.Itoa(a.Plays),
			fmt.Sprintf("%.1f", a.Hours),
		}
	}
	return rows
}

func artistSpikeRows(items []analysis.Spike) [][]string {
	rows := make([][]string, len(items))
	for i, s := range items {
		rows[i] = []string{
			s.Month,
			displayName(s.Artist),
			strconv.Itoa(s.Plays),
			fmt.Sprintf("%.2f", s.Z),
		}
	}
	return rows
}

func albumSpikeRows(items []analysis.Spike) [][]string {
	rows := make([][]string, len(items))
	for i, s := range items {
		rows[i] = []string{
			s.Month,
			displayName(s.Artist),
			displayName(s.Album),
			strconv.Itoa(s.Plays),
			fmt.Sprintf("%.2f", s.Z),
		}
	}
	return rows
}

func artistDropoffRows(items []analysis.Dropoff) [][]string {
	rows := make([][]string, len(items))
	for i, d := range items {
		rows[i] = []string{
			d.PeakMonth,
			displayName(d.Artist),
			strconv.Itoa(d.PeakPlays),
			strconv.Itoa(d.Lifetime),
			strconv.Itoa(int(100 * d.Share)),
			d.LastPlayed.Format("2006-01-02"),
		}
	}
	return rows
}

func albumDropoffRows(items []analysis.Dropoff) [][]string {
	rows := make([][]string, len(items))
	for i, d := range items {
		rows[i] = []string{
			d.PeakMonth,
			displayName(d.Artist),
			displayName(d.Album),
			strconv.Itoa(d.PeakPlays),
			strconv.Itoa(d.Lifetime),
			strconv.Itoa(int(100 * d.Share)),
			d.LastPlayed.Format("2006-01-02"),
		}
	}
	return rows
}

func dormantRows(items []analysis.DormantArtist) [][]string {
	rows := make([][]string, len(items))
	for i, d := range items {
		rows[i] = []string{
			displayName(d.Artist),
			strconv.Itoa(d.Plays),
			fmt.Sprintf("%.1f", d.Hours),
			strconv.Itoa(d.MonthsDormant),
			d.LastPlayed.Format("2006-01-02"),
		}
	}
	return rows
}

func obsessionRows(items []analysis.Obsession) [][]string {
	rows := make([][]string, len(items))
	for i, o := range items {
		rows[i] = []string{
			displayName(o.Artist),
			displayName(o.Album),
			strconv.Itoa(o.AlbumPlays),
			strconv.Itoa(o.ArtistPlays),
			strconv.Itoa(int(100 * o.Share)),
			o.PeakMonth,
		}
	}
	return rows
}
