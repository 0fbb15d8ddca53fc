/*
Copyright 2020 Google LLC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/thenickcox/spotify-rediscover/internal/analysis"
	"github.com/thenickcox/spotify-rediscover/internal/history"
	"github.com/thenickcox/spotify-rediscover/internal/parquet"
	"github.com/thenickcox/spotify-rediscover/internal/store"
)

var (
	minMS           int64
	excludePodcasts bool
	keepUntimed     bool
	recencyFiltered bool
	consoleTop      int
	htmlPath        string
	yamlPath        string
	sqlitePath      string
	parquetPath     string
	nowString       string
	verbose         bool

	spikeZ             float64
	spikeMinPlays      int
	albumSpikeMinPlays int
	peakShare          float64
	peakMinPlays       int
	silenceMonths      int
	dormantMinPlays    int
	dormantMonths      int
	obsessionDominance float64
	obsessionMinPlays  int
	maxResults         int
)

const reportTitle = "Spotify Rediscovery Report"

var analyzeCmd = &cobra.Command{
	Use:   "analyze <path>",
	Short: "Analyzes a streaming history export",
	Long: `Analyzes the JSON files of a Spotify extended streaming history export.
  <path> is a directory containing Streaming_History*.json files, or a glob.
  Prints ranked insight tables to the console; --html, --yaml, --sqlite and
  --parquet write full reports and exports alongside.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		err := runAnalyze(args[0])
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	defaults := analysis.DefaultConfig()

	analyzeCmd.Flags().Int64Var(&minMS, "min-ms", 0, "Minimum ms_played to include")
	viper.BindPFlag("min-ms", analyzeCmd.Flags().Lookup("min-ms"))

	analyzeCmd.Flags().BoolVar(&excludePodcasts, "exclude-podcasts", false, "Exclude podcast rows")
	viper.BindPFlag("exclude-podcasts", analyzeCmd.Flags().Lookup("exclude-podcasts"))

	analyzeCmd.Flags().BoolVar(&keepUntimed, "keep-untimed", false, "Count rows with missing timestamps toward lifetime totals")
	viper.BindPFlag("keep-untimed", analyzeCmd.Flags().Lookup("keep-untimed"))

	analyzeCmd.Flags().BoolVar(&recencyFiltered, "recency-from-filtered", false, "Let excluded rows advance first/last played dates")
	viper.BindPFlag("recency-from-filtered", analyzeCmd.Flags().Lookup("recency-from-filtered"))

	analyzeCmd.Flags().IntVar(&consoleTop, "top", 10, "Rows shown per console table")
	viper.BindPFlag("top", analyzeCmd.Flags().Lookup("top"))

	analyzeCmd.Flags().StringVar(&htmlPath, "html", "", "Write a full HTML report to this path")
	viper.BindPFlag("html", analyzeCmd.Flags().Lookup("html"))

	analyzeCmd.Flags().StringVar(&yamlPath, "yaml", "", "Write the insights as YAML to this path")
	viper.BindPFlag("yaml", analyzeCmd.Flags().Lookup("yaml"))

	analyzeCmd.Flags().StringVar(&sqlitePath, "sqlite", "", "Append the insights to this SQLite database")
	viper.BindPFlag("sqlite", analyzeCmd.Flags().Lookup("sqlite"))

	analyzeCmd.Flags().StringVar(&parquetPath, "parquet", "", "Write normalized play events as parquet to this path")
	viper.BindPFlag("parquet", analyzeCmd.Flags().Lookup("parquet"))

	analyzeCmd.Flags().StringVar(&nowString, "now", "", "Evaluation date override (YYYY, YYYY-MM or YYYY-MM-DD; default now)")
	viper.BindPFlag("now", analyzeCmd.Flags().Lookup("now"))

	analyzeCmd.Flags().BoolVar(&verbose, "verbose", false, "Print progress while analyzing")
	viper.BindPFlag("verbose", analyzeCmd.Flags().Lookup("verbose"))

	analyzeCmd.Flags().Float64Var(&spikeZ, "spike-z", defaults.SpikeZ, "Z-score threshold for spike months")
	viper.BindPFlag("spike-z", analyzeCmd.Flags().Lookup("spike-z"))

	analyzeCmd.Flags().IntVar(&spikeMinPlays, "spike-min-plays", defaults.SpikeMinPlays, "Minimum plays for an artist spike month")
	viper.BindPFlag("spike-min-plays", analyzeCmd.Flags().Lookup("spike-min-plays"))

	analyzeCmd.Flags().IntVar(&albumSpikeMinPlays, "album-spike-min-plays", defaults.AlbumSpikeMinPlays, "Minimum plays for an album spike month")
	viper.BindPFlag("album-spike-min-plays", analyzeCmd.Flags().Lookup("album-spike-min-plays"))

	analyzeCmd.Flags().Float64Var(&peakShare, "peak-share", defaults.DropPeakShare, "Minimum peak month share of lifetime plays for a drop-off")
	viper.BindPFlag("peak-share", analyzeCmd.Flags().Lookup("peak-share"))

	analyzeCmd.Flags().IntVar(&peakMinPlays, "peak-min-plays", defaults.DropPeakMinPlays, "Minimum peak month plays for a drop-off")
	viper.BindPFlag("peak-min-plays", analyzeCmd.Flags().Lookup("peak-min-plays"))

	analyzeCmd.Flags().IntVar(&silenceMonths, "silence-months", defaults.DropSilenceMonths, "Months of silence required for a drop-off")
	viper.BindPFlag("silence-months", analyzeCmd.Flags().Lookup("silence-months"))

	analyzeCmd.Flags().IntVar(&dormantMinPlays, "dormant-min-plays", defaults.DormantMinPlays, "Minimum lifetime plays for a dormant artist")
	viper.BindPFlag("dormant-min-plays", analyzeCmd.Flags().Lookup("dormant-min-plays"))

	analyzeCmd.Flags().IntVar(&dormantMonths, "dormant-months", defaults.DormantMonths, "Months of silence before an artist counts as dormant")
	viper.BindPFlag("dormant-months", analyzeCmd.Flags().Lookup("dormant-months"))

	analyzeCmd.Flags().Float64Var(&obsessionDominance, "obsession-dominance", defaults.ObsessionDominance, "Minimum album share of artist plays for an obsession")
	viper.BindPFlag("obsession-dominance", analyzeCmd.Flags().Lookup("obsession-dominance"))

	analyzeCmd.Flags().IntVar(&obsessionMinPlays, "obsession-min-plays", defaults.ObsessionMinPlays, "Minimum album plays for an obsession")
	viper.BindPFlag("obsession-min-plays", analyzeCmd.Flags().Lookup("obsession-min-plays"))

	analyzeCmd.Flags().IntVar(&maxResults, "results", defaults.TopN, "Maximum rows kept per insight list")
	viper.BindPFlag("results", analyzeCmd.Flags().Lookup("results"))
}

func runAnalyze(path string) error {
	now, err := parseNowFlag(nowString)
	if err != nil {
		return fmt.Errorf("parsing --now: %w", err)
	}

	files, err := history.ExpandPath(path)
	if err != nil {
		return fmt.Errorf("expanding %q: %w", path, err)
	}
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "No JSON files found.")
		os.Exit(2)
	}
	if verbose {
		fmt.Printf("Reading %d files\n", len(files))
	}

	records := history.LoadRecords(files)
	result := history.FilterRecords(records, history.FilterOptions{
		MinMS:           minMS,
		ExcludePodcasts: excludePodcasts,
		KeepUntimed:     keepUntimed,
	})
	if len(result.Events) == 0 {
		fmt.Println("No qualifying music rows after filters.")
		return nil
	}
	if verbose {
		fmt.Printf("Loaded %d records; %d music rows after filters\n", len(records), len(result.Events))
	}

	stats := analysis.Aggregate(result.Events)
	if recencyFiltered {
		stats.ObserveRecency(result.Excluded)
	}
	if verbose {
		fmt.Printf("Aggregated %d artists and %d albums over %d months\n",
			len(stats.Artists), len(stats.Albums), len(stats.Months))
	}

	cfg := analysisConfig()
	insights := analysis.BuildInsights(stats, cfg, now)

	printReport(os.Stdout, insights, stats, len(files), consoleTop)

	if htmlPath != "" {
		doc := buildHTMLReport(reportTitle, reportParams(len(files)), htmlSections(insights, cfg), insights.GeneratedAt)
		if err := os.WriteFile(htmlPath, []byte(doc), 0644); err != nil {
			return fmt.Errorf("writing HTML report: %w", err)
		}
		abs, err := filepath.Abs(htmlPath)
		if err != nil {
			abs = htmlPath
		}
		fmt.Printf("\nWrote HTML report to: %s\n", abs)
	}

	if yamlPath != "" {
		if err := writeYAML(yamlPath, insights); err != nil {
			return err
		}
		fmt.Printf("Wrote YAML insights to: %s\n", yamlPath)
	}

	if sqlitePath != "" {
		if err := writeSQLite(sqlitePath, stats, insights, len(files)); err != nil {
			return err
		}
	}

	if parquetPath != "" {
		if err := parquet.WritePlays(result.Events, parquetPath); err != nil {
			return fmt.Errorf("writing parquet export: %w", err)
		}
		fmt.Printf("Wrote parquet export to: %s\n", parquetPath)
	}

	return nil
}

func analysisConfig() analysis.Config {
	return analysis.Config{
		SpikeZ:             spikeZ,
		SpikeMinPlays:      spikeMinPlays,
		AlbumSpikeMinPlays: albumSpikeMinPlays,
		DropPeakShare:      peakShare,
		DropPeakMinPlays:   peakMinPlays,
		DropSilenceMonths:  silenceMonths,
		DormantMinPlays:    dormantMinPlays,
		DormantMonths:      dormantMonths,
		ObsessionDominance: obsessionDominance,
		ObsessionMinPlays:  obsessionMinPlays,
		TopN:               maxResults,
	}
}

func reportParams(files int) [][2]string {
	return [][2]string{
		{"Files", strconv.Itoa(files)},
		{"Min ms", strconv.FormatInt(minMS, 10)},
		{"Exclude podcasts", strconv.FormatBool(excludePodcasts)},
		{"Results per list", strconv.Itoa(maxResults)},
	}
}

func writeYAML(path string, in *analysis.Insights) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating YAML file: %w", err)
	}
	defer f.Close()

	encoder := yaml.NewEncoder(f)
	encoder.SetIndent(2)
	if err := encoder.Encode(in); err != nil {
		return fmt.Errorf("encoding insights: %w", err)
	}
	return encoder.Close()
}

func writeSQLite(path string, stats *analysis.Stats, in *analysis.Insights, files int) error {
	db, err := store.New(path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	meta := store.RunMeta{
		GeneratedAt: in.GeneratedAt,
		Files:       files,
		Events:      stats.Events,
		TotalMS:     stats.TotalMS,
	}
	run, err := db.SaveInsights(meta, in)
	if err != nil {
		return fmt.Errorf("saving insights: %w", err)
	}

	fmt.Printf("Saved insights as run %d in %s\n", run, path)
	if verbose {
		n, err := db.RunCount()
		if err != nil {
			return fmt.Errorf("counting runs: %w", err)
		}
		fmt.Printf("Database now holds %d runs\n", n)
	}
	return nil
}
