package cmd

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/thenickcox/spotify-rediscover/internal/analysis"
)

const reportCSS = `
:root{--bg:#0b0f14;--panel:#121821;--ink:#e8eef6;--muted:#9bb0c9;--accent:#7bdff6;--accent2:#b088f9;--good:#9ae6b4;--warn:#f6ad55;--bad:#feb2b2;}
*{box-sizing:border-box;font-family:system-ui,-apple-system,Segoe UI,Roboto,Inter,Helvetica,Arial,sans-serif}
body{margin:0;background:linear-gradient(180deg,#0b0f14,#0d121a);color:var(--ink)}
header{padding:28px 24px;border-bottom:1px solid #233047;background:radial-gradient(1200px 400px at 10% -10%,#11213544,transparent)}
h1{margin:0;font-size:28px;letter-spacing:.3px}
.meta{color:var(--muted);margin-top:6px;font-size:14px}
.wrap{max-width:1100px;margin:0 auto;padding:22px}
section{background:var(--panel);border:1px solid #233047;border-radius:16px;margin:18px 0;overflow:hidden;box-shadow:0 10px 30px rgba(0,0,0,.25)}
section header{display:flex;justify-content:space-between;align-items:baseline;padding:16px 18px;background:linear-gradient(180deg,#121b27,#0f1621);border-bottom:1px solid #233047}
section h2{margin:0;font-size:18px}
section p.sub{margin:0;color:var(--muted);font-size:13px}
.table{width:100%;border-collapse:separate;border-spacing:0}
.table th,.table td{padding:10px 12px;border-bottom:1px solid #1f2a3a}
.table th{position:sticky;top:0;background:#0f1621;z-index:1;text-align:left;font-weight:600;color:#c6d4ea}
.table tr:nth-child(2n){background:#0f1520}
.table tr:hover{background:#172033}
.badge{display:inline-block;padding:2px 8px;border-radius:999px;border:1px solid #2a3a53;background:#0f1621;color:#c6d4ea;font-size:12px}
footer{color:var(--muted);padding:24px;text-align:center}
.small{font-size:12px;color:var(--muted)}
.mono{font-family:ui-monospace, SFMono-Regular, Menlo, Consolas, "Liberation Mono", monospace}
.right{text-align:right}
.nowrap{white-space:nowrap}
.pill{padding:2px 8px;border-radius:999px}
.ok{background:rgba(154,230,180,.12);border:1px solid rgba(154,230,180,.3)}
.warn{background:rgba(246,173,85,.12);border:1px solid rgba(246,173,85,.3)}
.bad{background:rgba(254,178,178,.12);border:1px solid rgba(254,178,178,.3)}
`

const reportJS = `
// Simple table sort (click a header)
document.querySelectorAll('table').forEach(t => {
  const ths = t.querySelectorAll('th');
  ths.forEach((th, idx) => {
    th.style.cursor = 'pointer';
    th.addEventListener('click', () => {
      const rows = Array.from(t.querySelectorAll('tbody tr'));
      const asc = th.dataset.sortAsc === 'true' ? false : true;
      th.dataset.sortAsc = asc;
      rows.sort((a,b) => {
        let A = a.children[idx].innerText.trim();
        let B = b.children[idx].innerText.trim();
        const nA = parseFloat(A.replace(/[^0-9.-]/g,''));
        const nB = parseFloat(B.replace(/[^0-9.-]/g,''));
        if (!Number.isNaN(nA) && !Number.isNaN(nB)) { return asc ? nA - nB : nB - nA; }
        return asc ? A.localeCompare(B) : B.localeCompare(A);
      });
      rows.forEach(r => t.querySelector('tbody').appendChild(r));
    });
  });
});
`

type htmlSection struct {
	Title    string
	Subtitle string
	Headers  []string
	Rows     [][]string
}

// htmlSections lays out every insight list as a report section, with the
// active thresholds spelled out in the subtitles.
func htmlSections(in *analysis.Insights, cfg analysis.Config) []htmlSection {
	return []htmlSection{
		{
			Title:    fmt.Sprintf("Top artists - all time (by plays, capped at %d)", cfg.TopN),
			Subtitle: "Your lifetime listening, descending by play count.",
			Headers:  []string{"#", "Artist", "Plays", "Hours"},
			Rows:     topArtistRows(in.TopArtists),
		},
		{
			Title:    "Highest-intensity single-month spikes - Artist",
			Subtitle: "Detected via monthly play-count z-scores; unusually high, short-lived peaks.",
			Headers:  []string{"Month", "Artist", "Plays", "z"},
			Rows:     artistSpikeRows(in.ArtistSpikes),
		},
		{
			Title:    "Highest-intensity single-month spikes - Album",
			Subtitle: "Detected via monthly play-count z-scores; unusually high, short-lived peaks.",
			Headers:  []string{"Month", "Artist", "Album", "Plays", "z"},
			Rows:     albumSpikeRows(in.AlbumSpikes),
		},
		{
			Title: "Massive peak then total drop-off - Artists",
			Subtitle: fmt.Sprintf("Peak month holds at least %d%% of lifetime plays with %d+ plays, and no plays in the last %d months.",
				int(100*cfg.DropPeakShare), cfg.DropPeakMinPlays, cfg.DropSilenceMonths),
			Headers: []string{"Peak Month", "Artist", "Peak Plays", "Lifetime Plays", "Peak Share %", "Last Played"},
			Rows:    artistDropoffRows(in.ArtistDropoffs),
		},
		{
			Title: "Massive peak then total drop-off - Albums",
			Subtitle: fmt.Sprintf("Peak month holds at least %d%% of lifetime plays with %d+ plays, and no plays in the last %d months.",
				int(100*cfg.DropPeakShare), cfg.DropPeakMinPlays, cfg.DropSilenceMonths),
			Headers: []string{"Peak Month", "Artist", "Album", "Peak Plays", "Lifetime Plays", "Peak Share %", "Last Played"},
			Rows:    albumDropoffRows(in.AlbumDropoffs),
		},
		{
			Title: "Had a grip on you, now dormant",
			Subtitle: fmt.Sprintf("Artists with at least %d lifetime plays and no plays in over %d months.",
				cfg.DormantMinPlays, cfg.DormantMonths),
			Headers: []string{"Artist", "Plays", "Hours", "Months Dormant", "Last Played"},
			Rows:    dormantRows(in.Dormant),
		},
		{
			Title: "One-album obsessions",
			Subtitle: fmt.Sprintf("A single album holds at least %d%% of the artist's lifetime plays, with %d+ album plays.",
				int(100*cfg.ObsessionDominance), cfg.ObsessionMinPlays),
			Headers: []string{"Artist", "Album", "Album Plays", "Artist Plays", "Share %", "Peak Month"},
			Rows:    obsessionRows(in.Obsessions),
		},
	}
}

// buildHTMLReport renders a self-contained document: inline styles, inline
// sort script, no external assets.
func buildHTMLReport(title string, params [][2]string, sections []htmlSection, generated time.Time) string {
	var b strings.Builder
	b.WriteString("<!doctype html>\n<html lang=\"en\">\n<head>\n")
	b.WriteString("<meta charset=\"utf-8\"/>\n")
	b.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\"/>\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(title))
	fmt.Fprintf(&b, "<style>%s</style>\n", reportCSS)
	b.WriteString("</head>\n<body>\n<header>\n<div class=\"wrap\">\n")
	fmt.Fprintf(&b, "<h1>%s</h1>\n", html.EscapeString(title))
	b.WriteString("<div class=\"meta\">")
	for i, kv := range params {
		if i > 0 {
			b.WriteString(" ")
		}
		fmt.Fprintf(&b, "<span class=\"badge\">%s: %s</span>",
			html.EscapeString(kv[0]), html.EscapeString(kv[1]))
	}
	b.WriteString("</div>\n</div>\n</header>\n<div class=\"wrap\">\n")
	for _, s := range sections {
		writeHTMLSection(&b, s)
	}
	b.WriteString("</div>\n")
	fmt.Fprintf(&b, "<footer>Generated %s</footer>\n", html.EscapeString(generated.Format("2006-01-02T15:04:05")))
	fmt.Fprintf(&b, "<script>%s</script>\n", reportJS)
	b.WriteString("</body>\n</html>\n")
	return b.String()
}

func writeHTMLSection(b *strings.Builder, s htmlSection) {
	b.WriteString("<section>\n<header>\n<div>\n")
	fmt.Fprintf(b, "<h2>%s</h2>\n", html.EscapeString(s.Title))
	fmt.Fprintf(b, "<p class=\"sub\">%s</p>\n", html.EscapeString(s.Subtitle))
	b.WriteString("</div>\n</header>\n<div class=\"wrap\">\n")
	if len(s.Rows) == 0 {
		b.WriteString("<p class=\"small\">No data matched this section with current thresholds.</p>\n")
	} else {
		writeHTMLTable(b, s.Headers, s.Rows)
	}
	b.WriteString("</div>\n</section>\n")
}

func writeHTMLTable(b *strings.Builder, headers []string, rows [][]string) {
	b.WriteString("<table class=\"table\"><thead><tr>")
	for _, h := range headers {
		fmt.Fprintf(b, "<th>%s</th>", html.EscapeString(h))
	}
	b.WriteString("</tr></thead>\n<tbody>\n")
	for _, row := range rows {
		b.WriteString("<tr>")
		for _, cell := range row {
			fmt.Fprintf(b, "<td class=\"nowrap\">%s</td>", html.EscapeString(cell))
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("</tbody></table>\n")
}
