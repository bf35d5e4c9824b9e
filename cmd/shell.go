package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pable/go-scrim-metrics/internal/aggregator"
	"github.com/pable/go-scrim-metrics/internal/normalize"
	"github.com/pable/go-scrim-metrics/internal/report"
	"github.com/pable/go-scrim-metrics/internal/storage"
)

var (
	cPrompt   = color.New(color.FgCyan, color.Bold)
	cMuted    = color.New(color.Faint)
	cError    = color.New(color.FgRed, color.Bold)
	cWarn     = color.New(color.FgYellow)
	cHeader   = color.New(color.FgCyan, color.Bold)
	cCmd      = color.New(color.FgYellow, color.Bold)
	cGreeting = color.New(color.Bold)
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive REPL session",
	Long: `Open a persistent session against the database. Matches are decoded once and
kept in memory; use 'reload' after importing from another terminal. Type 'help'
for available commands.`,
	Args: cobra.NoArgs,
	RunE: runShell,
}

// shellState is the session's database handle, decoded matches and the
// version bucket views default to.
type shellState struct {
	db     *storage.DB
	ds     *dataset
	bucket string
}

func runShell(_ *cobra.Command, _ []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	st := &shellState{db: db}
	if err := st.reload(); err != nil {
		return err
	}

	cGreeting.Println("scrimmetrics shell")
	cMuted.Printf("%d matches loaded, %s. type 'help' or 'exit'\n", len(st.ds.matches), bucketLabel(st.bucket))
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		cPrompt.Print("scrim")
		cMuted.Printf("[%s]> ", shellBucket(st.bucket))
		if !scanner.Scan() {
			fmt.Println()
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		tokens := strings.Fields(line)
		cmd, args := tokens[0], tokens[1:]

		switch cmd {
		case "exit", "quit":
			return nil
		case "help":
			shellHelp()
		case "reload":
			if err := st.reload(); err != nil {
				cError.Fprintf(os.Stderr, "error: %v\n", err)
				continue
			}
			cMuted.Printf("%d matches loaded\n", len(st.ds.matches))
		case "list":
			st.list()
		case "versions":
			buckets, unbucketed := aggregator.VersionBuckets(st.ds.matches)
			counts := make(map[string]int, len(buckets))
			for _, b := range buckets {
				counts[b] = len(aggregator.FilterByVersionBucket(st.ds.matches, b))
			}
			report.PrintVersions(os.Stdout, buckets, counts, unbucketed)
		case "use":
			if len(args) != 1 {
				cError.Fprintln(os.Stderr, "usage: use <bucket>|all")
				continue
			}
			st.bucket = st.ds.resolveBucket(args[0])
			cMuted.Printf("now using %s\n", bucketLabel(st.bucket))
		case "show":
			if len(args) == 0 {
				cError.Fprintln(os.Stderr, "usage: show <id-prefix> [player]")
				continue
			}
			focus := ""
			if len(args) > 1 {
				focus = strings.Join(args[1:], " ")
			}
			st.show(args[0], focus)
		case "players":
			for _, p := range knownPlayers(st.ds, st.bucket) {
				fmt.Println(p)
			}
		case "player":
			if len(args) == 0 {
				cError.Fprintln(os.Stderr, "usage: player <name>")
				continue
			}
			// Riot IDs may contain spaces.
			a, err := analyzePlayer(st.ds, strings.Join(args, " "), st.bucket, cfg.RecentWindow)
			if err != nil {
				cWarn.Fprintf(os.Stderr, "%v\n", err)
				continue
			}
			printAnalysis(a)
		case "position":
			if len(args) != 1 {
				cError.Fprintln(os.Stderr, "usage: position <TOP|JUNGLE|MIDDLE|BOTTOM|SUPPORT>")
				continue
			}
			pos, err := parsePosition(args[0])
			if err == nil {
				err = printPosition(st.ds, pos, st.bucket)
			}
			if err != nil {
				cError.Fprintf(os.Stderr, "error: %v\n", err)
			}
		case "objectives":
			shares, total := aggregator.ObjectivePriority(st.ds.matches, st.bucket)
			report.PrintObjectives(os.Stdout, aggregator.ObjectiveStats(st.ds.matches, st.bucket), shares, total)
		case "team":
			if len(cfg.TrackedPlayers) == 0 {
				cWarn.Fprintln(os.Stderr, "no tracked players: set SCRIM_TRACKED_PLAYERS")
				continue
			}
			buckets, _ := aggregator.VersionBuckets(st.ds.matches)
			report.PrintTeamStats(os.Stdout, aggregator.TeamStatsByVersion(st.ds.matches, cfg.TrackedPlayers), buckets)
		case "sql":
			st.sql(strings.TrimSpace(strings.TrimPrefix(line, cmd)))
		default:
			cWarn.Fprintf(os.Stderr, "unknown command %q, type 'help'\n", cmd)
		}
	}
	return nil
}

func shellBucket(b string) string {
	if b == "" {
		return "all"
	}
	return b
}

func shellHelp() {
	fmt.Println()
	type entry struct{ cmd, desc string }
	rows := []entry{
		{"list", "list all stored matches"},
		{"show <id-prefix> [player]", "show a match, optionally highlighting a player"},
		{"versions", "list version buckets"},
		{"use <bucket>|all", "switch the version bucket for later commands"},
		{"players", "list players in the current bucket"},
		{"player <name>", "full analysis for one player"},
		{"position <POSITION>", "rank everyone who played a position"},
		{"team", "tracked roster results per side"},
		{"objectives", "objective win correlation and priority"},
		{"sql <query>", "run a raw SQL query"},
		{"reload", "re-read matches from the database"},
		{"help", "show this message"},
		{"exit / quit", "close the session"},
	}
	for _, r := range rows {
		fmt.Print("  ")
		cCmd.Printf("%-30s", r.cmd)
		fmt.Println(r.desc)
	}
	fmt.Println()
}

func (st *shellState) reload() error {
	ds, err := datasetFrom(st.db)
	if err != nil {
		return err
	}
	st.ds = ds
	if st.bucket == "" {
		st.bucket = ds.resolveBucket("")
	}
	return nil
}

func (st *shellState) list() {
	matches, err := st.db.ListMatches()
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	if len(matches) == 0 {
		cMuted.Println("No matches stored yet.")
		return
	}
	cHeader.Fprintf(os.Stdout, "--- %d matches ---\n", len(matches))
	report.PrintMatchList(os.Stdout, matches)
}

func (st *shellState) show(prefix, focus string) {
	sm, err := st.db.GetMatchByPrefix(prefix)
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	if sm == nil {
		cWarn.Fprintf(os.Stderr, "no match found with prefix %q\n", prefix)
		return
	}
	m, err := normalize.DecodeMatch(sm.ID, sm.Body)
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	report.PrintMatchHeader(os.Stdout, m)
	report.PrintMatch(os.Stdout, m, cfg.Calculator(), focus)
}

func (st *shellState) sql(query string) {
	if query == "" {
		cError.Fprintln(os.Stderr, "usage: sql <query>")
		return
	}
	cols, rows, err := st.db.QueryRaw(query)
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	report.PrintRows(os.Stdout, cols, rows)
	cMuted.Printf("(%d rows)\n", len(rows))
}
