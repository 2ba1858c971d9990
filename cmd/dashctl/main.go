package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/dom/alliance-dashboard/internal/domain"
	"github.com/dom/alliance-dashboard/internal/iso"
	"github.com/dom/alliance-dashboard/internal/service"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Powers are printed the way the dashboard shows them, e.g. 1.234.567.
var printer = message.NewPrinter(language.German)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	apiURL := "http://localhost:8080"
	if envURL := os.Getenv("API_URL"); envURL != "" {
		apiURL = envURL
	}

	client := NewAPIClient(apiURL)
	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "status":
		err = statusCmd(client, os.Stdout)
	case "refresh":
		err = refreshCmd(client, os.Stdout)
	case "teams":
		err = teamsCmd(client, args, os.Stdout)
	case "alliances":
		err = alliancesCmd(client, os.Stdout)
	case "rank":
		err = rankCmd(client, args, os.Stdout)
	case "iso":
		err = isoCmd(client, args, os.Stdout)
	case "resolve":
		err = resolveCmd(client, args, os.Stdout)
	case "export":
		err = exportCmd(client, args, os.Stdout)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`dashctl - command line client for the alliance dashboard

USAGE:
  dashctl <command> [options]

COMMANDS:
  status      Show the loaded snapshot
  refresh     Reload every data source on the server
  teams       List game modes, or the teams of one mode
  alliances   List alliances and their member counts
  rank        Rank players for a team
  iso         Compare a player's ISO-8 with the recommendations of a team
  resolve     Resolve a character name to its catalog entry
  export      Download a ranking as an .xlsx spreadsheet
  help        Show this help message

ENVIRONMENT:
  API_URL   Dashboard server URL (default: http://localhost:8080)

EXAMPLES:
  dashctl rank --mode=Arena --team=Alpha
  dashctl rank --mode=Arena --team=Alpha --alliance=Zeus --alliance=Dionysos
  dashctl iso --mode=Arena --team=Alpha --player=Ann
  dashctl export --mode=Arena --team=Alpha --out=alpha.xlsx`)
}

// stringList collects a repeatable flag
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

type teamFlags struct {
	mode      string
	team      string
	alliances stringList
}

func teamFlagSet(name string, withAlliances bool) (*teamFlags, *flag.FlagSet) {
	f := &teamFlags{}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&f.mode, "mode", "", "Game mode (required)")
	fs.StringVar(&f.team, "team", "", "Team name (required)")
	if withAlliances {
		fs.Var(&f.alliances, "alliance", "Alliance to include (repeatable; default: server rules)")
	}
	return f, fs
}

func requireTeam(f *teamFlags) error {
	if f.mode == "" || f.team == "" {
		return fmt.Errorf("--mode and --team are required")
	}
	return nil
}

func statusCmd(client *APIClient, w io.Writer) error {
	status, err := client.Status()
	if err != nil {
		return err
	}
	printStatus(w, status)
	return nil
}

func refreshCmd(client *APIClient, w io.Writer) error {
	status, err := client.Refresh()
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "Refresh OK")
	printStatus(w, status)
	return nil
}

func printStatus(w io.Writer, s *service.Status) {
	fmt.Fprintf(w, "Snapshot:   %s (generation %d, latest %d)\n", s.SnapshotID, s.Generation, s.LatestGeneration)
	fmt.Fprintf(w, "Loaded at:  %s\n", s.LoadedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Teams:      %d\n", s.Counts.Teams)
	fmt.Fprintf(w, "Characters: %d\n", s.Counts.Characters)
	fmt.Fprintf(w, "Players:    %d\n", s.Counts.Players)
	fmt.Fprintf(w, "Rosters:    %d rows, %d players\n", s.Counts.RosterRows, s.Counts.RosterPlayers)
	fmt.Fprintf(w, "ISO recos:  %d\n", s.Counts.IsoRecos)
}

func teamsCmd(client *APIClient, args []string, w io.Writer) error {
	fs := flag.NewFlagSet("teams", flag.ContinueOnError)
	mode := fs.String("mode", "", "Game mode; lists modes when empty")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *mode == "" {
		modes, err := client.Modes()
		if err != nil {
			return err
		}
		for _, m := range modes {
			fmt.Fprintln(w, m)
		}
		return nil
	}

	teams, err := client.Teams(*mode)
	if err != nil {
		return err
	}
	for _, t := range teams {
		fmt.Fprintf(w, "%s: %s\n", t.Team, strings.Join(t.Characters, ", "))
	}
	return nil
}

func alliancesCmd(client *APIClient, w io.Writer) error {
	alliances, err := client.Alliances()
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, a := range alliances {
		note := ""
		if !a.Recognized {
			note = "(unrecognized)"
		}
		fmt.Fprintf(tw, "%s %s\t%d\t%s\n", a.Emoji, a.Name, a.Players, note)
	}
	return tw.Flush()
}

func rankCmd(client *APIClient, args []string, w io.Writer) error {
	f, fs := teamFlagSet("rank", true)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireTeam(f); err != nil {
		return err
	}

	ranking, err := client.Rank(f.mode, f.team, f.alliances)
	if err != nil {
		return err
	}
	return printRanking(w, ranking)
}

var statusMarks = map[domain.SlotStatus]string{
	domain.SlotPartial: "~",
	domain.SlotAbsent:  "!",
}

// printRanking writes one line per player. Powers below the thresholds are
// marked with ~, missing characters with !.
func printRanking(w io.Writer, r *service.Ranking) error {
	fmt.Fprintf(w, "%s / %s (generation %d)\n", r.Mode, r.Team, r.Generation)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	header := []string{"#", "Alliance", "Joueur", "Puissance"}
	header = append(header, r.Characters...)
	fmt.Fprintln(tw, strings.Join(header, "\t")+"\t")

	for _, row := range r.Rows {
		cells := []string{
			fmt.Sprint(row.Rank),
			strings.TrimSpace(row.AllianceEmoji + " " + row.Alliance),
			row.Player,
			printer.Sprintf("%d", row.TotalPower),
		}
		for i, slot := range row.Slots {
			if i >= len(r.Characters) {
				break
			}
			if slot.Status == domain.SlotEmpty {
				cells = append(cells, "")
				continue
			}
			cells = append(cells, printer.Sprintf("%d", slot.Power)+statusMarks[slot.Status])
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t")+"\t")
	}
	return tw.Flush()
}

func isoCmd(client *APIClient, args []string, w io.Writer) error {
	f, fs := teamFlagSet("iso", false)
	player := fs.String("player", "", "Player to compare (recommendations only when empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireTeam(f); err != nil {
		return err
	}

	view, err := client.Iso(f.mode, f.team, *player)
	if err != nil {
		return err
	}
	return printIso(w, view)
}

func printIso(w io.Writer, v *iso.View) error {
	title := fmt.Sprintf("%s / %s", v.Mode, v.Team)
	if v.Player != "" {
		title += " - " + v.Player
	}
	fmt.Fprintln(w, title)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Personnage\tReco\tJoueur\t")
	for _, s := range v.Slots {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.Character, isoLabel(s.Reco), isoLabel(s.Player), s.Badge)
	}
	return tw.Flush()
}

func isoLabel(s iso.State) string {
	if s.Class == "" {
		return "-"
	}
	return s.Class + "/" + s.Color
}

func resolveCmd(client *APIClient, args []string, w io.Writer) error {
	fs := flag.NewFlagSet("resolve", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	name := strings.Join(fs.Args(), " ")
	if name == "" {
		return fmt.Errorf("usage: dashctl resolve <name>")
	}

	match, err := client.Resolve(name)
	if err != nil {
		return err
	}
	if match == nil {
		fmt.Fprintf(w, "%s: not found\n", name)
		return nil
	}
	fmt.Fprintf(w, "%s -> %s (%s, %s)\n", name, match.Character.ID, match.Name, match.Confidence)
	return nil
}

func exportCmd(client *APIClient, args []string, w io.Writer) error {
	f, fs := teamFlagSet("export", true)
	out := fs.String("out", "", "Output file (default: classement_<mode>_<team>.xlsx)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireTeam(f); err != nil {
		return err
	}

	path := *out
	if path == "" {
		path = fmt.Sprintf("classement_%s_%s.xlsx", f.mode, f.team)
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := client.Export(f.mode, f.team, f.alliances, file); err != nil {
		file.Close()
		os.Remove(path)
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}
	fmt.Fprintf(w, "Wrote %s\n", path)
	return nil
}
