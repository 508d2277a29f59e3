package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/trip/internal/model"
	"github.com/idilsaglam/trip/internal/store/jsonstore"
	"github.com/idilsaglam/trip/internal/trip"
	"github.com/idilsaglam/trip/internal/ui"
)

// Options tune behavior from root flags and the environment.
type Options struct {
	DataPath string
	Latency  time.Duration // artificial store delay for the editor
	Debug    bool          // log to trip-debug.log while the editor runs
}

const debugLogFile = "trip-debug.log"

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	if len(args) == 0 {
		PrintHelp()
		return 2
	}
	cmd, a := args[0], args[1:]
	store := jsonstore.New(opt.DataPath, jsonstore.WithLatency(opt.Latency))

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp()
		return 0

	case "ls":
		return doList(store)

	case "edit":
		return doEdit(store, opt)

	case "seed":
		return doSeed(store)

	case "fav":
		n, code := indexArg("fav", a)
		if code != 0 {
			return code
		}
		return doFavorite(store, n)

	case "rm":
		n, code := indexArg("rm", a)
		if code != 0 {
			return code
		}
		return doRemove(store, n)
	}

	ui.Fail("unknown subcommand: " + cmd)
	ui.Println("")
	PrintHelp()
	return 2
}

func indexArg(cmd string, a []string) (int, int) {
	if len(a) != 1 {
		ui.Fail(fmt.Sprintf("usage: trip %s <index>", cmd))
		return 0, 2
	}
	n, err := strconv.Atoi(a[0])
	if err != nil {
		ui.Fail(cmd + ": not a number: " + a[0])
		return 0, 2
	}
	return n, 0
}

func PrintHelp() {
	ui.Println(`trip - itinerary editor

Usage:
  trip [-data file] [-theme classic|neon|mono] <subcommand> [args]

Subcommands:
  ls                 Print the itinerary
  edit               Interactive editor
  fav <index>        Toggle favorite for the point at 1-based index
  rm <index>         Remove the point at 1-based index
  seed               Write a demo itinerary to the data file

Environment:
  TRIP_DATA, TRIP_THEME, TRIP_LATENCY (e.g. 400ms), TRIP_DEBUG
  A .env file in the working directory is read first.

Examples:
  trip seed
  trip ls
  trip fav 2
  trip edit`)
}

// -------------- subcommand impls ----------------

func doList(store *jsonstore.Store) int {
	doc, err := store.Load()
	if err != nil {
		ui.Fail("load: " + err.Error())
		return 1
	}
	t := ui.Current()
	points := sorted(doc.Points)

	header := fmt.Sprintf("%s  %s  %s",
		ui.C(t.Title, orDefault(trip.Route(points, doc.Destinations), "Trip")),
		ui.C(t.Muted, trip.Dates(points)),
		ui.C(t.Price, fmt.Sprintf("€ %d", trip.TotalCost(points, doc.Offers))),
	)
	lines := []string{header, ""}
	lines = append(lines, pointLines(points, doc)...)

	favs := 0
	for _, p := range points {
		if p.IsFavorite {
			favs++
		}
	}
	lines = append(lines, "")
	lines = append(lines, ui.C(t.Muted, "favorites "+ui.ProgressBar(favs, len(points), 20)))
	lines = append(lines, ui.C(t.Muted, "Tip: open the editor with `trip edit`"))
	ui.Panel(lines)
	return 0
}

func pointLines(points []model.Point, doc jsonstore.Document) []string {
	t := ui.Current()
	if len(points) == 0 {
		return []string{ui.C(t.Muted, "no points; run `trip seed`")}
	}
	out := make([]string, 0, len(points))
	for i, p := range points {
		star := ui.C(t.Muted, t.StarOff)
		if p.IsFavorite {
			star = ui.C(t.Price, t.StarOn)
		}
		dest := "?"
		if d, ok := doc.Destinations.ByID(p.Destination); ok {
			dest = d.Name
		}
		out = append(out, fmt.Sprintf("%s %s %s %s %s %s %s",
			ui.C("\033[2m", fmt.Sprintf("%2d.", i+1)),
			star,
			p.Date.Start.Format("Jan 02 15:04"),
			t.Arrow,
			p.Date.End.Format("15:04"),
			ui.C(t.Accent, p.Type+" "+dest),
			ui.C(t.Price, fmt.Sprintf("€ %d", p.BasePrice)),
		))
		for _, o := range doc.Offers.Selected(p.Type, p.Offers) {
			out = append(out, ui.C(t.Muted, fmt.Sprintf("      + %s € %d", o.Title, o.Price)))
		}
	}
	return out
}

func doEdit(store *jsonstore.Store, opt Options) int {
	doc, err := store.Load()
	if err != nil {
		ui.Fail("load: " + err.Error())
		return 1
	}

	if opt.Debug {
		f, err := tea.LogToFile(debugLogFile, "trip")
		if err != nil {
			ui.Fail("log: " + err.Error())
			return 1
		}
		defer f.Close()
	} else {
		prev := log.Writer()
		log.SetOutput(io.Discard)
		defer log.SetOutput(prev)
	}

	m, err := trip.New(store, doc.Points, doc.Offers, doc.Destinations)
	if err != nil {
		ui.Fail("editor: " + err.Error())
		return 1
	}
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		ui.Fail("tui: " + err.Error())
		return 1
	}
	if m.Changed() {
		ui.OK("saved")
	}
	return 0
}

func doSeed(store *jsonstore.Store) int {
	doc, err := store.Seed(time.Now())
	if err != nil {
		ui.Fail("seed: " + err.Error())
		return 1
	}
	ui.OK(fmt.Sprintf("wrote %d points to %s", len(doc.Points), store.Path()))
	return 0
}

func doFavorite(store *jsonstore.Store, userIndex int) int {
	p, code := pointAt(store, userIndex)
	if code != 0 {
		return code
	}
	p.IsFavorite = !p.IsFavorite
	if _, err := store.UpdatePoint(context.Background(), p); err != nil {
		ui.Fail("save: " + err.Error())
		return 1
	}
	ui.OK("toggled")
	return 0
}

func doRemove(store *jsonstore.Store, userIndex int) int {
	p, code := pointAt(store, userIndex)
	if code != 0 {
		return code
	}
	if err := store.DeletePoint(context.Background(), p.ID); err != nil {
		ui.Fail("save: " + err.Error())
		return 1
	}
	ui.OK("removed")
	return 0
}

// pointAt resolves a 1-based index in the order `ls` prints.
func pointAt(store *jsonstore.Store, userIndex int) (model.Point, int) {
	doc, err := store.Load()
	if err != nil {
		ui.Fail("load: " + err.Error())
		return model.Point{}, 1
	}
	points := sorted(doc.Points)
	if userIndex < 1 || userIndex > len(points) {
		ui.Fail(fmt.Sprintf("index out of range: have %d, got %d", len(points), userIndex))
		ui.Println(ui.C(ui.Current().Muted, "Hint: run `trip ls` to see valid indexes"))
		return model.Point{}, 2
	}
	return points[userIndex-1], 0
}

func sorted(points []model.Point) []model.Point {
	out := make([]model.Point, len(points))
	copy(out, points)
	trip.SortPoints(out, trip.SortDay)
	return out
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
