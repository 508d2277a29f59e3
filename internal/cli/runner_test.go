package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/idilsaglam/trip/internal/store/jsonstore"
	"github.com/idilsaglam/trip/internal/ui"
)

func setup(t *testing.T) (Options, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	ui.SetOutput(&out, &errOut)
	t.Cleanup(func() { ui.SetOutput(os.Stdout, os.Stderr) })
	return Options{DataPath: filepath.Join(t.TempDir(), "trip.json")}, &out, &errOut
}

func TestRunUsage(t *testing.T) {
	opt, _, errOut := setup(t)
	tests := []struct {
		args []string
		code int
	}{
		{nil, 2},
		{[]string{"help"}, 0},
		{[]string{"nope"}, 2},
		{[]string{"fav"}, 2},
		{[]string{"rm", "x"}, 2},
		{[]string{"fav", "1"}, 2},
	}
	for _, tt := range tests {
		if got := Run(tt.args, opt); got != tt.code {
			t.Errorf("Run(%v): expected %d, got %d (stderr %q)", tt.args, tt.code, got, errOut.String())
		}
	}
}

func TestSeedListFavoriteRemove(t *testing.T) {
	opt, out, _ := setup(t)

	if code := Run([]string{"seed"}, opt); code != 0 {
		t.Fatalf("seed: expected 0, got %d", code)
	}
	store := jsonstore.New(opt.DataPath)
	doc, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	n := len(doc.Points)

	out.Reset()
	if code := Run([]string{"ls"}, opt); code != 0 {
		t.Fatalf("ls: expected 0, got %d", code)
	}
	if !strings.Contains(out.String(), "Geneva") {
		t.Fatalf("expected route in listing, got:\n%s", out.String())
	}

	first := sorted(doc.Points)[0]
	if code := Run([]string{"fav", "1"}, opt); code != 0 {
		t.Fatalf("fav: expected 0, got %d", code)
	}
	doc, _ = store.Load()
	for _, p := range doc.Points {
		if p.ID == first.ID && p.IsFavorite == first.IsFavorite {
			t.Fatalf("expected favorite toggled on %s", p.ID)
		}
	}

	if code := Run([]string{"rm", "1"}, opt); code != 0 {
		t.Fatalf("rm: expected 0, got %d", code)
	}
	doc, _ = store.Load()
	if len(doc.Points) != n-1 {
		t.Fatalf("expected %d points, got %d", n-1, len(doc.Points))
	}
	for _, p := range doc.Points {
		if p.ID == first.ID {
			t.Fatalf("expected %s removed", first.ID)
		}
	}
}

func TestListEmpty(t *testing.T) {
	opt, out, _ := setup(t)
	if code := Run([]string{"ls"}, opt); code != 0 {
		t.Fatalf("expected 0, got %d", code)
	}
	if !strings.Contains(out.String(), "no points") {
		t.Fatalf("expected empty hint, got:\n%s", out.String())
	}
}

func TestRangeCheck(t *testing.T) {
	opt, _, errOut := setup(t)
	if _, err := jsonstore.New(opt.DataPath).Seed(time.Now()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if code := Run([]string{"rm", "99"}, opt); code != 2 {
		t.Fatalf("expected 2, got %d", code)
	}
	if !strings.Contains(errOut.String(), "index out of range") {
		t.Fatalf("expected range error, got %q", errOut.String())
	}
}
