package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ari-shimizu/dalt/lattice"
)

var routeBest int

func init() {
	cmd := newRouteCmd()
	cmd.Flags().IntVarP(&routeBest, "best", "n", 5, "Number of paths to print")
	rootCmd.AddCommand(cmd)
}

func newRouteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "route <step>...",
		Short: "Push a sequence of steps through the demo transfer-trains lattice and print the N-best paths",
		Long: `The route command pushes each step argument onto a lattice built over a
small fixed railway-connection vocabulary (the same one used in the transfer
trains scenarios documented in DESIGN.md), settles it, and prints the
--best cheapest whole paths.

Example:
  daltctl route "[HakataTosu]" "[TosuOmuta]" "[OmutaKumamoto]"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoute(args)
		},
	}
}

func runRoute(steps []string) error {
	l := lattice.New(demoVocabulary())
	for _, s := range steps {
		if err := l.PushBack([]byte(s)); err != nil {
			return fmt.Errorf("failed to push step %q: %w", s, err)
		}
		printVerbose("pushed %s\n", s)
	}

	eos := l.Settle()
	it := lattice.NewNBestIterator(l, eos, nil)

	var paths []map[string]interface{}
	for i := 0; i < routeBest && it.HasNext(); i++ {
		path, err := it.Next()
		if err != nil {
			break
		}
		var values []string
		for _, n := range path {
			if !n.IsBOS() {
				values = append(values, fmt.Sprintf("%v", n.Value))
			}
		}
		cost := path[len(path)-1].PathCost
		paths = append(paths, map[string]interface{}{"cost": cost, "path": values})
		if !jsonOut {
			printInfo("%4d  %v\n", cost, values)
		}
	}

	if jsonOut {
		return printJSON(paths)
	}
	return nil
}

// demoVocabulary is the canonical transfer-trains fixture: a railway graph
// from Hakata to Kumamoto via Tosu and Omuta, with direct and transfer
// trains competing over overlapping spans.
func demoVocabulary() lattice.Vocabulary {
	e := func(key, value string, cost int32) lattice.Entry {
		return lattice.Entry{Key: []byte(key), Value: value, Cost: cost}
	}
	groups := []lattice.EntryGroup{
		{StepKey: []byte("[HakataTosu][TosuOmuta][OmutaKumamoto]"), Entries: []lattice.Entry{
			e("Hakata-Tosu-Omuta-Kumamoto", "mizuho", 3670),
			e("Hakata-Tosu-Omuta-Kumamoto", "sakura", 2620),
			e("Hakata-Tosu-Omuta-Kumamoto", "tsubame", 2390),
		}},
		{StepKey: []byte("[HakataTosu][TosuOmuta]"), Entries: []lattice.Entry{
			e("Hakata-Tosu-Omuta", "ariake", 2150),
			e("Hakata-Tosu-Omuta", "rapid811", 1310),
		}},
		{StepKey: []byte("[HakataTosu]"), Entries: []lattice.Entry{
			e("Hakata-Tosu", "kamome", 840),
			e("Hakata-Tosu", "local415", 570),
		}},
		{StepKey: []byte("[TosuOmuta]"), Entries: []lattice.Entry{
			e("Tosu-Omuta", "local813", 860),
		}},
		{StepKey: []byte("[TosuOmuta][OmutaKumamoto]"), Entries: []lattice.Entry{
			e("Tosu-Omuta-Kumamoto", "local815", 1680),
		}},
		{StepKey: []byte("[OmutaKumamoto]"), Entries: []lattice.Entry{
			e("Omuta-Kumamoto", "local817", 950),
		}},
	}

	be := func(key string) lattice.Entry { return lattice.Entry{Key: []byte(key)} }
	conns := []lattice.ConnectionSpec{
		{From: lattice.BOSEOS, To: be("Hakata-Tosu-Omuta-Kumamoto"), Cost: 600},
		{From: lattice.BOSEOS, To: be("Hakata-Tosu-Omuta"), Cost: 700},
		{From: lattice.BOSEOS, To: be("Hakata-Tosu"), Cost: 800},
		{From: be("Hakata-Tosu"), To: be("Tosu-Omuta-Kumamoto"), Cost: 500},
		{From: be("Hakata-Tosu"), To: be("Tosu-Omuta"), Cost: 600},
		{From: be("Hakata-Tosu"), To: lattice.BOSEOS, Cost: 6000},
		{From: be("Hakata-Tosu-Omuta"), To: be("Omuta-Kumamoto"), Cost: 200},
		{From: be("Hakata-Tosu-Omuta"), To: lattice.BOSEOS, Cost: 2000},
		{From: be("Tosu-Omuta"), To: be("Omuta-Kumamoto"), Cost: 300},
		{From: be("Tosu-Omuta"), To: lattice.BOSEOS, Cost: 3000},
		{From: be("Hakata-Tosu-Omuta-Kumamoto"), To: lattice.BOSEOS, Cost: 400},
		{From: be("Tosu-Omuta-Kumamoto"), To: lattice.BOSEOS, Cost: 500},
		{From: be("Omuta-Kumamoto"), To: lattice.BOSEOS, Cost: 600},
	}

	return lattice.NewMapVocabulary(groups, conns)
}
