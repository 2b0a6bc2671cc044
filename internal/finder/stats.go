package finder

import (
	"io"
	"sync/atomic"

	"github.com/jedib0t/go-pretty/v6/table"
)

type counters struct {
	visited    atomic.Int64
	candidates atomic.Int64
	signatures atomic.Int64
	reported   atomic.Int64
	failures   [numKinds]atomic.Int64
}

func (c *counters) snapshot() Stats {
	s := Stats{
		Visited:    c.visited.Load(),
		Candidates: c.candidates.Load(),
		Signatures: c.signatures.Load(),
		Reported:   c.reported.Load(),
	}
	for k := range c.failures {
		s.Failures[k] = c.failures[k].Load()
	}
	return s
}

// Stats summarizes a completed run.
type Stats struct {
	Visited    int64 // directory entries seen by the walker
	Candidates int64 // regular files handed to workers
	Signatures int64 // files with a SQLite header
	Reported   int64 // blocks written
	Failures   [numKinds]int64
}

// FailuresOf returns how many files failed at the given stage.
func (s Stats) FailuresOf(k Kind) int64 {
	if k < 0 || k >= numKinds {
		return 0
	}
	return s.Failures[k]
}

// Render writes the summary as a table.
func (s Stats) Render(w io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	t.AppendHeader(table.Row{"stage", "count"})
	t.AppendRow(table.Row{"entries visited", s.Visited})
	t.AppendRow(table.Row{"regular files", s.Candidates})
	t.AppendRow(table.Row{"sqlite headers", s.Signatures})
	t.AppendRow(table.Row{"databases reported", s.Reported})
	t.AppendSeparator()
	for k := Kind(0); k < numKinds; k++ {
		t.AppendRow(table.Row{k.String() + " errors", s.Failures[k]})
	}

	t.Render()
}
