package batch

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"Barnframe/internal/calc/frame"
	"Barnframe/internal/design"
)

var ErrNoItems = errors.New("no designs")

type Input struct {
	Designs []design.Design `json:"designs"`
}

// Entry is the outcome for one design. Error is set instead of Summary when
// the design does not lay out.
type Entry struct {
	Name       string               `json:"name"`
	PeakHeight float64              `json:"peakHeight,omitempty"`
	Members    int                  `json:"members,omitempty"`
	Summary    []frame.GroupSummary `json:"summary,omitempty"`
	Error      string               `json:"error,omitempty"`
}

type Result struct {
	Results []Entry `json:"results"`
	Failed  int     `json:"failed"`
}

// Layout builds every design on a bounded worker pool. Results keep the input
// order.
func Layout(ctx context.Context, in Input, s frame.Settings) (Result, error) {
	if len(in.Designs) == 0 {
		return Result{}, ErrNoItems
	}
	out := Result{Results: make([]Entry, len(in.Designs))}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for range min(runtime.GOMAXPROCS(0), len(in.Designs)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				out.Results[i] = build(in.Designs[i], s)
			}
		}()
	}

	var err error
feed:
	for i := range in.Designs {
		select {
		case jobs <- i:
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		}
	}
	close(jobs)
	wg.Wait()
	if err != nil {
		return Result{}, fmt.Errorf("batch layout: %w", err)
	}

	for _, e := range out.Results {
		if e.Error != "" {
			out.Failed++
		}
	}
	return out, nil
}

func build(d design.Design, s frame.Settings) Entry {
	d = d.Normalize()
	e := Entry{Name: d.StructureName}
	if err := d.Validate(); err != nil {
		e.Error = err.Error()
		return e
	}
	l, err := frame.Build(d.Dimensions, d.Openings(), s)
	if err != nil {
		e.Error = err.Error()
		return e
	}
	e.PeakHeight = l.Derived.PeakHeight
	e.Members = len(l.Members)
	e.Summary = l.Summary()
	return e
}
