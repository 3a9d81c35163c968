package main

import (
	"flag"
	"fmt"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"nocturne-fx/internal/app"
	"nocturne-fx/internal/engine"
	"nocturne-fx/internal/sweep"
)

type job struct {
	candidate sweep.Candidate
	trace     sweep.Trace
}

type score struct {
	candidate   sweep.Candidate
	transitions int
	reduced     float64
	results     []sweep.Result
}

func parseList(s string) []float64 {
	var out []float64
	for _, f := range strings.Split(s, ",") {
		if v, err := strconv.ParseFloat(strings.TrimSpace(f), 64); err == nil {
			out = append(out, v)
		}
	}
	return out
}

func main() {
	frames := flag.Int("frames", 600, "frames to replay per trace")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	lows := flag.String("lows", "40,45,50", "comma-separated low watermarks")
	highs := flag.String("highs", "52,55,58", "comma-separated high watermarks")
	var overrides app.KVList
	flag.Var(&overrides, "set", "engine option in key=value form (repeatable)")
	flag.Parse()

	opts := engine.OptionsFromMap(overrides.Map())
	candidates := sweep.Grid(parseList(*lows), parseList(*highs))
	traces := sweep.Traces()

	fmt.Printf("Sweeping %d watermark pairs over %d traces (%d workers, %d frames)\n",
		len(candidates), len(traces), *workers, *frames)

	jobs := make(chan job)
	results := make(chan sweep.Result)
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				results <- sweep.Run(j.candidate, j.trace, *frames, opts)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, c := range candidates {
			for _, tr := range traces {
				jobs <- job{candidate: c, trace: tr}
			}
		}
		close(jobs)
	}()

	start := time.Now()
	scores := map[sweep.Candidate]*score{}
	for res := range results {
		s, ok := scores[res.Candidate]
		if !ok {
			s = &score{candidate: res.Candidate}
			scores[res.Candidate] = s
		}
		s.transitions += res.Transitions
		s.reduced += res.ReducedShare()
		s.results = append(s.results, res)
	}

	all := make([]*score, 0, len(scores))
	for _, s := range scores {
		sort.Slice(s.results, func(i, j int) bool { return s.results[i].Trace < s.results[j].Trace })
		all = append(all, s)
	}
	// Fewest flips first, then least time spent reduced.
	sort.Slice(all, func(i, j int) bool {
		if all[i].transitions != all[j].transitions {
			return all[i].transitions < all[j].transitions
		}
		if all[i].reduced != all[j].reduced {
			return all[i].reduced < all[j].reduced
		}
		return all[i].candidate.Low < all[j].candidate.Low
	})

	fmt.Printf("Completed in %s\n\n", time.Since(start).Round(time.Millisecond))
	for _, s := range all {
		fmt.Printf("%s: %d transitions\n", s.candidate, s.transitions)
		for _, r := range s.results {
			fmt.Printf("  %-9s transitions=%d reduced=%5.1f%% final=%s mean target=%.1f\n",
				r.Trace, r.Transitions, 100*r.ReducedShare(), r.Final, r.MeanTarget)
		}
	}
}
