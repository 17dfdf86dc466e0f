/*
Package batch segments many transcriptions concurrently.

A corpus is a sequence of utterances. Each utterance is segmented on its
own; a failing utterance is logged and counted, but never aborts the batch.
Results are returned in input order.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package batch

import (
	"context"
	"fmt"

	"github.com/npillmayer/phonseg"
	"github.com/npillmayer/phonseg/segment"
	"github.com/sourcegraph/conc/pool"
)

// Segmenter is the part of *segment.Segmenter a batch needs.
type Segmenter interface {
	Segment(text string) ([]string, error)
}

var _ Segmenter = (*segment.Segmenter)(nil)

// Result is the outcome of segmenting one utterance.
// Units are set for successful utterances and for utterances with a warning.
type Result struct {
	Index int
	Units []string
	Err   error
}

// Failed is true if the utterance could not be segmented.
func (r Result) Failed() bool {
	return r.Err != nil && !segment.IsWarning(r.Err)
}

// Summary counts the outcomes of a batch.
type Summary struct {
	Total     int
	Segmented int // without any error
	Warned    int // segmented, with a warning
	Failed    int
}

func (s Summary) String() string {
	return fmt.Sprintf("%d utterances: %d segmented, %d with warnings, %d failed",
		s.Total, s.Segmented, s.Warned, s.Failed)
}

// Run segments utterances with at most workers goroutines (at least 1).
// The returned error is non-nil only if the context is cancelled; results of
// utterances not processed are then marked with the context's error.
func Run(ctx context.Context, seg Segmenter, utterances []string, workers int) ([]Result, Summary, error) {
	if workers < 1 {
		workers = 1
	}
	results := make([]Result, len(utterances))
	p := pool.New().WithMaxGoroutines(workers)
	for i := range utterances {
		i := i
		results[i].Index = i
		p.Go(func() {
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return
			}
			results[i].Units, results[i].Err = seg.Segment(utterances[i])
		})
	}
	p.Wait()
	sum := Summary{Total: len(utterances)}
	for _, r := range results {
		switch {
		case r.Err == nil:
			sum.Segmented++
		case segment.IsWarning(r.Err):
			sum.Warned++
			phonseg.CT().Infof("utterance %d: %v", r.Index, r.Err)
		default:
			sum.Failed++
			phonseg.CT().Errorf("utterance %d: %v", r.Index, r.Err)
		}
	}
	phonseg.CT().Infof("batch: %s", sum)
	return results, sum, ctx.Err()
}
