package io

import (
	"context"
	"sync"

	"github.com/atmoscan/calipso_cloud/internal/cloud"
)

// ProcessFunc turns one las file into a processed dataset. Injected so the
// consumer stays decoupled from the pipeline package that drives it.
type ProcessFunc func(ctx context.Context, unit *WorkUnit) (*cloud.Dataset, error)

type StandardConsumer struct {
	process ProcessFunc
}

func NewStandardConsumer(process ProcessFunc) *StandardConsumer {
	return &StandardConsumer{
		process: process,
	}
}

// Continually consumes WorkUnits submitted to a work channel, producing one
// Result per unit. A failing file is reported on the result channel and never
// stops the remaining units. On cancellation the consumer keeps draining the
// channel, reporting the context error per unit instead of processing it: the
// producer sends on a bounded channel and has no cancellation path, so a
// consumer that stops receiving would leave it blocked and the batch barrier
// would never release.
func (c *StandardConsumer) Consume(ctx context.Context, workchan chan *WorkUnit, results chan *Result, waitGroup *sync.WaitGroup) {
	for {
		// get work from channel
		work, ok := <-workchan
		if !ok {
			// channel was closed by producer, quit infinite loop
			break
		}

		var dataset *cloud.Dataset
		err := ctx.Err()
		if err == nil {
			dataset, err = c.process(ctx, work)
		}

		results <- &Result{
			FilePath:  work.FilePath,
			FileIndex: work.FileIndex,
			Dataset:   dataset,
			Err:       err,
		}
	}

	// signal waitgroup finished work
	waitGroup.Done()
}
