package io

import (
	"sync"

	"github.com/atmoscan/calipso_cloud/internal/ingest"
)

type StandardProducer struct {
	options *ingest.Options
}

func NewStandardProducer(options *ingest.Options) *StandardProducer {
	return &StandardProducer{
		options: options,
	}
}

// Submits one WorkUnit per las file to the provided work channel.
// Closes the channel when all work is submitted.
func (p *StandardProducer) Produce(work chan *WorkUnit, wg *sync.WaitGroup, files []string) {
	for i, filePath := range files {
		work <- &WorkUnit{
			FilePath:   filePath,
			FileIndex:  i,
			TotalFiles: len(files),
			Opts:       p.options,
		}
	}
	close(work)
	wg.Done()
}
