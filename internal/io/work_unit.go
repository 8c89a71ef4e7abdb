package io

import (
	"github.com/atmoscan/calipso_cloud/internal/cloud"
	"github.com/atmoscan/calipso_cloud/internal/ingest"
)

// Contains the minimal data needed to process a single las file from a batch run.
type WorkUnit struct {
	FilePath   string
	FileIndex  int
	TotalFiles int
	Opts       *ingest.Options
}

// Result of processing one WorkUnit. Err is set when the file failed, in which
// case Dataset is nil. One failed file never aborts the batch.
type Result struct {
	FilePath  string
	FileIndex int
	Dataset   *cloud.Dataset
	Err       error
}
