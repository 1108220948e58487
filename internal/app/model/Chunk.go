package model

import (
	"fmt"
	"time"
)

// Chunk is a time-bounded slice of an AudioSource. End is exclusive.
type Chunk struct {
	Index int
	Start time.Duration
	End   time.Duration
	Path  string

	// Original is set when the chunk is the untouched source file.
	// Original chunks must never be deleted by the pipeline.
	Original bool
}

// Duration returns the length of this chunk.
func (c Chunk) Duration() time.Duration {
	return c.End - c.Start
}

func (c Chunk) String() string {
	return fmt.Sprintf("chunk %d [%dms, %dms)", c.Index, c.Start.Milliseconds(), c.End.Milliseconds())
}
