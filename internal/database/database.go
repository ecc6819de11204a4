// Package database provides the practice statistics stores for key-vector
package database

import (
	"context"
	"errors"
)

// Bucket names used for served-item counters
const (
	BucketWord      = "word"
	BucketSentence  = "sentence"
	BucketParagraph = "paragraph"
	BucketError     = "error"
)

// Buckets lists every counter bucket in display order
var Buckets = []string{BucketWord, BucketSentence, BucketParagraph, BucketError}

var ErrClosed = errors.New("stats store is closed")

// Recorder counts served practice items per bucket
type Recorder interface {
	Record(ctx context.Context, bucket string) error
	Counts(ctx context.Context) (map[string]int64, error)
	Close() error
}

// Total sums all bucket counts
func Total(counts map[string]int64) int64 {
	var total int64
	for _, n := range counts {
		total += n
	}
	return total
}

// zeroCounts returns a map holding every known bucket at zero
func zeroCounts() map[string]int64 {
	counts := make(map[string]int64, len(Buckets))
	for _, b := range Buckets {
		counts[b] = 0
	}
	return counts
}
