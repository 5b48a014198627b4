package history

import "time"

// #region entry
// Entry is one recorded execution: which code ran, on what input, with
// what output. Dimension partitions entries into independent synthesis
// streams; callers that don't care pass DefaultDimension.
type Entry struct {
	TurnID    string
	Code      string
	Dimension string
	Input     float64
	Output    float64
	CreatedAt time.Time
}

// DefaultDimension is the stream tag used when callers don't supply one.
const DefaultDimension = "default"

// #endregion entry

// #region bucket-key
// BucketKey identifies a fixed-width input bucket within one dimension.
type BucketKey struct {
	Dimension string
	Bucket    int
}

// #endregion bucket-key

// #region config
// Config bounds the buffer and sets the synthesis trigger point.
type Config struct {
	Cap              int     // hard cap on retained entries
	SynthesisAt      int     // buffer size that triggers a synthesis scan
	BucketWidth      float64 // input-bucket width for grouping
	MinBucketSamples int     // minimum samples per bucket for a fit
}

// DefaultConfig returns the standard bounds.
func DefaultConfig() Config {
	return Config{
		Cap:              100,
		SynthesisAt:      10,
		BucketWidth:      10,
		MinBucketSamples: 3,
	}
}

// #endregion config
