package history

import "math"

// #region buffer
// Buffer is a bounded FIFO of execution entries. One executor owns one
// buffer; there is no locking because there is no sharing.
type Buffer struct {
	config  Config
	entries []Entry
}

// NewBuffer creates a buffer with the given bounds.
func NewBuffer(config Config) *Buffer {
	return &Buffer{config: config}
}

// #endregion buffer

// #region append
// Append records an entry, evicting oldest-first past the hard cap.
func (b *Buffer) Append(e Entry) {
	b.entries = append(b.entries, e)
	if over := len(b.entries) - b.config.Cap; over > 0 {
		b.entries = b.entries[over:]
	}
}

// #endregion append

// #region reset
// Reset drops every retained entry. Buffers do not outlive a process,
// so replaying a multi-session recording resets at each boundary.
func (b *Buffer) Reset() {
	b.entries = b.entries[:0]
}

// #endregion reset

// #region accessors
// Len returns the number of retained entries.
func (b *Buffer) Len() int {
	return len(b.entries)
}

// Full reports whether the buffer has reached the synthesis trigger size.
func (b *Buffer) Full() bool {
	return len(b.entries) >= b.config.SynthesisAt
}

// Snapshot returns a copy of the retained entries, oldest first.
func (b *Buffer) Snapshot() []Entry {
	out := make([]Entry, len(b.entries))
	copy(out, b.entries)
	return out
}

// Config returns the buffer's bounds.
func (b *Buffer) Config() Config {
	return b.config
}

// #endregion accessors

// #region bucketing
// KeyFor returns the bucket an entry belongs to.
func (b *Buffer) KeyFor(e Entry) BucketKey {
	return BucketKey{
		Dimension: e.Dimension,
		Bucket:    int(math.Floor(e.Input / b.config.BucketWidth)),
	}
}

// Buckets groups retained entries by (dimension, input bucket), keeping
// only buckets with at least MinBucketSamples entries. Entries with
// non-finite inputs or outputs are skipped.
func (b *Buffer) Buckets() map[BucketKey][]Entry {
	groups := make(map[BucketKey][]Entry)
	for _, e := range b.entries {
		if !finite(e.Input) || !finite(e.Output) {
			continue
		}
		key := b.KeyFor(e)
		groups[key] = append(groups[key], e)
	}
	for key, entries := range groups {
		if len(entries) < b.config.MinBucketSamples {
			delete(groups, key)
		}
	}
	return groups
}

// #endregion bucketing

// #region evict
// EvictBucket removes the retained entries that fed a fit for key and
// returns how many were removed. Non-finite entries never feed a fit,
// so they are left for cap-based eviction.
func (b *Buffer) EvictBucket(key BucketKey) int {
	kept := b.entries[:0]
	removed := 0
	for _, e := range b.entries {
		if finite(e.Input) && finite(e.Output) && b.KeyFor(e) == key {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	b.entries = kept
	return removed
}

// #endregion evict

// #region helpers
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// #endregion helpers
