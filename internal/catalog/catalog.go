package catalog

import (
	"errors"
	"fmt"
	"slices"

	"github.com/handiism/track-library/internal/model"
)

var (
	// ErrInvalidCapacity is returned by New for a bucket count below one.
	ErrInvalidCapacity = errors.New("catalog capacity must be greater than zero")

	// ErrDuplicate is matched by every *DuplicateError.
	ErrDuplicate = errors.New("duplicate track")
)

// DuplicateError reports an insert rejected because the catalog already holds
// a track with the same title and artist, ignoring case.
type DuplicateError struct {
	// Existing is the track already stored. Its Line identifies where it came from.
	Existing model.Track

	// Rejected is the track that was discarded.
	Rejected model.Track
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate track found on line %d: track %q by artist %q",
		e.Existing.Line, e.Rejected.Title, e.Rejected.Artist)
}

// Is makes errors.Is(err, ErrDuplicate) true for a *DuplicateError.
func (e *DuplicateError) Is(target error) bool {
	return target == ErrDuplicate
}

// Catalog is a fixed-size hash table of tracks keyed by case-folded artist.
//
// Each bucket is a chain of tracks kept in insertion order. The number of
// buckets is set by New and never changes: the table does not rehash, so a
// skewed artist distribution only makes some chains longer.
//
// A Catalog is not safe for concurrent use.
type Catalog struct {
	buckets [][]model.Track
	count   int
}

// New creates an empty catalog with capacity buckets.
//
// The conventional capacity is the number of records in the initial load,
// giving roughly one bucket per record.
func New(capacity int) (*Catalog, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
	}
	return &Catalog{buckets: make([][]model.Track, capacity)}, nil
}

// Capacity returns the fixed number of buckets.
func (c *Catalog) Capacity() int {
	return len(c.buckets)
}

// Len returns the number of stored tracks.
func (c *Catalog) Len() int {
	return c.count
}

// BucketIndex returns the bucket an artist hashes to.
func (c *Catalog) BucketIndex(artist string) int {
	return int(Hash(artist) % uint64(len(c.buckets)))
}

// Insert appends track to the tail of its artist's bucket.
//
// If the bucket already holds a track whose title and artist both match
// track's ignoring case, nothing is stored and a *DuplicateError naming the
// existing track is returned.
func (c *Catalog) Insert(track model.Track) error {
	idx := c.BucketIndex(track.Artist)
	chain := c.buckets[idx]

	for _, existing := range chain {
		if sameTrack(existing, track.Title, track.Artist) {
			return &DuplicateError{Existing: existing, Rejected: track}
		}
	}

	c.buckets[idx] = append(chain, track)
	c.count++
	return nil
}

// Remove deletes the first track in chain order matching title and artist,
// ignoring case. It reports whether a track was removed.
func (c *Catalog) Remove(title, artist string) bool {
	idx := c.BucketIndex(artist)
	chain := c.buckets[idx]

	i := slices.IndexFunc(chain, func(t model.Track) bool {
		return sameTrack(t, title, artist)
	})
	if i < 0 {
		return false
	}

	c.buckets[idx] = slices.Delete(chain, i, i+1)
	c.count--
	return true
}

// Search returns every track by artist, ignoring case, in insertion order.
// The result is empty when nothing matches.
func (c *Catalog) Search(artist string) []model.Track {
	var found []model.Track
	for _, t := range c.buckets[c.BucketIndex(artist)] {
		if EqualFold(t.Artist, artist) {
			found = append(found, t)
		}
	}
	return found
}

// All returns every stored track, bucket by bucket from index 0, each bucket
// in insertion order.
func (c *Catalog) All() []model.Track {
	all := make([]model.Track, 0, c.count)
	for _, chain := range c.buckets {
		all = append(all, chain...)
	}
	return all
}

func sameTrack(t model.Track, title, artist string) bool {
	return EqualFold(t.Title, title) && EqualFold(t.Artist, artist)
}
