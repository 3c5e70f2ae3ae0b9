// Package catalog implements the in-memory track index.
//
// A Catalog is a hash table with a fixed number of buckets and chained
// collision resolution. Tracks are keyed by artist: the artist is case-folded
// (ASCII only), hashed with djb2 and reduced modulo the bucket count.
//
// # Operations
//
//	cat, err := catalog.New(len(tracks))
//	for _, t := range tracks {
//	    var dup *catalog.DuplicateError
//	    if err := cat.Insert(t); errors.As(err, &dup) {
//	        log.Printf("skipping %v, first seen on line %d", t, dup.Existing.Line)
//	    }
//	}
//
//	found := cat.Search("the beatles")            // insertion order
//	removed := cat.Remove("Let It Be", "BEATLES") // false when absent
//	everything := cat.All()                      // bucket order, then chain order
//
// # Invariants
//
//   - No two stored tracks have equal (title, artist) ignoring case.
//   - A track lives in bucket Hash(artist) % Capacity() and nowhere else.
//   - Chains preserve insertion order; removal keeps the order of the rest.
//   - Capacity is fixed for the life of the catalog.
package catalog
