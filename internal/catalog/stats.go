package catalog

// Stats summarizes how tracks are spread over the buckets.
type Stats struct {
	Capacity     int
	Tracks       int
	UsedBuckets  int
	LongestChain int
}

// LoadFactor is the mean chain length over all buckets.
func (s Stats) LoadFactor() float64 {
	if s.Capacity == 0 {
		return 0
	}
	return float64(s.Tracks) / float64(s.Capacity)
}

// Stats computes bucket usage.
func (c *Catalog) Stats() Stats {
	s := Stats{Capacity: len(c.buckets), Tracks: c.count}
	for _, chain := range c.buckets {
		if len(chain) == 0 {
			continue
		}
		s.UsedBuckets++
		s.LongestChain = max(s.LongestChain, len(chain))
	}
	return s
}
