package queue

// Summary is the dashboard aggregation over one role's queue. Buckets are
// disjoint: each item counts under the highest threshold its age meets, so
// thresholds [2,5,10] classify a 6-day-old item under 5 only. Items younger
// than every threshold contribute to Total alone.
type Summary struct {
	Role    string      `json:"role"`
	Total   int         `json:"total"`
	Buckets map[int]int `json:"buckets"`
}
