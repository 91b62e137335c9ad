// Package similarity ranks embedding vectors under pluggable distance
// metrics. It treats vectors as opaque coordinates; the extraction
// pipeline guarantees their dimensional and scale consistency.
package similarity

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Metric selects the distance function used for ranking
type Metric string

const (
	// Cosine is 1 - cosine similarity
	Cosine Metric = "cosine"

	// Euclidean is the L2 distance
	Euclidean Metric = "euclidean"

	// InnerProduct ranks by negative inner product, so larger products
	// sort first
	InnerProduct Metric = "inner_product"
)

// ParseMetric validates a metric name
func ParseMetric(name string) (Metric, error) {
	switch Metric(name) {
	case Cosine, Euclidean, InnerProduct:
		return Metric(name), nil
	default:
		return "", fmt.Errorf("unknown distance metric: %q", name)
	}
}

// Distance computes the distance between two vectors under the metric.
// Lower is always more similar. Vectors must have the same nonzero
// dimension.
func Distance(metric Metric, a, b []float64) (float64, error) {
	if len(a) == 0 || len(a) != len(b) {
		return 0, fmt.Errorf("vector dimensions do not match: %d vs %d", len(a), len(b))
	}

	switch metric {
	case Cosine:
		return cosineDistance(a, b), nil
	case Euclidean:
		return floats.Distance(a, b, 2), nil
	case InnerProduct:
		return -floats.Dot(a, b), nil
	default:
		return 0, fmt.Errorf("unknown distance metric: %q", metric)
	}
}

// cosineDistance is 1 - cosine similarity; zero vectors are maximally distant
func cosineDistance(a, b []float64) float64 {
	normA := floats.Norm(a, 2)
	normB := floats.Norm(b, 2)

	if normA == 0 || normB == 0 {
		return 1.0
	}

	return 1.0 - floats.Dot(a, b)/(normA*normB)
}

// Candidate is one vector in the search set
type Candidate struct {
	ID     string    `json:"id"`
	Vector []float64 `json:"vector"`
}

// Match is one ranked result
type Match struct {
	ID       string  `json:"id"`
	Distance float64 `json:"distance"`
}

// Rank orders candidates by distance to the query, closest first.
// Candidates farther than maxDistance are dropped (pass +Inf to keep
// all), and at most limit results are returned (limit <= 0 means no
// cap). A candidate with a mismatched dimension fails the whole call.
func Rank(query []float64, candidates []Candidate, metric Metric, maxDistance float64, limit int) ([]Match, error) {
	matches := make([]Match, 0, len(candidates))

	for _, candidate := range candidates {
		distance, err := Distance(metric, query, candidate.Vector)
		if err != nil {
			return nil, fmt.Errorf("candidate %s: %w", candidate.ID, err)
		}

		if !math.IsInf(maxDistance, 1) && distance > maxDistance {
			continue
		}

		matches = append(matches, Match{ID: candidate.ID, Distance: distance})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Distance < matches[j].Distance
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	return matches, nil
}
