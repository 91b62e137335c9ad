package similarity

import (
	"math"
	"testing"
)

func TestParseMetric(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Metric
		wantErr bool
	}{
		{name: "cosine", input: "cosine", want: Cosine},
		{name: "euclidean", input: "euclidean", want: Euclidean},
		{name: "inner product", input: "inner_product", want: InnerProduct},
		{name: "unknown", input: "manhattan", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMetric(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if got != tt.want {
				t.Fatalf("metric: got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDistance(t *testing.T) {
	tests := []struct {
		name   string
		metric Metric
		a, b   []float64
		want   float64
	}{
		{
			name:   "cosine identical vectors",
			metric: Cosine,
			a:      []float64{1, 2, 3},
			b:      []float64{1, 2, 3},
			want:   0,
		},
		{
			name:   "cosine orthogonal vectors",
			metric: Cosine,
			a:      []float64{1, 0},
			b:      []float64{0, 1},
			want:   1,
		},
		{
			name:   "cosine zero vector",
			metric: Cosine,
			a:      []float64{0, 0},
			b:      []float64{1, 1},
			want:   1,
		},
		{
			name:   "euclidean 3-4-5",
			metric: Euclidean,
			a:      []float64{0, 0},
			b:      []float64{3, 4},
			want:   5,
		},
		{
			name:   "inner product negated",
			metric: InnerProduct,
			a:      []float64{1, 2},
			b:      []float64{3, 4},
			want:   -11,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Distance(tt.metric, tt.a, tt.b)
			if err != nil {
				t.Fatalf("distance: %v", err)
			}
			if math.Abs(got-tt.want) > 1e-12 {
				t.Fatalf("distance: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDistanceDimensionMismatch(t *testing.T) {
	if _, err := Distance(Cosine, []float64{1, 2}, []float64{1, 2, 3}); err == nil {
		t.Fatalf("mismatched dimensions should fail")
	}
	if _, err := Distance(Euclidean, nil, nil); err == nil {
		t.Fatalf("empty vectors should fail")
	}
}

func TestRank(t *testing.T) {
	query := []float64{1, 0}
	candidates := []Candidate{
		{ID: "far", Vector: []float64{0, 1}},
		{ID: "near", Vector: []float64{1, 0.1}},
		{ID: "exact", Vector: []float64{1, 0}},
	}

	t.Run("orders closest first", func(t *testing.T) {
		matches, err := Rank(query, candidates, Cosine, math.Inf(1), 0)
		if err != nil {
			t.Fatalf("rank: %v", err)
		}
		if len(matches) != 3 {
			t.Fatalf("match count: got %d, want 3", len(matches))
		}
		if matches[0].ID != "exact" || matches[1].ID != "near" || matches[2].ID != "far" {
			t.Fatalf("order: got %v", matches)
		}
	})

	t.Run("max distance drops far candidates", func(t *testing.T) {
		matches, err := Rank(query, candidates, Cosine, 0.5, 0)
		if err != nil {
			t.Fatalf("rank: %v", err)
		}
		for _, m := range matches {
			if m.ID == "far" {
				t.Fatalf("candidate beyond max distance survived: %v", matches)
			}
		}
	})

	t.Run("limit caps results", func(t *testing.T) {
		matches, err := Rank(query, candidates, Euclidean, math.Inf(1), 1)
		if err != nil {
			t.Fatalf("rank: %v", err)
		}
		if len(matches) != 1 || matches[0].ID != "exact" {
			t.Fatalf("limited matches: got %v", matches)
		}
	})

	t.Run("mismatched candidate fails whole call", func(t *testing.T) {
		bad := append(candidates, Candidate{ID: "bad", Vector: []float64{1}})
		if _, err := Rank(query, bad, Cosine, math.Inf(1), 0); err == nil {
			t.Fatalf("mismatched candidate should fail")
		}
	})
}
