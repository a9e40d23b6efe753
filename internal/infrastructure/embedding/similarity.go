package embedding

import "math"

// CosineSimilarity computes the cosine similarity of two vectors.  Mismatched
// lengths or zero-magnitude inputs yield 0.  The encoder's vectors are
// non-negative-normalized in practice, so the result lands in [0,1]; callers
// that must guarantee the range should clamp.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		av, bv := float64(a[i]), float64(b[i])
		dot += av * bv
		normA += av * av
		normB += bv * bv
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// ClampUnit clamps v into [0,1].
func ClampUnit(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
