package matching

// Similarity primitives. Every helper returns a value in [0, 100].

const similarityScale = 100.0

// histogramOverlap measures how much two count histograms agree, using
// histogram intersection over the normalized distributions.
func histogramOverlap(a, b map[string]int) float64 {
	totalA, totalB := 0, 0
	for _, v := range a {
		totalA += v
	}
	for _, v := range b {
		totalB += v
	}
	if totalA == 0 || totalB == 0 {
		return 0
	}
	overlap := 0.0
	for k, va := range a {
		vb, ok := b[k]
		if !ok {
			continue
		}
		shareA := float64(va) / float64(totalA)
		shareB := float64(vb) / float64(totalB)
		if shareA < shareB {
			overlap += shareA
		} else {
			overlap += shareB
		}
	}
	return overlap * similarityScale
}

// hourOverlap applies histogram intersection to two hourly activity profiles.
func hourOverlap(a, b [24]int) float64 {
	totalA, totalB := 0, 0
	for h := range a {
		totalA += a[h]
		totalB += b[h]
	}
	if totalA == 0 || totalB == 0 {
		return 0
	}
	overlap := 0.0
	for h := range a {
		shareA := float64(a[h]) / float64(totalA)
		shareB := float64(b[h]) / float64(totalB)
		if shareA < shareB {
			overlap += shareA
		} else {
			overlap += shareB
		}
	}
	return overlap * similarityScale
}

// jaccard measures set overlap between two string slices.
func jaccard(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	setA := toSet(a)
	setB := toSet(b)
	inter := 0
	for k := range setA {
		if _, ok := setB[k]; ok {
			inter++
		}
	}
	union := len(setA) + len(setB) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union) * similarityScale
}

// commonCount returns the size of the intersection of two string slices.
func commonCount(a, b []string) int {
	setA := toSet(a)
	cnt := 0
	seen := make(map[string]struct{}, len(b))
	for _, k := range b {
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		if _, ok := setA[k]; ok {
			cnt++
		}
	}
	return cnt
}

// commonKeys returns the number of keys present in both histograms.
func commonKeys(a, b map[string]int) int {
	cnt := 0
	for k := range a {
		if _, ok := b[k]; ok {
			cnt++
		}
	}
	return cnt
}

func toSet(ss []string) map[string]struct{} {
	m := make(map[string]struct{}, len(ss))
	for _, s := range ss {
		m[s] = struct{}{}
	}
	return m
}
