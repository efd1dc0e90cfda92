package textutil

const (
	winklerPrefixLimit = 4
	winklerScaling     = 0.1
	winklerBoostAbove  = 0.7
)

// Jaro computes the Jaro similarity between a and b over code points.
// Two empty strings are identical; one empty string scores 0.
func Jaro(a, b string) float64 {
	ar := []rune(a)
	br := []rune(b)
	if len(ar) == 0 && len(br) == 0 {
		return 1
	}
	if len(ar) == 0 || len(br) == 0 {
		return 0
	}

	window := max(len(ar), len(br))/2 - 1
	if window < 0 {
		window = 0
	}

	aFlags := make([]bool, len(ar))
	bFlags := make([]bool, len(br))
	matches := 0
	for i, r := range ar {
		lo := max(0, i-window)
		hi := min(len(br), i+window+1)
		for j := lo; j < hi; j++ {
			if bFlags[j] || br[j] != r {
				continue
			}
			aFlags[i] = true
			bFlags[j] = true
			matches++
			break
		}
	}
	if matches == 0 {
		return 0
	}

	transpositions := 0
	j := 0
	for i, r := range ar {
		if !aFlags[i] {
			continue
		}
		for !bFlags[j] {
			j++
		}
		if r != br[j] {
			transpositions++
		}
		j++
	}
	transpositions /= 2

	m := float64(matches)
	return (m/float64(len(ar)) + m/float64(len(br)) + (m-float64(transpositions))/m) / 3
}

// JaroWinkler computes the Jaro-Winkler similarity between a and b.
// The common-prefix boost only applies when the Jaro score exceeds 0.7.
func JaroWinkler(a, b string) float64 {
	sim := Jaro(a, b)
	if sim <= winklerBoostAbove {
		return sim
	}

	ar := []rune(a)
	br := []rune(b)
	prefix := 0
	for prefix < len(ar) && prefix < len(br) && prefix < winklerPrefixLimit && ar[prefix] == br[prefix] {
		prefix++
	}

	score := sim + winklerScaling*float64(prefix)*(1-sim)
	if score > 1 {
		return 1
	}
	return score
}
