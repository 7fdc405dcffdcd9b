package frames

// Apportion distributes total frames across sections proportionally to
// their weights using largest-remainder apportionment: each section gets
// the floor of its exact quota, and the leftover frames go one at a time to
// the sections with the largest quotas, ties broken by earlier index. The
// result always sums exactly to total. Non-positive weights are treated
// as 1.
func Apportion(total int, weights []int) []int {
	n := len(weights)
	alloc := make([]int, n)
	if n == 0 || total <= 0 {
		return alloc
	}

	w := make([]int, n)
	sum := 0
	for i, v := range weights {
		if v < 1 {
			v = 1
		}
		w[i] = v
		sum += v
	}

	given := 0
	for i := range w {
		alloc[i] = total * w[i] / sum
		given += alloc[i]
	}

	// Hand the surplus to the largest quotas first. Quotas order the same
	// way weights do for a fixed total/sum, so sorting indices by weight
	// descending (stable, earlier index wins ties) is enough.
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	for i := 1; i < n; i++ {
		for j := i; j > 0 && w[order[j]] > w[order[j-1]]; j-- {
			order[j], order[j-1] = order[j-1], order[j]
		}
	}
	for i := 0; given < total; i = (i + 1) % n {
		alloc[order[i]]++
		given++
	}
	return alloc
}
