package generator

// CartesianIndices returns every index tuple over axes of the given lengths.
// The rightmost axis varies fastest. Any zero length yields no tuples, and no
// lengths yield a single empty tuple.
func CartesianIndices(lengths ...int) [][]int {
	total := 1
	for _, l := range lengths {
		if l <= 0 {
			return [][]int{}
		}
		total *= l
	}

	tuples := make([][]int, 0, total)
	current := make([]int, len(lengths))
	for {
		tuple := make([]int, len(current))
		copy(tuple, current)
		tuples = append(tuples, tuple)

		// odometer increment from the right
		axis := len(current) - 1
		for ; axis >= 0; axis-- {
			current[axis]++
			if current[axis] < lengths[axis] {
				break
			}
			current[axis] = 0
		}
		if axis < 0 {
			return tuples
		}
	}
}

// Product combines one element from each axis, preserving axis order.
func Product[T any](axes ...[]T) [][]T {
	lengths := make([]int, len(axes))
	for i, axis := range axes {
		lengths[i] = len(axis)
	}

	indices := CartesianIndices(lengths...)
	out := make([][]T, len(indices))
	for i, idx := range indices {
		tuple := make([]T, len(idx))
		for a, j := range idx {
			tuple[a] = axes[a][j]
		}
		out[i] = tuple
	}
	return out
}
