package streak

// Milestones are the streak lengths worth celebrating, ascending.
var Milestones = []int{7, 14, 21, 30, 60, 90, 100, 365}

// CrossedMilestone returns the highest milestone m with before < m <= after.
func CrossedMilestone(before, after int) (int, bool) {
	crossed, ok := 0, false
	for _, m := range Milestones {
		if before < m && m <= after {
			crossed, ok = m, true
		}
	}
	return crossed, ok
}

// NextMilestone returns the smallest milestone strictly greater than n.
func NextMilestone(n int) (int, bool) {
	for _, m := range Milestones {
		if m > n {
			return m, true
		}
	}
	return 0, false
}
