package sim

// ServeProportional drains queued bytes against one step's link budget,
// giving each class a share proportional to its occupancy at the start of
// the step. Shares are floored to whole bytes and capped at the class's own
// occupancy. There is no second pass: budget freed by flooring or by a class
// draining below its share stays idle for the rest of the step, a deliberate
// small under-utilization that keeps the service rule single-shot.
func ServeProportional(st State, budgetBytes int64, order []Class) (State, [NumClasses]int64) {
	var served [NumClasses]int64
	total := st.Total
	if total == 0 {
		return st, served
	}
	for _, c := range order {
		share := int64(float64(st.Queued[c]) / float64(total) * float64(budgetBytes))
		if share > st.Queued[c] {
			share = st.Queued[c]
		}
		st.Queued[c] -= share
		st.Total -= share
		served[c] = share
	}
	return st, served
}
