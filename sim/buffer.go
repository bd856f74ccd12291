package sim

// State is the queueing state of the shared buffer: per-class byte occupancy
// plus its running total. It is a plain value; admission and service take a
// State and return the updated one, so concurrent runs never share storage
// and tests can assert on exact before/after snapshots.
type State struct {
	Queued [NumClasses]int64
	Total  int64
}

// AdmitArrivals inserts one step's arrivals into the shared buffer, walking
// classes in the given order. Each class admits at most the free space left
// when its turn comes and drops the rest, so earlier classes win contention
// for a nearly-full buffer.
//
// For every class admitted[c] + dropped[c] == arrivals[c], and the returned
// state's Total never exceeds capacityBytes.
func AdmitArrivals(st State, capacityBytes int64, order []Class, arrivals [NumClasses]int64) (State, [NumClasses]int64, [NumClasses]int64) {
	var admitted, dropped [NumClasses]int64
	for _, c := range order {
		take := arrivals[c]
		if free := capacityBytes - st.Total; take > free {
			take = free
		}
		st.Queued[c] += take
		st.Total += take
		admitted[c] = take
		dropped[c] = arrivals[c] - take
	}
	return st, admitted, dropped
}
