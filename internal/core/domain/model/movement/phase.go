package movement

// Phase is the position of a leg in its state machine.
//
//	Traversing ──deny×threshold──> Stuck ──> Rebuilding ──> Traversing
//	     │                           │            │
//	     │                           │            └──(empty route)──> Arrived
//	     │                           └──(budget spent)──> Aborted
//	     └──(route exhausted)──> Arrived
type Phase int

const (
	// Traversing requests permission hop by hop.
	Traversing Phase = iota + 1
	// Stuck means the stall threshold was reached and a new route is due.
	Stuck
	// Rebuilding waits for the replacement route.
	Rebuilding
	// Arrived means the last waypoint was confirmed.
	Arrived
	// Aborted means the leg failed and must not be continued.
	Aborted
)

var phaseNames = map[Phase]string{
	Traversing: "traversing",
	Stuck:      "stuck",
	Rebuilding: "rebuilding",
	Arrived:    "arrived",
	Aborted:    "aborted",
}

// String implements fmt.Stringer.
func (p Phase) String() string {
	if s, ok := phaseNames[p]; ok {
		return s
	}
	return "unknown"
}

// IsFinal reports whether no further transition is possible.
func (p Phase) IsFinal() bool {
	return p == Arrived || p == Aborted
}
