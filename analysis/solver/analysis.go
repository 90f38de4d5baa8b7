package solver

// Analysis configures the fixed-point computation for a particular
// dataflow problem. F is the fact attached to each program point and
// is mutated in place by MeetInto and TransferNode.
type Analysis[N comparable, F any] interface {
	// IsForward reports whether facts flow with the edges (forward)
	// or against them (backward).
	IsForward() bool

	// NewBoundaryFact produces the fact for the boundary node of g,
	// the entry for forward analyses and the exit for backward ones.
	NewBoundaryFact(g Graph[N]) F

	// NewInitialFact produces the optimistic fact every other program
	// point starts from.
	NewInitialFact() F

	// MeetInto merges fact into target, mutating target.
	MeetInto(fact, target F)

	// TransferNode applies the node's transfer function, reading the
	// source-side fact and writing the result-side one: forward
	// analyses compute out from in, backward analyses compute in from
	// out. It reports whether the written fact changed.
	TransferNode(n N, in, out F) bool
}
