package solver

// Graph abstracts the control flow structure an analysis runs over.
// Nodes returns every node in a stable order; Entry and Exit are the
// artificial boundary nodes and appear in Nodes as well.
type Graph[N comparable] interface {
	Entry() N
	Exit() N
	Nodes() []N
	IsEntry(n N) bool
	IsExit(n N) bool
	PredsOf(n N) []N
	SuccsOf(n N) []N
}
