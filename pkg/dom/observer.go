package dom

// Op identifies a tree mutation.
type Op uint8

const (
	OpCreate Op = iota + 1
	OpAppend
	OpInsert
	OpRemove
	OpSetAttribute
	OpRemoveAttribute
	OpRelease
)

// String returns the string representation of the Op.
func (op Op) String() string {
	switch op {
	case OpCreate:
		return "create"
	case OpAppend:
		return "append"
	case OpInsert:
		return "insert"
	case OpRemove:
		return "remove"
	case OpSetAttribute:
		return "setAttribute"
	case OpRemoveAttribute:
		return "removeAttribute"
	case OpRelease:
		return "release"
	default:
		return "unknown"
	}
}

// Dispatch names the native path a mutation took.
type Dispatch uint8

const (
	// DispatchNone: the mutation has no native side (creation, attribute
	// writes, comments, document children).
	DispatchNone Dispatch = iota

	// DispatchText: the parent's concatenated text was re-projected.
	DispatchText

	// DispatchSkipped: the child is flagged skip-native.
	DispatchSkipped

	// DispatchRejected: the parent is flagged no-children.
	DispatchRejected

	// DispatchOverride: the parent's NodeOps handled it.
	DispatchOverride

	// DispatchRole: reflected through the child's nodeRole.
	DispatchRole

	// DispatchFailed: an integration gap was reported and the native tree
	// was left unchanged.
	DispatchFailed
)

// String returns the string representation of the Dispatch.
func (d Dispatch) String() string {
	switch d {
	case DispatchNone:
		return "none"
	case DispatchText:
		return "text"
	case DispatchSkipped:
		return "skipped"
	case DispatchRejected:
		return "rejected"
	case DispatchOverride:
		return "override"
	case DispatchRole:
		return "role"
	case DispatchFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Mutation describes one applied tree mutation.
type Mutation struct {
	Op   Op
	Node int64
	Kind NodeType
	Tag  string

	// Parent is 0 when the mutation has no parent.
	Parent    int64
	ParentTag string

	// Index is the true index passed to the dispatcher, or -1.
	Index int

	// Name is the attribute name for attribute mutations.
	Name string

	Dispatch Dispatch
}

// Observer receives every mutation and every reported integration gap.
// Calls happen synchronously on the mutating goroutine.
type Observer interface {
	Mutated(m Mutation)
	Reported(err error)
}

// Observers fans out to several observers in order.
type Observers []Observer

// Mutated implements Observer.
func (o Observers) Mutated(m Mutation) {
	for _, obs := range o {
		obs.Mutated(m)
	}
}

// Reported implements Observer.
func (o Observers) Reported(err error) {
	for _, obs := range o {
		obs.Reported(err)
	}
}

type nopObserver struct{}

func (nopObserver) Mutated(Mutation) {}
func (nopObserver) Reported(error)   {}
