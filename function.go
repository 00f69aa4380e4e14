package sketchfn

// A Function is anything an execution engine can invoke. Every Function carries
// an immutable Descriptor of its declared inputs and outputs.
type Function interface {
	Descriptor() Descriptor // Descriptor returns the declared input and output Kinds of this Function
}

// A TransformFunction is a stateless mapping from an input tuple to an output tuple.
// Implementations must be pure: no hidden state, no side effects visible to the caller,
// and deterministic for identical input. The input is assumed to already satisfy the
// Descriptor's declared input shape.
type TransformFunction interface {
	Function
	Transform(input []interface{}) ([]interface{}, error) // Transform maps an input tuple to an output tuple
	StatelessClone() TransformFunction                    // StatelessClone produces an independent copy with an equal Descriptor
}

// An AggregateFunction accumulates a running Summary across a sequence of inputs
// and exposes the current Summary on demand. A fresh AggregateFunction holds no
// Summary; the first input it receives is copied (never aliased) and every later
// input is merged into that copy. An AggregateFunction is single-writer: callers
// needing concurrency must obtain independent instances via StatelessClone.
type AggregateFunction interface {
	Function
	Aggregate(input Summary) error           // Aggregate merges input into the held Summary. An absent input is ignored
	State() Summary                          // State returns the held Summary, or nil if nothing has been aggregated
	StatelessClone() AggregateFunction       // StatelessClone produces an empty AggregateFunction with an equal Descriptor
	Equal(o AggregateFunction) (bool, error) // Equal compares Descriptors and the serialized form of held Summaries
	Hash() (uint64, error)                   // Hash is consistent with Equal
}

// TransformFactory is a function that produces a fresh TransformFunction
type TransformFactory func() TransformFunction

// AggregateFactory is a function that produces a fresh, empty AggregateFunction
type AggregateFactory func() AggregateFunction
