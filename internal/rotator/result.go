package rotator

// Category classifies where a run failed
type Category int

const (
	CategoryNone Category = iota
	// CategoryFetch: network error, non-2xx status or non-JSON body from the credential endpoint
	CategoryFetch
	// CategoryAuth: no authentication strategy produced a cluster config
	CategoryAuth
	// CategoryRead: the secret could not be read (not found, forbidden, network)
	CategoryRead
	// CategoryWrite: the secret could not be written back (conflict, forbidden, network)
	CategoryWrite
)

func (c Category) String() string {
	switch c {
	case CategoryNone:
		return "none"
	case CategoryFetch:
		return "fetch"
	case CategoryAuth:
		return "auth"
	case CategoryRead:
		return "read"
	case CategoryWrite:
		return "write"
	}
	return "unknown"
}

// Result is the outcome of one stage
type Result struct {
	Category Category
	Err      error
}

func (r Result) Failed() bool {
	return r.Err != nil
}

// Policy says how a failure category is reported and whether it ends the process with an error
type Policy struct {
	// Message prefixes the status line. Empty means no status line.
	Message   string
	Propagate bool
}

// Policies maps every failure category to its handling. Only auth failures propagate,
// every other failure is printed and the process still exits 0. Auth failures
// are already described by the kubeconfig strategy's own output.
var Policies = map[Category]Policy{
	CategoryFetch: {Message: "❌ Error fetching credentials", Propagate: false},
	CategoryAuth:  {Propagate: true},
	CategoryRead:  {Message: "❌ Error updating secret", Propagate: false},
	CategoryWrite: {Message: "❌ Error updating secret", Propagate: false},
}
