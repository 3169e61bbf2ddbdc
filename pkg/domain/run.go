package domain

// Run is the trace of a single execution.
type Run struct {
	// ID correlates the run with logs and events. The engine core leaves it empty.
	ID string `json:"run_id,omitempty"`

	// Path lists every state visited, starting with the initial state.
	Path []StateName `json:"path"`

	// Final is the state the run stopped in. On failure it is the last state reached.
	Final StateName `json:"final_state"`

	// Output is set only when the run ends in an accepting state.
	Output Output `json:"output,omitempty"`

	// Consumed is the number of tokens read before the run stopped.
	Consumed int `json:"consumed"`
}
