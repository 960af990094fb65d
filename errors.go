package urbanwater

import "fmt"

// ConfigurationError reports an invalid or inconsistent model setup, caught
// before stepping begins.
type ConfigurationError struct {
	Field string
	Msg   string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Msg)
}

// TopologyError reports an unresolvable cycle in the routing graph; Cycle
// holds the cell IDs left unordered.
type TopologyError struct{ Cycle []int }

func (e *TopologyError) Error() string {
	return fmt.Sprintf("topology error: unresolvable cycle among cells %v", e.Cycle)
}

// InputDataError reports missing or invalid timeseries data.
type InputDataError struct {
	Cell, Step int
	Msg        string
}

func (e *InputDataError) Error() string {
	if e.Cell < 0 {
		return fmt.Sprintf("input data error: %s", e.Msg)
	}
	return fmt.Sprintf("input data error: cell %d step %d: %s", e.Cell, e.Step, e.Msg)
}

// ComponentStateError reports a component invariant violation raised during a
// step: negative storage, a non-finite flux, or a mass-balance closure
// failure. The step is rolled back before the error is returned.
type ComponentStateError struct {
	Cell, Step int
	Component  string
	Quantity   string
	Value      float64
}

func (e *ComponentStateError) Error() string {
	return fmt.Sprintf("component state error: cell %d step %d: %s %s = %g", e.Cell, e.Step, e.Component, e.Quantity, e.Value)
}
