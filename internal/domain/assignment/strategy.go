package assignment

import "fmt"

// Strategy is the closed set of officer selection strategies. The set is
// fixed and matched exhaustively; new strategies require a new constant, not
// open-ended polymorphism.
type Strategy string

const (
	// StrategyLeastBusy picks the officer with the fewest active tasks.
	StrategyLeastBusy Strategy = "least_busy"
	// StrategyBalanced blends active count with resolution efficiency; it is
	// the default, so fast officers are not punished with ever-growing queues.
	StrategyBalanced Strategy = "balanced"
	// StrategyRoundRobin rotates through the department roster.
	StrategyRoundRobin Strategy = "round_robin"
)

func (s Strategy) String() string {
	return string(s)
}

func (s Strategy) IsValid() bool {
	return s == StrategyLeastBusy || s == StrategyBalanced || s == StrategyRoundRobin
}

func NewStrategy(s string) (Strategy, error) {
	st := Strategy(s)
	if !st.IsValid() {
		return "", fmt.Errorf("invalid assignment strategy: %s", s)
	}
	return st, nil
}
