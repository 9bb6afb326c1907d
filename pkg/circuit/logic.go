package circuit

import (
	"fmt"
	"strings"
)

// LogicValue represents the possible values carried by a net
type LogicValue int

const (
	Zero LogicValue = iota // Logic 0
	One                    // Logic 1
	U                      // Unknown/uninitialized
	X                      // Conflict
)

// String returns a string representation of the logic value
func (v LogicValue) String() string {
	switch v {
	case Zero:
		return "0"
	case One:
		return "1"
	case U:
		return "U"
	case X:
		return "X"
	default:
		return "?"
	}
}

// ParseLogicValue parses one of the characters 0, 1, U, X (case-insensitive)
func ParseLogicValue(s string) (LogicValue, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "0":
		return Zero, nil
	case "1":
		return One, nil
	case "U":
		return U, nil
	case "X":
		return X, nil
	default:
		return X, fmt.Errorf("invalid logic value: %q", s)
	}
}

// LogicModel selects between 2-valued and 3-valued evaluation
type LogicModel int

const (
	TwoValued   LogicModel = iota // {0,1}
	ThreeValued                   // {0,1,U}
)

// String returns a string representation of the logic model
func (m LogicModel) String() string {
	switch m {
	case TwoValued:
		return "2val"
	case ThreeValued:
		return "3val"
	default:
		return "?"
	}
}

// ParseLogicModel parses "2val" or "3val"
func ParseLogicModel(s string) (LogicModel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "2val":
		return TwoValued, nil
	case "3val":
		return ThreeValued, nil
	default:
		return TwoValued, fmt.Errorf("invalid logic model: %q", s)
	}
}

// InitialValue returns the value all nets start with under this model
func (m LogicModel) InitialValue() LogicValue {
	if m == ThreeValued {
		return U
	}
	return Zero
}
