package machine

import "fmt"

// FaultKind identifies one of the closed set of machine fault conditions.
type FaultKind int

const (
	// FaultNone is the zero value and never carried by a real fault.
	FaultNone FaultKind = iota
	// FaultCapacityExceeded - the pc or an address reached past the memory bound
	FaultCapacityExceeded
	// FaultNegativeAddress - a computed address was negative
	FaultNegativeAddress
	// FaultMissingMemory - a read hit a cell nothing has written yet
	FaultMissingMemory
	// FaultUninitializedOperation - decode found no stored value at the pc
	FaultUninitializedOperation
	// FaultUnknownOperation - decode found a value matching no opcode
	FaultUnknownOperation
	// FaultInvalidMode - a mode digit outside {0,1}, or Immediate on a destination
	FaultInvalidMode
	// FaultOversizedProgram - construction-time tape longer than memory
	FaultOversizedProgram
	// FaultBudgetExhausted - the optional step budget ran out
	FaultBudgetExhausted
)

// Fault is a terminal, typed error condition raised by the machine.
// It carries the context needed to diagnose the failure without re-running:
// the pc at the time of the fault, the offending address, and the raw cell
// value where one is relevant. Faults are comparable values so tests can
// match them exactly.
type Fault struct {
	Kind  FaultKind
	PC    int
	Addr  int
	Value int64
}

// Error implements the error interface.
func (f Fault) Error() string {
	switch f.Kind {
	case FaultCapacityExceeded:
		return fmt.Sprintf("memory capacity exceeded at address %d (pc %d)", f.Addr, f.PC)
	case FaultNegativeAddress:
		return fmt.Sprintf("negative address %d (pc %d)", f.Addr, f.PC)
	case FaultMissingMemory:
		return fmt.Sprintf("read of uninitialized address %d (pc %d)", f.Addr, f.PC)
	case FaultUninitializedOperation:
		return fmt.Sprintf("no operation stored at pc %d", f.PC)
	case FaultUnknownOperation:
		return fmt.Sprintf("unknown operation %d at pc %d", f.Value, f.PC)
	case FaultInvalidMode:
		return fmt.Sprintf("invalid parameter mode in instruction %d at pc %d", f.Value, f.PC)
	case FaultOversizedProgram:
		return fmt.Sprintf("program of %d cells does not fit in %d cells of memory", f.Addr, MemorySize)
	case FaultBudgetExhausted:
		return fmt.Sprintf("step budget exhausted at pc %d", f.PC)
	default:
		return "unknown fault"
	}
}
