// Package machine implements the IntCode tape machine: a fixed-capacity
// addressable memory, a program counter, input/output queues, and a
// cooperative suspend/resume execution loop.
//
// The machine exclusively owns its memory and queues. Callers drive it
// through Step/Run, feed values with SetInput/AddInput, and drain produced
// values with DrainOutput. All failures are typed Fault values.
package machine

import (
	"fmt"
	"strings"
)

// MemorySize is the machine's memory capacity in cells.
const MemorySize = 1024

// cell is one memory slot. Reading a cell nothing has written is a fault
// distinct from reading out of range, so "holds zero" and "uninitialized"
// are different states.
type cell struct {
	value   int64
	defined bool
}

// Machine is an IntCode tape machine.
type Machine struct {
	pc int

	memory   [MemorySize]cell
	original [MemorySize]cell

	input         []int64
	originalInput []int64
	output        []int64

	// suspended is set when an input instruction found the queue empty.
	// While set, Step is a success no-op; AddInput clears it.
	suspended bool

	// Steps is the remaining step budget, MaxSteps the refill value used by
	// Reset. A MaxSteps of 0 disables the budget: the instruction set can
	// only loop forever through unbounded jump cycles, and callers that want
	// protection against those opt in here.
	Steps    int
	MaxSteps int
}

// New creates a machine with the tape loaded into memory starting at
// address 0. Cells past the end of the tape stay uninitialized. A tape
// longer than MemorySize is an oversized-program fault.
func New(tape []int64) (*Machine, error) {
	if len(tape) > MemorySize {
		return nil, Fault{Kind: FaultOversizedProgram, Addr: len(tape)}
	}

	m := &Machine{}
	for i, v := range tape {
		m.memory[i] = cell{value: v, defined: true}
	}
	m.original = m.memory
	return m, nil
}

// ProgramCounter returns the address of the next instruction to decode.
func (m *Machine) ProgramCounter() int {
	return m.pc
}

// Suspended reports whether the machine is paused waiting for input.
func (m *Machine) Suspended() bool {
	return m.suspended
}

// === Memory access ===

// Retrieve returns the value stored at the address. Negative addresses,
// addresses at or past MemorySize, and uninitialized cells each fault with
// their own kind.
func (m *Machine) Retrieve(address int) (int64, error) {
	if address < 0 {
		return 0, Fault{Kind: FaultNegativeAddress, PC: m.pc, Addr: address}
	}
	if address >= MemorySize {
		return 0, Fault{Kind: FaultCapacityExceeded, PC: m.pc, Addr: address}
	}
	c := m.memory[address]
	if !c.defined {
		return 0, Fault{Kind: FaultMissingMemory, PC: m.pc, Addr: address}
	}
	return c.value, nil
}

// Store writes the value at the address, initializing the cell if it was
// empty. Address validation matches Retrieve.
func (m *Machine) Store(address int, value int64) error {
	if address < 0 {
		return Fault{Kind: FaultNegativeAddress, PC: m.pc, Addr: address}
	}
	if address >= MemorySize {
		return Fault{Kind: FaultCapacityExceeded, PC: m.pc, Addr: address}
	}
	m.memory[address] = cell{value: value, defined: true}
	return nil
}

// MemoryString renders the initialized cells as a comma-joined list, the
// format the tape was loaded from. Uninitialized gaps are skipped, so
// addresses are only preserved when memory has no gaps.
func (m *Machine) MemoryString() string {
	var parts []string
	for _, c := range m.memory {
		if c.defined {
			parts = append(parts, fmt.Sprintf("%d", c.value))
		}
	}
	return strings.Join(parts, ",")
}

// === Decode ===

// currentOp decodes the instruction at the pc. The pc sitting exactly at
// MemorySize is a capacity fault here: that sentinel position is reachable
// after a final halt but holds nothing to decode.
func (m *Machine) currentOp() (Instruction, error) {
	if m.pc >= MemorySize {
		return Instruction{}, Fault{Kind: FaultCapacityExceeded, PC: m.pc, Addr: m.pc}
	}
	c := m.memory[m.pc]
	if !c.defined {
		return Instruction{}, Fault{Kind: FaultUninitializedOperation, PC: m.pc}
	}
	return Decode(m.pc, c.value)
}

// IsHalted reports whether the next instruction to execute is a halt.
// Decode failures read as "not halted"; they resurface on the next Step.
func (m *Machine) IsHalted() bool {
	in, err := m.currentOp()
	return err == nil && in.Op == OpHalt
}

// advance moves the pc past the current instruction. The pc is allowed to
// land exactly on MemorySize so a halt can be the last addressable
// instruction, but not past it.
func (m *Machine) advance(width int) error {
	newPC := m.pc + width
	if newPC > MemorySize {
		return Fault{Kind: FaultCapacityExceeded, PC: m.pc, Addr: newPC}
	}
	m.pc = newPC
	return nil
}

// operand resolves the instruction's idx-th parameter to a value. Position
// mode dereferences the parameter as an address, Immediate mode returns the
// parameter itself.
func (m *Machine) operand(in Instruction, idx int) (int64, error) {
	param, err := m.Retrieve(m.pc + 1 + idx)
	if err != nil {
		return 0, err
	}
	if in.Modes[idx] == ModeImmediate {
		return param, nil
	}
	if param < 0 {
		return 0, Fault{Kind: FaultNegativeAddress, PC: m.pc, Addr: int(param)}
	}
	return m.Retrieve(int(param))
}

// destination resolves the instruction's idx-th parameter to a write
// address. Decode already rejected Immediate mode here.
func (m *Machine) destination(idx int) (int, error) {
	param, err := m.Retrieve(m.pc + 1 + idx)
	if err != nil {
		return 0, err
	}
	if param < 0 {
		return 0, Fault{Kind: FaultNegativeAddress, PC: m.pc, Addr: int(param)}
	}
	return int(param), nil
}

// === Execution ===

// Step decodes and executes exactly one instruction and advances the pc.
// A suspended machine no-ops successfully so callers can re-step without
// re-triggering side effects. Every operand is validated before any write,
// so a faulting step leaves memory untouched.
func (m *Machine) Step() error {
	if m.suspended {
		return nil
	}

	if m.MaxSteps > 0 {
		m.Steps--
		if m.Steps <= 0 {
			return Fault{Kind: FaultBudgetExhausted, PC: m.pc}
		}
	}

	in, err := m.currentOp()
	if err != nil {
		return err
	}

	switch in.Op {
	case OpAdd, OpMul:
		left, err := m.operand(in, 0)
		if err != nil {
			return err
		}
		right, err := m.operand(in, 1)
		if err != nil {
			return err
		}
		dest, err := m.destination(2)
		if err != nil {
			return err
		}
		result := left + right
		if in.Op == OpMul {
			result = left * right
		}
		if err := m.Store(dest, result); err != nil {
			return err
		}

	case OpInput:
		if len(m.input) == 0 {
			// Park on this instruction; it retries once input arrives.
			m.suspended = true
			return nil
		}
		dest, err := m.destination(0)
		if err != nil {
			return err
		}
		value := m.input[0]
		m.input = m.input[1:]
		if err := m.Store(dest, value); err != nil {
			return err
		}

	case OpOutput:
		value, err := m.operand(in, 0)
		if err != nil {
			return err
		}
		m.output = append(m.output, value)

	case OpLessThan, OpEquals:
		left, err := m.operand(in, 0)
		if err != nil {
			return err
		}
		right, err := m.operand(in, 1)
		if err != nil {
			return err
		}
		dest, err := m.destination(2)
		if err != nil {
			return err
		}
		holds := left < right
		if in.Op == OpEquals {
			holds = left == right
		}
		var result int64
		if holds {
			result = 1
		}
		if err := m.Store(dest, result); err != nil {
			return err
		}

	case OpJumpIfTrue, OpJumpIfFalse:
		cond, err := m.operand(in, 0)
		if err != nil {
			return err
		}
		target, err := m.operand(in, 1)
		if err != nil {
			return err
		}
		if (cond != 0) == (in.Op == OpJumpIfTrue) {
			if target < 0 {
				return Fault{Kind: FaultNegativeAddress, PC: m.pc, Addr: int(target)}
			}
			if target > MemorySize {
				return Fault{Kind: FaultCapacityExceeded, PC: m.pc, Addr: int(target)}
			}
			m.pc = int(target)
			return nil
		}

	case OpHalt:
		// No effect beyond the advance: the halt stays decodable at pc-1
		// and callers detect the post-halt state via IsHalted.
	}

	return m.advance(in.Width())
}

// Run steps until the next instruction is a halt (terminal success), the
// machine suspends waiting for input (non-terminal success), or a step
// faults. After a fault the machine state is only meaningful for
// diagnostics; resume with Reset.
func (m *Machine) Run() error {
	for {
		if m.IsHalted() {
			return nil
		}
		if err := m.Step(); err != nil {
			return err
		}
		if m.suspended {
			return nil
		}
	}
}

// === Input / output / reset ===

// SetInput replaces the pending input queue. The values also become the
// machine's original input: Reset restores them, replaying the same inputs.
// Clears a pending suspend.
func (m *Machine) SetInput(values ...int64) {
	m.input = append([]int64(nil), values...)
	m.originalInput = append([]int64(nil), values...)
	m.suspended = false
}

// AddInput appends values to the end of the pending input queue and clears
// the suspend flag even when called with nothing: an empty poke lets a
// stuck machine re-discover it has no input instead of silently idling.
func (m *Machine) AddInput(values ...int64) {
	m.input = append(m.input, values...)
	m.suspended = false
}

// Output returns a copy of the values emitted so far.
func (m *Machine) Output() []int64 {
	return append([]int64(nil), m.output...)
}

// DrainOutput returns the values emitted so far and clears the queue.
func (m *Machine) DrainOutput() []int64 {
	out := m.output
	m.output = nil
	return out
}

// SetBudget sets the step budget and primes the remaining count in one go.
// Setting MaxSteps alone leaves Steps at zero, which reads as an already
// exhausted budget on the next step. A budget of 0 disables the limit.
func (m *Machine) SetBudget(steps int) {
	m.MaxSteps = steps
	m.Steps = steps
}

// Reset restores the machine to its initial state: the memory and input it
// was constructed with, pc 0, output empty, suspend cleared, step budget
// refilled.
func (m *Machine) Reset() {
	m.memory = m.original
	m.pc = 0
	m.input = append([]int64(nil), m.originalInput...)
	m.output = nil
	m.suspended = false
	if m.MaxSteps > 0 {
		m.Steps = m.MaxSteps
	}
}
