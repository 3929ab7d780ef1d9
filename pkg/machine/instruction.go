package machine

// Instruction word encoding:
//
//	value mod 100  -> opcode
//	value div 100  -> parameter mode digits, least significant digit first,
//	                  one decimal digit per parameter
//
// Mode digit 0 (Position) dereferences the parameter as an address, mode
// digit 1 (Immediate) takes the parameter literally. A destination parameter
// is always an address and must carry mode 0.

// Opcode identifies a machine operation.
type Opcode int64

const (
	OpAdd         Opcode = 1
	OpMul         Opcode = 2
	OpInput       Opcode = 3
	OpOutput      Opcode = 4
	OpJumpIfTrue  Opcode = 5
	OpJumpIfFalse Opcode = 6
	OpLessThan    Opcode = 7
	OpEquals      Opcode = 8
	OpHalt        Opcode = 99
)

// String returns the mnemonic for debug output.
func (op Opcode) String() string {
	switch op {
	case OpAdd:
		return "add"
	case OpMul:
		return "mul"
	case OpInput:
		return "in"
	case OpOutput:
		return "out"
	case OpJumpIfTrue:
		return "jnz"
	case OpJumpIfFalse:
		return "jz"
	case OpLessThan:
		return "lt"
	case OpEquals:
		return "eq"
	case OpHalt:
		return "halt"
	default:
		return "???"
	}
}

// Mode is a per-parameter addressing mode.
type Mode int

const (
	ModePosition  Mode = 0
	ModeImmediate Mode = 1
)

// opcodeParams maps each opcode to its parameter count and whether the last
// parameter is a write destination. Instruction width is 1 + params.
var opcodeParams = map[Opcode]struct {
	params int
	writes bool
}{
	OpAdd:         {3, true},
	OpMul:         {3, true},
	OpInput:       {1, true},
	OpOutput:      {1, false},
	OpJumpIfTrue:  {2, false},
	OpJumpIfFalse: {2, false},
	OpLessThan:    {3, true},
	OpEquals:      {3, true},
	OpHalt:        {0, false},
}

// Instruction is a decoded instruction word: the operation plus the
// addressing mode of each of its parameters.
type Instruction struct {
	Op    Opcode
	Modes [3]Mode
}

// Width returns the number of cells the instruction occupies, opcode
// included. The pc advances by this amount unless a jump is taken.
func (in Instruction) Width() int {
	return 1 + opcodeParams[in.Op].params
}

// Params returns the instruction's parameter count.
func (in Instruction) Params() int {
	return opcodeParams[in.Op].params
}

// Decode interprets a raw instruction word. It rejects unknown opcodes,
// mode digits outside {0,1}, mode digits beyond the parameter count, and
// Immediate mode on a write destination. pc is only used to tag faults.
func Decode(pc int, raw int64) (Instruction, error) {
	op := Opcode(raw % 100)
	meta, ok := opcodeParams[op]
	if !ok {
		return Instruction{}, Fault{Kind: FaultUnknownOperation, PC: pc, Value: raw}
	}

	in := Instruction{Op: op}
	digits := raw / 100
	for i := 0; i < meta.params; i++ {
		switch digits % 10 {
		case 0:
			in.Modes[i] = ModePosition
		case 1:
			in.Modes[i] = ModeImmediate
		default:
			return Instruction{}, Fault{Kind: FaultInvalidMode, PC: pc, Value: raw}
		}
		digits /= 10
	}

	// Leftover digits mean modes for parameters the operation doesn't have.
	if digits != 0 {
		return Instruction{}, Fault{Kind: FaultInvalidMode, PC: pc, Value: raw}
	}

	// A destination is always an address, never a literal.
	if meta.writes && in.Modes[meta.params-1] == ModeImmediate {
		return Instruction{}, Fault{Kind: FaultInvalidMode, PC: pc, Value: raw}
	}

	return in, nil
}
