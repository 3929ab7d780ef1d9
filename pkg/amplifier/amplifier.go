// Package amplifier runs a program through a serial chain of amplifier
// stages, each stage seeded with a phase setting and fed the previous
// stage's output signal. One machine is reused across stages via Reset.
package amplifier

import (
	"fmt"

	"github.com/intcodeVM/intcode/pkg/machine"
)

// PhaseCount is the number of amplifier stages in the chain.
const PhaseCount = 5

// Chain runs the program once per phase setting, in order. Each stage gets
// its phase and the running signal as input; the stage's first output
// becomes the signal for the next stage. The final signal is returned.
func Chain(prog []int64, phases []int64) (int64, error) {
	m, err := machine.New(prog)
	if err != nil {
		return 0, err
	}

	var signal int64
	for _, phase := range phases {
		m.Reset()
		m.SetInput(phase, signal)

		if err := m.Run(); err != nil {
			return 0, err
		}
		if m.Suspended() {
			return 0, fmt.Errorf("amplifier with phase %d wants more input than its phase and signal", phase)
		}

		out := m.DrainOutput()
		if len(out) == 0 {
			return 0, fmt.Errorf("amplifier with phase %d produced no output", phase)
		}
		signal = out[0]
	}

	return signal, nil
}

// MaxThrust searches every ordering of the phase settings 0..4 for the one
// producing the highest final signal. Returns the signal and the ordering.
func MaxThrust(prog []int64) (int64, []int64, error) {
	var (
		best       int64
		bestPhases []int64
	)

	for _, phases := range permutations([]int64{0, 1, 2, 3, 4}) {
		signal, err := Chain(prog, phases)
		if err != nil {
			return 0, nil, err
		}
		if bestPhases == nil || signal > best {
			best = signal
			bestPhases = phases
		}
	}

	return best, bestPhases, nil
}

// permutations returns every ordering of the values.
func permutations(values []int64) [][]int64 {
	if len(values) <= 1 {
		return [][]int64{append([]int64(nil), values...)}
	}

	var result [][]int64
	for i := range values {
		rest := make([]int64, 0, len(values)-1)
		rest = append(rest, values[:i]...)
		rest = append(rest, values[i+1:]...)

		for _, perm := range permutations(rest) {
			result = append(result, append([]int64{values[i]}, perm...))
		}
	}
	return result
}
