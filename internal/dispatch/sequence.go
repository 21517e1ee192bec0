package dispatch

import "fmt"

// reductionSlot is the position of the reduction stage in every
// multi-pass sequence, whatever the pass count.
const reductionSlot = 1

// SinglePass returns [primary].
func SinglePass(cellCount uint32, coverage float32) ([]uint32, error) {
	return NPass(cellCount, coverage, 1)
}

// NPass returns n copies of the primary work-group count.
func NPass(cellCount uint32, coverage float32, n int) ([]uint32, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPassCount, n)
	}
	p, err := Compute(cellCount, coverage)
	if err != nil {
		return nil, err
	}
	seq := make([]uint32, n)
	for i := range seq {
		seq[i] = p.DispatchX
	}
	return seq, nil
}

// ThreePass returns [primary, reduction, primary].
func ThreePass(cellCount uint32, coverage float32) ([]uint32, error) {
	return withReduction(cellCount, coverage, 3)
}

// FourPass returns [primary, reduction, primary, primary].
func FourPass(cellCount uint32, coverage float32) ([]uint32, error) {
	return withReduction(cellCount, coverage, 4)
}

// FivePass returns [primary, reduction, primary, primary, primary].
func FivePass(cellCount uint32, coverage float32) ([]uint32, error) {
	return withReduction(cellCount, coverage, 5)
}

// SixPass returns [primary, reduction, primary, primary, primary, primary].
func SixPass(cellCount uint32, coverage float32) ([]uint32, error) {
	return withReduction(cellCount, coverage, 6)
}

// Sequence picks the builder for a pass count: 1 is a single pass, 3 to 6
// carry a reduction stage, anything else is a uniform n-pass sequence.
func Sequence(cellCount uint32, coverage float32, passes int) ([]uint32, error) {
	switch passes {
	case 1:
		return SinglePass(cellCount, coverage)
	case 3:
		return ThreePass(cellCount, coverage)
	case 4:
		return FourPass(cellCount, coverage)
	case 5:
		return FivePass(cellCount, coverage)
	case 6:
		return SixPass(cellCount, coverage)
	default:
		return NPass(cellCount, coverage, passes)
	}
}

func withReduction(cellCount uint32, coverage float32, passes int) ([]uint32, error) {
	p, err := Compute(cellCount, coverage)
	if err != nil {
		return nil, err
	}
	seq := make([]uint32, passes)
	for i := range seq {
		seq[i] = p.DispatchX
	}
	seq[reductionSlot] = p.Reduction()
	return seq, nil
}
