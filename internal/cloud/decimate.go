package cloud

// DefaultMaxPoints bounds the working set of one ingested file.
const DefaultMaxPoints = 5000000

// Decimation is the deterministic systematic sampling plan for a file: keep
// exactly the records whose zero-based index is a multiple of Factor, in
// original order. No randomness, no resorting.
type Decimation struct {
	Raw    uint64
	Target int
	Factor uint64
}

// NewDecimation computes factor = ceil(raw/target). A raw count at or below
// the target keeps every record.
func NewDecimation(raw uint64, target int) Decimation {
	if target <= 0 {
		target = DefaultMaxPoints
	}
	d := Decimation{Raw: raw, Target: target, Factor: 1}
	if raw > uint64(target) {
		d.Factor = (raw + uint64(target) - 1) / uint64(target)
	}
	return d
}

// Keeps reports whether the record at the given raw index survives.
func (d Decimation) Keeps(index uint64) bool {
	return index%d.Factor == 0
}

// Kept returns the exact number of surviving records,
// floor((raw-1)/factor) + 1 for a non-empty input.
func (d Decimation) Kept() int {
	if d.Raw == 0 {
		return 0
	}
	return int((d.Raw-1)/d.Factor) + 1
}
