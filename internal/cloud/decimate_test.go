package cloud

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDecimation(t *testing.T) {
	cases := []struct {
		name       string
		raw        uint64
		target     int
		wantFactor uint64
		wantKept   int
	}{
		{"below target keeps everything", 100, 1000, 1, 100},
		{"at target keeps everything", 1000, 1000, 1, 1000},
		{"even split", 10, 5, 2, 5},
		{"ceil rounds the factor up", 11, 5, 3, 4},
		{"large file", 37000000, 5000000, 8, 4625000},
		{"empty file", 0, 5000000, 1, 0},
		{"single point", 1, 5000000, 1, 1},
		{"non positive target uses the default", 10, 0, 1, 10},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := NewDecimation(tc.raw, tc.target)
			assert.Equal(t, tc.wantFactor, d.Factor)
			assert.Equal(t, tc.wantKept, d.Kept())
		})
	}
}

func TestDecimationKeepsMultiplesOfFactor(t *testing.T) {
	d := NewDecimation(10, 5)

	kept := make([]uint64, 0)
	for i := uint64(0); i < d.Raw; i++ {
		if d.Keeps(i) {
			kept = append(kept, i)
		}
	}

	assert.Equal(t, []uint64{0, 2, 4, 6, 8}, kept)
	assert.Len(t, kept, d.Kept())
}

func TestDecimationKeptMatchesScan(t *testing.T) {
	// Kept() must agree with an actual scan for awkward raw/target pairs
	for _, raw := range []uint64{1, 2, 3, 7, 11, 99, 100, 101} {
		for _, target := range []int{1, 2, 3, 10, 100} {
			d := NewDecimation(raw, target)
			count := 0
			for i := uint64(0); i < raw; i++ {
				if d.Keeps(i) {
					count++
				}
			}
			assert.Equal(t, count, d.Kept(), "raw=%d target=%d", raw, target)
			assert.LessOrEqual(t, count, target, "raw=%d target=%d", raw, target)
		}
	}
}
