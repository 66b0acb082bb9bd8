package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProportionalAllocator_Allocate(t *testing.T) {
	tests := []struct {
		name     string
		backlogs []int
		prbs     int
		want     []int
	}{
		{"no backlog grants nothing", []int{0, 0, 0}, 15, []int{0, 0, 0}},
		{"sole queue gets everything", []int{5}, 15, []int{15}},
		{"truncation leaves a PRB unused", []int{1, 2}, 10, []int{3, 6}},
		{"small share starves", []int{1, 100}, 10, []int{0, 9}},
		{"idle queue gets zero", []int{4, 0, 4}, 15, []int{7, 0, 7}},
		{"exact thirds", []int{3, 3, 3}, 15, []int{5, 5, 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &ProportionalAllocator{}
			assert.Equal(t, tt.want, a.Allocate(tt.backlogs, tt.prbs))
		})
	}
}

func TestProportionalAllocator_NeverExceedsBudget(t *testing.T) {
	a := &ProportionalAllocator{}
	for b0 := 0; b0 < 12; b0++ {
		for b1 := 0; b1 < 12; b1++ {
			for b2 := 0; b2 < 12; b2++ {
				grants := a.Allocate([]int{b0, b1, b2}, 15)
				sum := grants[0] + grants[1] + grants[2]
				if sum > 15 {
					t.Fatalf("backlogs [%d %d %d]: grants %v sum %d > 15", b0, b1, b2, grants, sum)
				}
				if b0+b1+b2 > 0 && sum < 15-2 {
					t.Fatalf("backlogs [%d %d %d]: grants %v lose more than one PRB per truncated queue", b0, b1, b2, grants)
				}
			}
		}
	}
}

func TestProportionalAllocator_Deterministic(t *testing.T) {
	a := &ProportionalAllocator{}
	first := a.Allocate([]int{7, 11, 13}, 17)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, a.Allocate([]int{7, 11, 13}, 17))
	}
}

func TestEqualShareAllocator_Allocate(t *testing.T) {
	a := &EqualShareAllocator{}
	assert.Equal(t, []int{5, 5, 5}, a.Allocate([]int{0, 3, 0}, 15))
	assert.Equal(t, []int{3, 3, 3}, a.Allocate([]int{1, 1, 1}, 10))
	assert.Equal(t, []int{0, 0, 0}, a.Allocate([]int{0, 0, 0}, 15))
	assert.Equal(t, []int{}, a.Allocate([]int{}, 15))
}

func TestNewAllocator(t *testing.T) {
	assert.IsType(t, &ProportionalAllocator{}, NewAllocator(""))
	assert.IsType(t, &ProportionalAllocator{}, NewAllocator("proportional"))
	assert.IsType(t, &EqualShareAllocator{}, NewAllocator("equal"))
	assert.Panics(t, func() { NewAllocator("largest-remainder") })
}
