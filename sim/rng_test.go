package sim

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

// === SimulationKey Tests ===

func TestSimulationKey_Creation(t *testing.T) {
	tests := []struct {
		name string
		seed int64
	}{
		{"positive seed", 42},
		{"zero seed", 0},
		{"negative seed", -1},
		{"max int64", math.MaxInt64},
		{"min int64", math.MinInt64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := NewSimulationKey(tt.seed)
			if int64(key) != tt.seed {
				t.Errorf("NewSimulationKey(%d) = %d, want %d", tt.seed, key, tt.seed)
			}
		})
	}
}

// === PartitionedRNG Tests ===

func TestPartitionedRNG_DeterministicDerivation(t *testing.T) {
	rng1 := NewPartitionedRNG(NewSimulationKey(42))
	rng2 := NewPartitionedRNG(NewSimulationKey(42))

	for i := 0; i < 5; i++ {
		a := rng1.ForSubsystem(SubsystemSetup).Intn(1000)
		b := rng2.ForSubsystem(SubsystemSetup).Intn(1000)
		if a != b {
			t.Errorf("draw %d: got %d and %d, want identical", i, a, b)
		}
	}
}

func TestPartitionedRNG_SubsystemIsolation(t *testing.T) {
	// GIVEN two RNGs with the same key
	rngA := NewPartitionedRNG(NewSimulationKey(42))
	rngB := NewPartitionedRNG(NewSimulationKey(42))

	// WHEN A draws heavily from setup before touching traffic
	for i := 0; i < 10; i++ {
		rngA.ForSubsystem(SubsystemSetup).Intn(100)
	}

	// THEN A's traffic stream is unaffected
	for i := 0; i < 5; i++ {
		assert.Equal(t, rngB.ForSubsystem(SubsystemTraffic).Intn(1000), rngA.ForSubsystem(SubsystemTraffic).Intn(1000))
	}
}

func TestPartitionedRNG_TrafficUsesMasterSeed(t *testing.T) {
	p := NewPartitionedRNG(NewSimulationKey(7))
	rng := p.ForSubsystem(SubsystemTraffic)

	assert.Same(t, rng, p.ForSubsystem(SubsystemTraffic), "instances are cached")
	assert.Equal(t, NewSimulationKey(7), p.Key())

	direct := rand.New(rand.NewSource(7))
	for i := 0; i < 5; i++ {
		assert.Equal(t, direct.Intn(10), rng.Intn(10))
	}
}

func TestPartitionedRNG_DifferentSubsystemsDiffer(t *testing.T) {
	p := NewPartitionedRNG(NewSimulationKey(42))
	same := true
	for i := 0; i < 10; i++ {
		if p.ForSubsystem(SubsystemTraffic).Int63() != p.ForSubsystem(SubsystemSetup).Int63() {
			same = false
		}
	}
	assert.False(t, same, "traffic and setup streams must not coincide")
}

func TestSubsystemReplica_Name(t *testing.T) {
	assert.Equal(t, "replica_0", SubsystemReplica(0))
	assert.Equal(t, "replica_12", SubsystemReplica(12))
}
