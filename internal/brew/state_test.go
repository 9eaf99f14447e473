package brew

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ensigniasec/brew-math/internal/storage"
)

func newTestCalculator(t *testing.T) (*Calculator, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "preferences.json")
	st, err := storage.NewOrExistingFileStore(path)
	require.NoError(t, err)
	c, err := NewCalculator(st)
	require.NoError(t, err)
	return c, path
}

func reopen(t *testing.T, path string) *Calculator {
	t.Helper()
	st, err := storage.NewFileStore(path)
	require.NoError(t, err)
	c, err := NewCalculator(st)
	require.NoError(t, err)
	return c
}

func TestCalculator_Defaults(t *testing.T) {
	t.Parallel()

	c, _ := newTestCalculator(t)
	assert.Equal(t, DefaultState(), c.State())
	assert.InDelta(t, 15.0, c.View().Coffee, 1e-12)
}

func TestCalculator_ClampsInput(t *testing.T) {
	t.Parallel()

	c, _ := newTestCalculator(t)

	require.NoError(t, c.SetStrength(200))
	assert.InDelta(t, 100.0, c.State().Strength, 0)

	require.NoError(t, c.SetStrength(10))
	assert.InDelta(t, 40.0, c.State().Strength, 0)

	require.NoError(t, c.SetRatio(5))
	assert.InDelta(t, 100.0, c.State().Strength, 1e-12)

	require.NoError(t, c.SetRatio(30))
	assert.InDelta(t, 40.0, c.State().Strength, 1e-12)

	require.NoError(t, c.SetWater(5))
	assert.InDelta(t, 10.0, c.State().Water, 0)

	require.NoError(t, c.SetWater(5000))
	assert.InDelta(t, 1000.0, c.State().Water, 0)

	require.NoError(t, c.SetOunces(0.5))
	assert.InDelta(t, OuncesToGrams(1), c.State().Water, 1e-9)
	assert.InDelta(t, 1.0, c.Value(FieldOunces), 1e-9)
}

func TestCalculator_OuncesNotReclampedAsGrams(t *testing.T) {
	t.Parallel()

	c, _ := newTestCalculator(t)

	// 45 oz is beyond the 1000 g input limit; the derived grams are stored as-is.
	require.NoError(t, c.SetOunces(50))
	assert.InDelta(t, OuncesToGrams(45), c.State().Water, 1e-9)
	assert.Greater(t, c.State().Water, 1000.0)
	assert.InDelta(t, 45.0, c.Value(FieldOunces), 1e-9)
}

func TestCalculator_RatioAndOuncesWriteCanonicalUnits(t *testing.T) {
	t.Parallel()

	c, _ := newTestCalculator(t)

	require.NoError(t, c.SetRatio(16))
	assert.InDelta(t, 62.5, c.State().Strength, 1e-12)
	assert.InDelta(t, 16.0, c.Value(FieldRatio), 1e-9)

	require.NoError(t, c.SetOunces(8))
	assert.InDelta(t, 8/OuncesPerGram, c.State().Water, 1e-9)
	assert.InDelta(t, 8.0, c.Value(FieldOunces), 1e-9)
}

func TestCalculator_RejectsNonFinite(t *testing.T) {
	t.Parallel()

	c, _ := newTestCalculator(t)

	require.ErrorIs(t, c.SetStrength(math.NaN()), ErrNotFinite)
	require.ErrorIs(t, c.SetRatio(math.Inf(1)), ErrNotFinite)
	require.ErrorIs(t, c.SetWater(math.Inf(-1)), ErrNotFinite)
	assert.Equal(t, DefaultState(), c.State())
}

func TestCalculator_ResetStrength(t *testing.T) {
	t.Parallel()

	c, path := newTestCalculator(t)

	require.NoError(t, c.SetStrength(70))
	assert.True(t, c.View().StrengthChanged)
	require.NoError(t, c.ResetStrength())
	assert.Equal(t, DefaultStrength, c.State().Strength)
	assert.False(t, c.View().StrengthChanged)

	assert.Equal(t, DefaultStrength, reopen(t, path).State().Strength)
}

func TestCalculator_ResetWaterLeavesStrength(t *testing.T) {
	t.Parallel()

	c, _ := newTestCalculator(t)

	require.NoError(t, c.SetStrength(65))
	require.NoError(t, c.SetWater(500))
	require.NoError(t, c.ResetWater())
	assert.Equal(t, State{Strength: 65, Water: DefaultWater}, c.State())
}

func TestCalculator_PersistsAcrossSessions(t *testing.T) {
	t.Parallel()

	c, path := newTestCalculator(t)
	require.NoError(t, c.SetStrength(63))
	require.NoError(t, c.SetWater(300))

	got := reopen(t, path)
	assert.Equal(t, State{Strength: 63, Water: 300}, got.State())
	assert.InDelta(t, 18.9, got.View().Coffee, 1e-12)
}

func TestCalculator_HealsStoredValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
		want State
	}{
		{"zero strength", `{"strength": 0, "water": 300}`, State{Strength: DefaultStrength, Water: 300}},
		{"negative water", `{"strength": 55, "water": -5}`, State{Strength: 55, Water: DefaultWater}},
		{"strength above range", `{"strength": 150, "water": 250}`, State{Strength: 100, Water: 250}},
		{"water above range", `{"strength": 60, "water": 5000}`, State{Strength: 60, Water: CanonicalWaterRange().Max}},
		{"wrong type", `{"strength": "strong"}`, DefaultState()},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			path := filepath.Join(t.TempDir(), "preferences.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.doc), 0o600))

			c := reopen(t, path)
			assert.InDelta(t, tt.want.Strength, c.State().Strength, 1e-9)
			assert.InDelta(t, tt.want.Water, c.State().Water, 1e-9)

			// Healed values are written back.
			again := reopen(t, path)
			assert.InDelta(t, c.State().Strength, again.State().Strength, 1e-9)
			assert.InDelta(t, c.State().Water, again.State().Water, 1e-9)
		})
	}
}

func TestCalculator_Step(t *testing.T) {
	t.Parallel()

	c, _ := newTestCalculator(t)

	require.NoError(t, c.Step(FieldStrength, 1))
	assert.InDelta(t, 61.0, c.State().Strength, 0)

	require.NoError(t, c.Step(FieldWater, 1))
	assert.InDelta(t, 300.0, c.State().Water, 0)

	require.NoError(t, c.Step(FieldWater, -1))
	require.NoError(t, c.Step(FieldWater, -1))
	assert.InDelta(t, 200.0, c.State().Water, 0)

	require.NoError(t, c.SetStrength(60))
	require.NoError(t, c.Step(FieldRatio, 1))
	assert.InDelta(t, 16.77, c.Value(FieldRatio), 1e-9)

	require.NoError(t, c.SetWater(1000))
	require.NoError(t, c.Step(FieldWater, 1))
	assert.InDelta(t, 1000.0, c.State().Water, 0)
}

func TestCalculator_CyclePreset(t *testing.T) {
	t.Parallel()

	c, _ := newTestCalculator(t)

	require.NoError(t, c.CyclePreset(FieldStrength, 1))
	assert.InDelta(t, 63.0, c.State().Strength, 0)
	require.NoError(t, c.CyclePreset(FieldStrength, -1))
	require.NoError(t, c.CyclePreset(FieldStrength, -1))
	assert.InDelta(t, 57.0, c.State().Strength, 0)

	require.NoError(t, c.SetStrength(65))
	require.NoError(t, c.CyclePreset(FieldStrength, 1))
	assert.InDelta(t, 55.0, c.State().Strength, 0)

	// 60 g/L is 1:16.67, so the next ratio preset is 1:17.
	require.NoError(t, c.SetStrength(60))
	require.NoError(t, c.CyclePreset(FieldRatio, 1))
	assert.InDelta(t, 17.0, c.Value(FieldRatio), 1e-9)
	assert.Equal(t, 2, FieldRatio.PresetIndex(c.Value(FieldRatio)))

	require.NoError(t, c.CyclePreset(FieldWater, 1))
	assert.InDelta(t, 300.0, c.State().Water, 0)
}

// failingStore accepts reads and rejects every write.
type failingStore struct{}

var errDiskFull = errors.New("disk full")

func (failingStore) Lookup(string, any) (bool, error) { return false, nil }
func (failingStore) Set(string, any) error { return errDiskFull }
func (failingStore) Close() error { return nil }

func TestCalculator_FailedWriteKeepsPreviousState(t *testing.T) {
	t.Parallel()

	c, err := NewCalculator(failingStore{})
	require.NoError(t, err)
	require.Equal(t, DefaultState(), c.State())

	require.ErrorIs(t, c.SetStrength(70), errDiskFull)
	require.ErrorIs(t, c.SetOunces(8), errDiskFull)
	require.ErrorIs(t, c.Step(FieldWater, 1), errDiskFull)
	require.ErrorIs(t, c.CyclePreset(FieldRatio, 1), errDiskFull)
	assert.Equal(t, DefaultState(), c.State())
}

func TestCalculator_FailedResetKeepsPreviousState(t *testing.T) {
	t.Parallel()

	c, path := newTestCalculator(t)
	require.NoError(t, c.SetStrength(70))

	// Swap in a store that can no longer write.
	c.store = failingStore{}
	require.ErrorIs(t, c.ResetStrength(), errDiskFull)
	assert.InDelta(t, 70.0, c.State().Strength, 0)

	assert.InDelta(t, 70.0, reopen(t, path).State().Strength, 0)
}
