package params

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f32(v float32) *float32 { return &v }
func f64(v float64) *float64 { return &v }

func TestNormalizeEmptyKeepsDefaults(t *testing.T) {
	t.Parallel()

	if diff := cmp.Diff(Defaults(), Normalize(Sliders{})); diff != "" {
		t.Errorf("Normalize(empty) mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeAppliesRules(t *testing.T) {
	t.Parallel()

	got := Normalize(Sliders{
		LandThreshold:        f32(5),
		FalloffStrength:      f32(-1),
		PlateCount:           f32(7.6),
		PlateWarpRoughness:   f32(0.1),
		SunAngle:             f32(720),
		VerticalExaggeration: f32(3),
		Seed:                 f64(-4),
	})

	want := Defaults()
	want.LandThreshold = 2
	want.FalloffStrength = 0
	want.PlateCount = 8
	want.PlateWarpRoughness = 0.3
	want.SunAngle = 360
	want.VerticalExaggeration = 3
	want.Seed = DefaultSeed

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Normalize mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadSliders(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "sliders.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"plate_count": 42.2, "seed": 99.9}`), 0644))
	yamlPath := filepath.Join(dir, "sliders.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("plate_count: 42.2\nseed: 99.9\n"), 0644))

	for _, path := range []string{jsonPath, yamlPath} {
		s, err := LoadSliders(path)
		require.NoError(t, err, path)
		p := Normalize(s)
		assert.Equal(t, uint32(42), p.PlateCount, path)
		assert.Equal(t, uint32(99), p.Seed, path)
		assert.Equal(t, DefaultSunAngle, p.SunAngle, path)
	}

	txtPath := filepath.Join(dir, "sliders.txt")
	require.NoError(t, os.WriteFile(txtPath, []byte("x"), 0644))
	_, err := LoadSliders(txtPath)
	assert.Error(t, err)

	badPath := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(badPath, []byte(`{"seed": "nope"}`), 0644))
	_, err = LoadSliders(badPath)
	assert.Error(t, err)

	_, err = LoadSliders(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}
