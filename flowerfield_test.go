package flowerfield

import (
	"bytes"
	"errors"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// smallFlowers gives a reasonably busy field on a modest canvas
func smallFlowers(seed int64) *FieldConfig {
	cfg := DefaultConfig(800, 600)
	cfg.MinFlowerSize = 20
	cfg.MaxFlowerSize = 40
	cfg.SafeZone = 40
	cfg.Seed = seed
	return cfg
}

func mustNew(t *testing.T, cfg *FieldConfig) *Field {
	t.Helper()
	f, err := New(cfg)
	require.NoError(t, err)
	return f
}

func TestNew_ViewportTooSmall(t *testing.T) {
	tests := []struct {
		name    string
		width   int
		height  int
		wantErr bool
	}{
		{"narrow", 100, 400, true},
		{"short", 400, 200, true},
		{"just under width", 149, 300, true},
		{"just under height", 150, 299, true},
		{"zero", 0, 0, true},
		{"minimum", 150, 300, false},
		{"desktop", 1920, 1080, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := New(&FieldConfig{Width: tt.width, Height: tt.height, Seed: 1})
			if !tt.wantErr {
				require.NoError(t, err)
				assert.NotEmpty(t, f.Flowers)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrViewportTooSmall), "New() error = %v, want %v", err, ErrViewportTooSmall)
			assert.Nil(t, f)
		})
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	_, err := New(nil)
	assert.True(t, errors.Is(err, ErrInvalidConfig))

	cfg := DefaultConfig(800, 600)
	cfg.MinFlowerSize = 300
	_, err = New(cfg)
	assert.True(t, errors.Is(err, ErrInvalidConfig))

	cfg = DefaultConfig(800, 600)
	cfg.SpacingMin = 4
	_, err = New(cfg)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}

func TestNew_Defaults(t *testing.T) {
	cfg := &FieldConfig{Width: 1280, Height: 720, Seed: 3}
	f := mustNew(t, cfg)

	def := DefaultConfig(1280, 720)
	def.Seed = 3
	if diff := cmp.Diff(def, f.cfg); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}

	// the caller's config is left alone
	assert.Equal(t, 0, cfg.MaxFlowerSize)

	assert.Equal(t, int64(3), f.Seed)
	assert.GreaterOrEqual(t, f.MinDistance, 200*2.3)
	assert.Less(t, f.MinDistance, 200*3.0)
}

func TestNew_SeedFromTime(t *testing.T) {
	f := mustNew(t, DefaultConfig(800, 600))
	assert.NotZero(t, f.Seed)
}

func TestField_Invariants(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		cfg := smallFlowers(seed)
		f := mustNew(t, cfg)

		require.NotEmpty(t, f.Flowers)
		assert.Equal(t, len(f.Flowers), f.Stats.Flowers)

		petals := 0
		for i, fl := range f.Flowers {
			assert.Equal(t, i, fl.ID)
			assert.True(t, fl.Centre.X >= 0 && fl.Centre.X < float64(cfg.Width), "flower %d at %v", i, fl.Centre)
			assert.True(t, fl.Centre.Y >= 0 && fl.Centre.Y < float64(cfg.Height), "flower %d at %v", i, fl.Centre)
			assert.GreaterOrEqual(t, fl.Size, float64(cfg.MinFlowerSize))
			assert.Less(t, fl.Size, float64(cfg.MaxFlowerSize))
			assert.InDelta(t, fl.Size*GoldenRatioConjugate, fl.CentreSize, 1e-9)

			require.Len(t, fl.Layers, cfg.PetalLayers)
			for j := 1; j < len(fl.Layers); j++ {
				prev, cur := fl.Layers[j-1], fl.Layers[j]
				assert.InDelta(t, prev.Length*GoldenRatioConjugate, cur.Length, 1e-9)
				assert.InDelta(t, prev.Width*GoldenRatioConjugate, cur.Width, 1e-9)
				assert.InDelta(t, prev.Rotation+math.Pi/2, cur.Rotation, 1e-9)
			}
			for _, l := range fl.Layers {
				for _, p := range l.Petals {
					// petals sit on a ring 0.9 * radius from the centre
					assert.InDelta(t, fl.Size/2*0.9, p.Position.Sub(fl.Centre).Norm(), 1e-6)
					assert.Equal(t, l.Width, p.Width)
					assert.Equal(t, l.Length, p.Length)
				}
				petals += len(l.Petals)
			}

			for j := i + 1; j < len(f.Flowers); j++ {
				d := fl.Centre.Sub(f.Flowers[j].Centre).Norm()
				assert.GreaterOrEqual(t, d, f.MinDistance, "flowers %d & %d too close", i, j)
			}
		}
		assert.Equal(t, petals, f.Stats.Petals)
	}
}

func TestField_Colours(t *testing.T) {
	f := mustNew(t, smallFlowers(11))
	require.Greater(t, len(f.Flowers), 6)

	assert.True(t, f.Background.H >= 70 && f.Background.H < 160, "background hue %v", f.Background.H)

	for i, fl := range f.Flowers {
		group := i - i%3
		assert.Equal(t, f.Flowers[group].PetalColour, fl.PetalColour, "flower %d", i)
		assert.Equal(t, f.Flowers[group].CentreColour, fl.CentreColour, "flower %d", i)

		assert.True(t, fl.PetalColour.H >= 0 && fl.PetalColour.H < 360)
		assert.True(t, fl.CentreColour.H >= 30 && fl.CentreColour.H < 60)
	}

	wantGroups := (len(f.Flowers) + 2) / 3
	assert.Equal(t, wantGroups, f.Stats.ColourGroups)
}

func TestField_Determinism(t *testing.T) {
	a := mustNew(t, smallFlowers(42))
	b := mustNew(t, smallFlowers(42))

	assert.Equal(t, a.MinDistance, b.MinDistance)
	assert.Equal(t, a.Background, b.Background)
	if diff := cmp.Diff(a.Flowers, b.Flowers); diff != "" {
		t.Errorf("New() with equal seeds mismatch (-first +second):\n%s", diff)
	}

	c, err := NewWithSource(smallFlowers(0), NewRandomSource(42))
	require.NoError(t, err)
	if diff := cmp.Diff(a.Flowers, c.Flowers); diff != "" {
		t.Errorf("NewWithSource() mismatch (-seeded +source):\n%s", diff)
	}
}

func TestPetalCount(t *testing.T) {
	tests := []struct {
		name   string
		radius float64
		width  float64
		jitter int
		want   int
	}{
		{"crowded ring halved", 50, 20, 0, 15},
		{"jitter keeps ring full", 50, 20, 10, 30},
		{"sparse ring", 45, 40, 0, 14},
		{"petal wider than ring", 10, 1000, 0, 0},
		{"zero width", 50, 0, 0, 0},
		{"zero radius", 0, 10, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := petalCount(tt.radius, tt.width, tt.jitter)
			assert.Equal(t, tt.want, got, "petalCount(%v, %v, %v)", tt.radius, tt.width, tt.jitter)
		})
	}
}

func TestHSL(t *testing.T) {
	assert.Equal(t, 40.0, HSL(400, 0.5, 0.5).H)
	assert.Equal(t, 340.0, HSL(-20, 0.5, 0.5).H)
	assert.Equal(t, "#ff0000", HSL(0, 1, 0.5).Hex())
	assert.Equal(t, "#ffffff", HSL(123, 0.3, 1).Hex())
}

func TestField_WriteSVG(t *testing.T) {
	f := mustNew(t, smallFlowers(5))

	buf := new(bytes.Buffer)
	require.NoError(t, f.WriteSVG(buf))

	out := buf.String()
	assert.Contains(t, out, "<svg")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "</svg>"))
	assert.Equal(t, f.Stats.Petals, strings.Count(out, "<ellipse"))
	assert.Equal(t, f.Stats.Flowers, strings.Count(out, "<circle"))
	assert.Contains(t, out, "fill:"+f.Background.Hex())
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, os.ErrClosed
}

func TestField_WriteSVGError(t *testing.T) {
	f := mustNew(t, smallFlowers(5))
	err := f.WriteSVG(failingWriter{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrClosed))
}

func TestField_Image(t *testing.T) {
	f := mustNew(t, smallFlowers(8))
	im := f.Image()

	assert.Equal(t, 800, im.Bounds().Dx())
	assert.Equal(t, 600, im.Bounds().Dy())

	// centres are drawn last & flowers are spread far enough apart that
	// nothing paints over the middle of one
	fl := f.Flowers[0]
	r, g, b, _ := im.At(int(fl.Centre.X), int(fl.Centre.Y)).RGBA()
	wr, wg, wb, _ := fl.CentreColour.RGBA()
	assert.InDelta(t, wr>>8, r>>8, 1)
	assert.InDelta(t, wg>>8, g>>8, 1)
	assert.InDelta(t, wb>>8, b>>8, 1)
}

func TestField_SaveFiles(t *testing.T) {
	f := mustNew(t, smallFlowers(13))
	dir := t.TempDir()

	pngPath := filepath.Join(dir, "field.png")
	require.NoError(t, f.SavePNG(pngPath))

	fh, err := os.Open(pngPath)
	require.NoError(t, err)
	defer fh.Close()
	im, err := png.Decode(fh)
	require.NoError(t, err)
	assert.Equal(t, 800, im.Bounds().Dx())
	assert.Equal(t, 600, im.Bounds().Dy())

	svgPath := filepath.Join(dir, "field.svg")
	require.NoError(t, f.SaveSVG(svgPath))
	data, err := os.ReadFile(svgPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")

	buf := new(bytes.Buffer)
	require.NoError(t, f.WritePNG(buf))
	_, err = png.Decode(buf)
	require.NoError(t, err)

	err = f.SaveSVG(filepath.Join(dir, "missing", "field.svg"))
	assert.Error(t, err)
}
