package obj

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/nsengine/internal/engine/errs"
	"github.com/Faultbox/nsengine/pkg/math"
)

func tri(t *testing.T, o *OBJ, i int) Tri {
	t.Helper()
	tr, err := o.Tris.Get(i)
	require.NoError(t, err)
	return *tr
}

func TestParseSingleTriangle(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nvt 0 0\nvt 1 0\nvt 0 1\nvn 0 0 1\nf 1/1/1 2/2/1 3/3/1\n"

	o, err := Parse([]byte(src))
	require.NoError(t, err)
	require.Equal(t, 1, o.Len())

	got := tri(t, o, 0)
	assert.Equal(t, [3]math.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}}, got.Vertices)
	assert.Equal(t, [3]math.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}, got.UVs)
	for _, n := range got.Normals {
		assert.Equal(t, math.Vec3{Z: 1}, n)
	}
}

func TestParseEmpty(t *testing.T) {
	o, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, o.Len())

	o, err = Parse([]byte("# only a comment\n\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, o.Len())
}

func TestParseNumbers(t *testing.T) {
	o, err := Parse([]byte("v -1.5 +2.25 .5\r\nv 3. -0 10\r\nv 0 0 7\r\nf 1 2 3\r\n"))
	require.NoError(t, err)

	got := tri(t, o, 0)
	assert.Equal(t, math.Vec3{X: -1.5, Y: 2.25, Z: 0.5}, got.Vertices[0])
	assert.Equal(t, math.Vec3{X: 3, Y: 0, Z: 10}, got.Vertices[1])
}

func TestParseLongFraction(t *testing.T) {
	long := "0." + strings.Repeat("1", 45)
	o, err := Parse([]byte("v " + long + " -" + long + " 2." + strings.Repeat("5", 40) + "\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"))
	require.NoError(t, err)

	v := tri(t, o, 0).Vertices[0]
	assert.InDelta(t, 0.1111111, v.X, 1e-6)
	assert.InDelta(t, -0.1111111, v.Y, 1e-6)
	assert.InDelta(t, 2.5555556, v.Z, 1e-6)
}

func TestTexCoordOptionalV(t *testing.T) {
	src := `
v 0 0 0
v 1 0 0
v 0 1 0
vt 0.5
vt 0.25 # trailing comment
vt 0.75 0.5 0.9
f 1/1 2/2 3/3
`
	o, err := Parse([]byte(src))
	require.NoError(t, err)

	uvs := tri(t, o, 0).UVs
	assert.Equal(t, math.Vec2{X: 0.5}, uvs[0])
	assert.Equal(t, math.Vec2{X: 0.25}, uvs[1])
	assert.Equal(t, math.Vec2{X: 0.75, Y: 0.5}, uvs[2])

	_, err = Parse([]byte("vt\n"))
	assert.True(t, errs.Is(err, errs.CodeMalformedGeometry), "u is required")
}

func TestFaceIndexForms(t *testing.T) {
	src := `
v 0 0 0
v 1 0 0
v 0 1 0
vt 0.5 0.5
vn 1 0 0
f 1 2 3
f 1/1 2/1 3/1
f 1//1 2//1 3//1
f -3/-1/-1 -2/-1/-1 -1/-1/-1
`
	o, err := Parse([]byte(src))
	require.NoError(t, err)
	require.Equal(t, 4, o.Len())

	// v only: flat normal, zero uvs.
	plain := tri(t, o, 0)
	assert.Equal(t, math.Vec3{Z: 1}, plain.Normals[0])
	assert.Equal(t, math.Vec2{}, plain.UVs[0])

	withUV := tri(t, o, 1)
	assert.Equal(t, math.Vec2{X: 0.5, Y: 0.5}, withUV.UVs[2])
	assert.Equal(t, math.Vec3{Z: 1}, withUV.Normals[1])

	withNormal := tri(t, o, 2)
	assert.Equal(t, math.Vec3{X: 1}, withNormal.Normals[0])
	assert.Equal(t, math.Vec2{}, withNormal.UVs[0])

	relative := tri(t, o, 3)
	assert.Equal(t, withUV.Vertices, relative.Vertices)
	assert.Equal(t, math.Vec3{X: 1}, relative.Normals[2])
	assert.Equal(t, math.Vec2{X: 0.5, Y: 0.5}, relative.UVs[1])
}

func TestSkipsUnknownDirectives(t *testing.T) {
	src := "mtllib a.mtl\no Thing\nv 0 0 0\nvp 1 2\nv 1 0 0\ng group\nv 0 0 1 1.0\ns 1\nf 1 2 3 # trailing comment\n"
	o, err := Parse([]byte(src))
	require.NoError(t, err)
	assert.Equal(t, 1, o.Len())
	assert.Equal(t, math.Vec3{Z: 1}, tri(t, o, 0).Vertices[2])
}

func TestOutOfRangeIndex(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"vertex", "v 0 0 0\nv 1 0 0\nf 1 2 3\n"},
		{"normal", "v 0 0 0\nv 1 0 0\nv 0 1 0\nvn 0 0 1\nf 1//1 2//2 3//1\n"},
		{"uv", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1/4 2/1 3/1\n"},
		{"relative", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf -4 -2 -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := Parse([]byte(tt.src))
			assert.Nil(t, o)
			assert.True(t, errs.Is(err, errs.CodeMalformedGeometry), "got %v", err)
		})
	}
}

func TestMalformedFaces(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"quad", "v 0 0 0\nv 1 0 0\nv 0 1 0\nv 1 1 0\nf 1 2 3 4\n"},
		{"too few", "v 0 0 0\nv 1 0 0\nf 1 2\n"},
		{"zero index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n"},
		{"garbage", "v 0 0 0\nf a b c\n"},
		{"short vertex", "v 1 2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src))
			assert.True(t, errs.Is(err, errs.CodeMalformedGeometry), "got %v", err)
		})
	}
}

func TestMalformedReportsLine(t *testing.T) {
	_, err := Parse([]byte("# header\nv 0 0 0\n\nv 1 x 0\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 4")
}

func TestLoad(t *testing.T) {
	o, err := Load(filepath.Join("testdata", "quad.obj"))
	require.NoError(t, err)
	require.Equal(t, 2, o.Len())

	second := tri(t, o, 1)
	assert.Equal(t, math.Vec3{X: -1, Y: 1}, second.Vertices[2])
	assert.Equal(t, math.Vec2{X: 0, Y: 1}, second.UVs[2])
}

func TestLoadMissingFile(t *testing.T) {
	o, err := Load(filepath.Join(t.TempDir(), "missing.obj"))
	assert.Nil(t, o)
	assert.True(t, errs.Is(err, errs.CodeFileIO))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestBounds(t *testing.T) {
	o, err := Load(filepath.Join("testdata", "quad.obj"))
	require.NoError(t, err)

	min, max, ok := o.Bounds()
	require.True(t, ok)
	assert.Equal(t, math.Vec3{X: -1, Y: -1}, min)
	assert.Equal(t, math.Vec3{X: 1, Y: 1}, max)

	empty, err := Parse(nil)
	require.NoError(t, err)
	_, _, ok = empty.Bounds()
	assert.False(t, ok)
}
