// Package obj parses Wavefront OBJ geometry into a flat list of triangles.
//
// Supported directives are v, vn, vt and f; everything else is skipped.
// Faces must be triangles and may reference vertices as v, v/vt, v//vn or
// v/vt/vn, with negative indices counting back from the latest element.
// Every index is bounds-checked; a bad reference is a MalformedGeometry
// error, never an out-of-range read.
package obj

import (
	"fmt"
	"os"

	"github.com/chewxy/math32"

	"github.com/Faultbox/nsengine/internal/engine/errs"
	"github.com/Faultbox/nsengine/pkg/container"
	"github.com/Faultbox/nsengine/pkg/math"
)

// Tri is one fully resolved triangle.
type Tri struct {
	Vertices [3]math.Vec3
	Normals  [3]math.Vec3
	UVs      [3]math.Vec2
}

// OBJ is parsed geometry.
type OBJ struct {
	Tris *container.Pool[Tri]
}

// Len returns the number of triangles.
func (o *OBJ) Len() int {
	if o == nil || o.Tris == nil {
		return 0
	}
	return o.Tris.Len()
}

// Bounds returns the axis-aligned box enclosing every triangle. ok is
// false when there are no triangles.
func (o *OBJ) Bounds() (min, max math.Vec3, ok bool) {
	if o.Len() == 0 {
		return min, max, false
	}
	first := o.Tris.At(0).Vertices[0]
	min, max = first, first
	o.Tris.Each(func(t *Tri) {
		for _, v := range t.Vertices {
			min = math.Vec3{X: math32.Min(min.X, v.X), Y: math32.Min(min.Y, v.Y), Z: math32.Min(min.Z, v.Z)}
			max = math.Vec3{X: math32.Max(max.X, v.X), Y: math32.Max(max.Y, v.Y), Z: math32.Max(max.Z, v.Z)}
		}
	})
	return min, max, true
}

// ref holds 1-based indices into the element pools; 0 means absent.
type ref struct {
	v, vt, vn int
}

type face [3]ref

// Load reads and parses an OBJ file. Read errors are returned with no
// partial result.
func Load(path string) (*OBJ, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrap("obj.Load", errs.CodeFileIO, errs.Error, err)
	}
	o, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return o, nil
}

// Parse parses OBJ source.
func Parse(src []byte) (*OBJ, error) {
	p := &parser{
		scanner:  scanner{src: src, line: 1},
		vertices: container.NewPool[math.Vec3](),
		normals:  container.NewPool[math.Vec3](),
		uvs:      container.NewPool[math.Vec2](),
		faces:    container.NewPool[face](),
	}
	if err := p.parse(); err != nil {
		return nil, err
	}
	return p.resolve()
}

type parser struct {
	scanner
	vertices *container.Pool[math.Vec3]
	normals  *container.Pool[math.Vec3]
	uvs      *container.Pool[math.Vec2]
	faces    *container.Pool[face]
}

func (p *parser) malformed(format string, args ...interface{}) error {
	return errs.New("obj.Parse", errs.CodeMalformedGeometry, errs.Error,
		"line %d: "+format, append([]interface{}{p.line}, args...)...)
}

func (p *parser) parse() error {
	for {
		p.skipSpace()
		if p.eof() {
			return nil
		}

		var err error
		switch p.keyword() {
		case "v":
			var v math.Vec3
			if v, err = p.vec3(); err == nil {
				p.vertices.Add(v)
			}
		case "vn":
			var n math.Vec3
			if n, err = p.vec3(); err == nil {
				p.normals.Add(n)
			}
		case "vt":
			err = p.texCoord()
		case "f":
			err = p.face()
		}
		if err != nil {
			return err
		}
		p.skipLine()
	}
}

// texCoord reads "u [v [w]]". v defaults to 0 and w is ignored.
func (p *parser) texCoord() error {
	var uv math.Vec2
	var err error
	if uv.X, err = p.number(); err != nil {
		return err
	}
	p.skipBlank()
	if !p.eol() {
		if uv.Y, err = p.number(); err != nil {
			return err
		}
	}
	p.uvs.Add(uv)
	return nil
}

func (p *parser) number() (float32, error) {
	p.skipBlank()
	f, ok := p.decimal()
	if !ok {
		return 0, p.malformed("expected number")
	}
	return f, nil
}

func (p *parser) vec3() (math.Vec3, error) {
	var v math.Vec3
	var err error
	if v.X, err = p.number(); err != nil {
		return v, err
	}
	if v.Y, err = p.number(); err != nil {
		return v, err
	}
	v.Z, err = p.number()
	return v, err
}

func (p *parser) face() error {
	var f face
	n := 0
	for {
		p.skipBlank()
		if p.eol() {
			break
		}
		r, err := p.ref()
		if err != nil {
			return err
		}
		if n < 3 {
			f[n] = r
		}
		n++
	}
	if n != 3 {
		return p.malformed("face has %d vertices, only triangles are supported", n)
	}
	p.faces.Add(f)
	return nil
}

// ref parses v, v/vt, v//vn or v/vt/vn and converts negative indices to
// absolute ones.
func (p *parser) ref() (ref, error) {
	var r ref
	var ok bool

	if r.v, ok = p.integer(); !ok || r.v == 0 {
		return r, p.malformed("invalid vertex index")
	}
	if p.peek() == '/' {
		p.pos++
		if p.peek() != '/' {
			if r.vt, ok = p.integer(); !ok || r.vt == 0 {
				return r, p.malformed("invalid texture coordinate index")
			}
		}
		if p.peek() == '/' {
			p.pos++
			if r.vn, ok = p.integer(); !ok || r.vn == 0 {
				return r, p.malformed("invalid normal index")
			}
		}
	}

	r.v = absolute(r.v, p.vertices.Len())
	r.vt = absolute(r.vt, p.uvs.Len())
	r.vn = absolute(r.vn, p.normals.Len())
	return r, nil
}

func absolute(i, count int) int {
	if i < 0 {
		return count + i + 1
	}
	return i
}

// resolve expands face references into triangles. The scratch pools are
// dropped with the parser.
func (p *parser) resolve() (*OBJ, error) {
	tris, err := container.NewPoolEx[Tri](max(p.faces.Len(), 1), container.DefaultGrowth)
	if err != nil {
		return nil, err
	}

	for fi, f := range p.faces.Slice() {
		var tri Tri
		hasNormals := true
		for k, r := range f {
			v, err := p.vertices.Get(r.v - 1)
			if err != nil {
				return nil, p.outOfRange(fi, "vertex", r.v, p.vertices.Len())
			}
			tri.Vertices[k] = *v

			if r.vt != 0 {
				uv, err := p.uvs.Get(r.vt - 1)
				if err != nil {
					return nil, p.outOfRange(fi, "texture coordinate", r.vt, p.uvs.Len())
				}
				tri.UVs[k] = *uv
			}

			if r.vn == 0 {
				hasNormals = false
				continue
			}
			n, err := p.normals.Get(r.vn - 1)
			if err != nil {
				return nil, p.outOfRange(fi, "normal", r.vn, p.normals.Len())
			}
			tri.Normals[k] = *n
		}

		if !hasNormals {
			n := faceNormal(tri.Vertices)
			tri.Normals = [3]math.Vec3{n, n, n}
		}
		tris.Add(tri)
	}

	return &OBJ{Tris: tris}, nil
}

func (p *parser) outOfRange(faceIdx int, what string, idx, count int) error {
	return errs.New("obj.Parse", errs.CodeMalformedGeometry, errs.Error,
		"face %d: %s index %d out of range [1, %d]", faceIdx+1, what, idx, count)
}

func faceNormal(v [3]math.Vec3) math.Vec3 {
	return v[1].Sub(v[0]).Cross(v[2].Sub(v[0])).Normalize()
}
