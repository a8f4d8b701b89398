// Package geometry builds the indexed meshes of the avatar primitives.
package geometry

import gomath "math"

// Vertex is the interleaved layout uploaded to GL: position, normal, uv.
type Vertex struct {
	Pos    [3]float32
	Normal [3]float32
	UV     [2]float32
}

// Geometry is an indexed triangle list centered on the origin.
type Geometry struct {
	Vertices []Vertex
	Indices  []uint32
}

// Sphere builds a UV sphere.
func Sphere(radius float32, segments, rings int) Geometry {
	var g Geometry
	for y := 0; y <= rings; y++ {
		v := float64(y) / float64(rings)
		theta := v * gomath.Pi
		for x := 0; x <= segments; x++ {
			u := float64(x) / float64(segments)
			phi := u * 2 * gomath.Pi

			n := [3]float32{
				float32(-gomath.Cos(phi) * gomath.Sin(theta)),
				float32(gomath.Cos(theta)),
				float32(gomath.Sin(phi) * gomath.Sin(theta)),
			}
			g.Vertices = append(g.Vertices, Vertex{
				Pos:    [3]float32{n[0] * radius, n[1] * radius, n[2] * radius},
				Normal: n,
				UV:     [2]float32{float32(u), float32(v)},
			})
		}
	}

	stride := uint32(segments + 1)
	for y := 0; y < rings; y++ {
		for x := 0; x < segments; x++ {
			a := uint32(y)*stride + uint32(x)
			b := a + stride
			g.Indices = append(g.Indices, a, b, a+1, b, b+1, a+1)
		}
	}
	return g
}

// Cylinder builds a capped cylinder along Y with possibly different top and
// bottom radii.
func Cylinder(radiusTop, radiusBottom, height float32, segments int) Geometry {
	var g Geometry
	half := height / 2
	slope := float64((radiusBottom - radiusTop) / height)

	// Side: one top and one bottom vertex per segment edge.
	for i := 0; i <= segments; i++ {
		u := float64(i) / float64(segments)
		a := u * 2 * gomath.Pi
		sin, cos := gomath.Sincos(a)
		n := normalize3(sin, slope, cos)
		g.Vertices = append(g.Vertices,
			Vertex{Pos: [3]float32{radiusTop * float32(sin), half, radiusTop * float32(cos)}, Normal: n, UV: [2]float32{float32(u), 0}},
			Vertex{Pos: [3]float32{radiusBottom * float32(sin), -half, radiusBottom * float32(cos)}, Normal: n, UV: [2]float32{float32(u), 1}},
		)
	}
	for i := 0; i < segments; i++ {
		top := uint32(i * 2)
		g.Indices = append(g.Indices, top, top+1, top+2, top+1, top+3, top+2)
	}

	g.cap(radiusTop, half, 1, segments)
	g.cap(radiusBottom, -half, -1, segments)
	return g
}

// cap appends a disc at height y facing dir (+1 up, -1 down).
func (g *Geometry) cap(radius, y, dir float32, segments int) {
	center := uint32(len(g.Vertices))
	n := [3]float32{0, dir, 0}
	g.Vertices = append(g.Vertices, Vertex{Pos: [3]float32{0, y, 0}, Normal: n, UV: [2]float32{0.5, 0.5}})
	for i := 0; i <= segments; i++ {
		a := float64(i) / float64(segments) * 2 * gomath.Pi
		sin, cos := gomath.Sincos(a)
		g.Vertices = append(g.Vertices, Vertex{
			Pos:    [3]float32{radius * float32(sin), y, radius * float32(cos)},
			Normal: n,
			UV:     [2]float32{0.5 + 0.5*float32(sin), 0.5 + 0.5*float32(cos)},
		})
	}
	for i := uint32(1); i <= uint32(segments); i++ {
		if dir > 0 {
			g.Indices = append(g.Indices, center, center+i, center+i+1)
		} else {
			g.Indices = append(g.Indices, center, center+i+1, center+i)
		}
	}
}

// Box builds an axis-aligned box with flat-shaded faces.
func Box(width, height, depth float32) Geometry {
	hx, hy, hz := width/2, height/2, depth/2
	faces := []struct {
		n       [3]float32
		corners [4][3]float32
	}{
		{[3]float32{0, 0, 1}, [4][3]float32{{-hx, -hy, hz}, {hx, -hy, hz}, {hx, hy, hz}, {-hx, hy, hz}}},
		{[3]float32{0, 0, -1}, [4][3]float32{{hx, -hy, -hz}, {-hx, -hy, -hz}, {-hx, hy, -hz}, {hx, hy, -hz}}},
		{[3]float32{1, 0, 0}, [4][3]float32{{hx, -hy, hz}, {hx, -hy, -hz}, {hx, hy, -hz}, {hx, hy, hz}}},
		{[3]float32{-1, 0, 0}, [4][3]float32{{-hx, -hy, -hz}, {-hx, -hy, hz}, {-hx, hy, hz}, {-hx, hy, -hz}}},
		{[3]float32{0, 1, 0}, [4][3]float32{{-hx, hy, hz}, {hx, hy, hz}, {hx, hy, -hz}, {-hx, hy, -hz}}},
		{[3]float32{0, -1, 0}, [4][3]float32{{-hx, -hy, -hz}, {hx, -hy, -hz}, {hx, -hy, hz}, {-hx, -hy, hz}}},
	}
	uvs := [4][2]float32{{0, 1}, {1, 1}, {1, 0}, {0, 0}}

	var g Geometry
	for _, f := range faces {
		base := uint32(len(g.Vertices))
		for i, c := range f.corners {
			g.Vertices = append(g.Vertices, Vertex{Pos: c, Normal: f.n, UV: uvs[i]})
		}
		g.Indices = append(g.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return g
}

// Plane builds a quad in the XY plane facing +Z. The top edge has v=0 so
// images uploaded row by row appear upright.
func Plane(width, height float32) Geometry {
	hx, hy := width/2, height/2
	n := [3]float32{0, 0, 1}
	return Geometry{
		Vertices: []Vertex{
			{Pos: [3]float32{-hx, -hy, 0}, Normal: n, UV: [2]float32{0, 1}},
			{Pos: [3]float32{hx, -hy, 0}, Normal: n, UV: [2]float32{1, 1}},
			{Pos: [3]float32{hx, hy, 0}, Normal: n, UV: [2]float32{1, 0}},
			{Pos: [3]float32{-hx, hy, 0}, Normal: n, UV: [2]float32{0, 0}},
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
	}
}

func normalize3(x, y, z float64) [3]float32 {
	l := gomath.Sqrt(x*x + y*y + z*z)
	return [3]float32{float32(x / l), float32(y / l), float32(z / l)}
}
