// Package lighting describes the light rig of the avatar preview.
package lighting

// MaxPointLights is the size of the light arrays in the scene shader.
const MaxPointLights = 4

// PointLight is a light source for GPU upload.
type PointLight struct {
	Position  [3]float32
	Color     [3]float32 // RGB color (0-1 range)
	Intensity float32
}

// Rig is an ambient term plus point lights.
type Rig struct {
	Ambient float32
	Lights  []PointLight
}

var white = [3]float32{1, 1, 1}

// Studio returns the preview lighting: ambient 0.5, a key light above,
// right and in front, and a half-strength fill from the opposite corner.
func Studio() Rig {
	return Rig{
		Ambient: 0.5,
		Lights: []PointLight{
			{Position: [3]float32{10, 10, 10}, Color: white, Intensity: 1},
			{Position: [3]float32{-10, -10, -10}, Color: white, Intensity: 0.5},
		},
	}
}

// Count returns the number of lights uploaded, at most MaxPointLights.
func (r Rig) Count() int {
	if len(r.Lights) > MaxPointLights {
		return MaxPointLights
	}
	return len(r.Lights)
}

// Positions returns positions as a flat slice for GPU upload.
// Format: [x0, y0, z0, x1, y1, z1, ...], padded to MaxPointLights.
func (r Rig) Positions() []float32 {
	result := make([]float32, MaxPointLights*3)
	for i, light := range r.Lights[:r.Count()] {
		copy(result[i*3:], light.Position[:])
	}
	return result
}

// Radiance returns color times intensity, clamped to 0-1, as a flat slice
// for GPU upload, padded to MaxPointLights.
func (r Rig) Radiance() []float32 {
	result := make([]float32, MaxPointLights*3)
	for i, light := range r.Lights[:r.Count()] {
		for c := 0; c < 3; c++ {
			result[i*3+c] = clamp01(light.Color[c] * light.Intensity)
		}
	}
	return result
}

func clamp01(v float32) float32 {
	if v > 1 {
		return 1
	}
	if v < 0 {
		return 0
	}
	return v
}
