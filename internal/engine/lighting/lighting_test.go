package lighting

import "testing"

func TestStudioRig(t *testing.T) {
	r := Studio()
	if r.Ambient != 0.5 {
		t.Errorf("Ambient = %v, want 0.5", r.Ambient)
	}
	if r.Count() != 2 {
		t.Fatalf("Count = %d, want 2", r.Count())
	}

	pos := r.Positions()
	if len(pos) != MaxPointLights*3 {
		t.Fatalf("len(Positions) = %d", len(pos))
	}
	want := []float32{10, 10, 10, -10, -10, -10, 0, 0, 0}
	for i, w := range want {
		if pos[i] != w {
			t.Errorf("Positions[%d] = %v, want %v", i, pos[i], w)
		}
	}

	rad := r.Radiance()
	if rad[0] != 1 || rad[3] != 0.5 || rad[6] != 0 {
		t.Errorf("Radiance = %v", rad[:9])
	}
}

func TestRigTruncatesAndClamps(t *testing.T) {
	r := Rig{}
	for i := 0; i < MaxPointLights+2; i++ {
		r.Lights = append(r.Lights, PointLight{
			Position:  [3]float32{float32(i), 0, 0},
			Color:     [3]float32{1, -1, 0.5},
			Intensity: 2,
		})
	}

	if r.Count() != MaxPointLights {
		t.Fatalf("Count = %d, want %d", r.Count(), MaxPointLights)
	}
	if got := r.Positions()[(MaxPointLights-1)*3]; got != float32(MaxPointLights-1) {
		t.Errorf("last position x = %v", got)
	}

	rad := r.Radiance()
	if rad[0] != 1 || rad[1] != 0 || rad[2] != 1 {
		t.Errorf("Radiance clamp = %v, want [1 0 1]", rad[:3])
	}
}
