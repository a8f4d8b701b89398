package avatar

import "math"

// Rest rotations of the arms around Z, in radians.
const (
	LeftArmRest  = 0.5
	RightArmRest = -0.5
)

// blinkThreshold is the sine value below which the eyes are closed.
const blinkThreshold = -0.95

// Pose is the set of transform deltas applied to the avatar for one frame.
// Exactly one of Rig and Plane is set, depending on Kind.
type Pose struct {
	Kind  Kind       `json:"kind" yaml:"kind"`
	Bob   float64    `json:"bob" yaml:"bob" jsonschema:"description=Vertical offset of the whole figure"`
	Rig   *RigPose   `json:"rig,omitempty" yaml:"rig,omitempty"`
	Plane *PlanePose `json:"plane,omitempty" yaml:"plane,omitempty"`
}

// RigPose holds the per-part values of a procedural avatar.
type RigPose struct {
	HeadRotX   float64 `json:"head_rot_x" yaml:"head_rot_x"`
	HeadRotY   float64 `json:"head_rot_y" yaml:"head_rot_y"`
	EyeScale   float64 `json:"eye_scale" yaml:"eye_scale" jsonschema:"enum=0.3,enum=1"`
	MouthScale float64 `json:"mouth_scale" yaml:"mouth_scale"`
	LeftArmZ   float64 `json:"left_arm_z" yaml:"left_arm_z"`
	RightArmZ  float64 `json:"right_arm_z" yaml:"right_arm_z"`
}

// PlanePose holds the whole-plane values of a custom image avatar.
type PlanePose struct {
	RotX  float64 `json:"rot_x" yaml:"rot_x"`
	RotY  float64 `json:"rot_y" yaml:"rot_y"`
	Scale float64 `json:"scale" yaml:"scale"`
}

// ComputePose returns the pose at t seconds since the session started.
//
// The result depends only on the arguments. Unknown emotions behave as
// Neutral and unknown kinds as ProceduralMale.
func ComputePose(t float64, emotion Emotion, kind Kind, speaking bool) Pose {
	rotY := math.Sin(t*0.5) * 0.1
	rotX := math.Sin(t*0.3) * 0.05
	bob := math.Sin(t*2) * 0.02

	if kind == CustomImage {
		scale := 1.0
		if speaking {
			scale = 1 + math.Sin(t*10)*0.02
		}
		return Pose{
			Kind:  CustomImage,
			Bob:   bob,
			Plane: &PlanePose{RotX: rotX, RotY: rotY, Scale: scale},
		}
	}
	if kind != ProceduralFemale {
		kind = ProceduralMale
	}

	rig := &RigPose{
		HeadRotX:   rotX,
		HeadRotY:   rotY,
		EyeScale:   blinkScale(math.Sin(t * 3)),
		MouthScale: 1 + Profile(emotion).MouthOffset*0.1,
		LeftArmZ:   LeftArmRest,
		RightArmZ:  RightArmRest,
	}
	if speaking {
		rig.MouthScale = 1 + math.Abs(math.Sin(t*20))*0.3
		rig.LeftArmZ = math.Sin(t*2)*0.3 + 0.5
		rig.RightArmZ = math.Sin(t*2+math.Pi)*0.3 - 0.5
	}

	return Pose{Kind: kind, Bob: bob, Rig: rig}
}

// blinkScale maps the blink wave to the eye vertical scale. A wave value
// exactly at the threshold counts as open.
func blinkScale(wave float64) float64 {
	if wave < blinkThreshold {
		return 0.3
	}
	return 1.0
}
