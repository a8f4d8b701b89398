// Package rig places the avatar parts for a pose.
package rig

import (
	"github.com/Faultbox/lipsync-avatar/internal/avatar"
	"github.com/Faultbox/lipsync-avatar/internal/engine/geometry"
	"github.com/Faultbox/lipsync-avatar/pkg/math"
)

// Shape names one of the shared meshes.
type Shape int

const (
	ShapeHead Shape = iota
	ShapeEye
	ShapeMouth
	ShapeBody
	ShapeArm
	ShapeLeg
	ShapePlane
	ShapeCount
)

// Part is one mesh instance of a frame.
type Part struct {
	Name  string
	Shape Shape
	Model math.Mat4
	Color [3]float32
	// Textured parts sample the custom image.
	Textured bool
}

var (
	eyeColor   = [3]float32{0, 0, 0}
	mouthColor = avatar.RGB{R: 0x8B, G: 0x45, B: 0x13}.Floats()
	legColor   = avatar.RGB{R: 0x1E, G: 0x90, B: 0xFF}.Floats()
	white      = [3]float32{1, 1, 1}
)

// Geometry builds the mesh for a Shape.
func (s Shape) Geometry() geometry.Geometry {
	switch s {
	case ShapeHead:
		return geometry.Sphere(0.5, 32, 32)
	case ShapeEye:
		return geometry.Sphere(0.08, 16, 16)
	case ShapeMouth:
		return geometry.Box(0.2, 0.05, 0.05)
	case ShapeBody:
		return geometry.Cylinder(0.4, 0.5, 1, 32)
	case ShapeArm:
		return geometry.Cylinder(0.1, 0.1, 0.8, 16)
	case ShapeLeg:
		return geometry.Cylinder(0.12, 0.12, 1, 16)
	default:
		return geometry.Plane(2, 2)
	}
}

// Layout turns a pose into the parts to draw. imageAspect is width/height
// of the custom image and only matters for the image plane, which keeps
// its longer side at two units.
func Layout(pose avatar.Pose, emotion avatar.Emotion, imageAspect float32) []Part {
	group := math.Translate(0, float32(pose.Bob), 0)

	if pose.Plane != nil {
		p := pose.Plane
		sx, sy := float32(1), float32(1)
		switch {
		case imageAspect > 1:
			sy = 1 / imageAspect
		case imageAspect > 0 && imageAspect < 1:
			sx = imageAspect
		}
		s := float32(p.Scale)
		return []Part{{
			Name:     "image",
			Shape:    ShapePlane,
			Model:    group.Mul(math.Compose(math.Vec3{}, float32(p.RotX), float32(p.RotY), 0, math.Vec3{X: s * sx, Y: s * sy, Z: s})),
			Color:    white,
			Textured: true,
		}}
	}

	rig := pose.Rig
	if rig == nil {
		rig = &avatar.RigPose{EyeScale: 1, MouthScale: 1, LeftArmZ: avatar.LeftArmRest, RightArmZ: avatar.RightArmRest}
	}
	profile := avatar.Profile(emotion)
	skin := pose.Kind.SkinTone().Floats()
	accent := profile.AccentColor.Floats()

	eye := float32(profile.EyeScale)
	eyeScale := math.Vec3{X: eye, Y: eye * float32(rig.EyeScale), Z: eye}
	one := math.Vec3{X: 1, Y: 1, Z: 1}

	node := func(name string, shape Shape, pos math.Vec3, rx, ry, rz float32, scale math.Vec3, color [3]float32) Part {
		return Part{
			Name:  name,
			Shape: shape,
			Model: group.Mul(math.Compose(pos, rx, ry, rz, scale)),
			Color: color,
		}
	}

	return []Part{
		node("head", ShapeHead, math.Vec3{Y: 1.5}, float32(rig.HeadRotX), float32(rig.HeadRotY), 0, one, skin),
		node("left_eye", ShapeEye, math.Vec3{X: -0.15, Y: 1.6, Z: 0.4}, 0, 0, 0, eyeScale, eyeColor),
		node("right_eye", ShapeEye, math.Vec3{X: 0.15, Y: 1.6, Z: 0.4}, 0, 0, 0, eyeScale, eyeColor),
		node("mouth", ShapeMouth, math.Vec3{Y: float32(avatar.MouthRestHeight(emotion)), Z: 0.4}, 0, 0, 0,
			math.Vec3{X: 1, Y: float32(rig.MouthScale), Z: 1}, mouthColor),
		node("body", ShapeBody, math.Vec3{Y: 0.7}, 0, 0, 0, one, accent),
		node("left_arm", ShapeArm, math.Vec3{X: -0.6, Y: 0.8}, 0, 0, float32(rig.LeftArmZ), one, skin),
		node("right_arm", ShapeArm, math.Vec3{X: 0.6, Y: 0.8}, 0, 0, float32(rig.RightArmZ), one, skin),
		node("left_leg", ShapeLeg, math.Vec3{X: -0.2, Y: -0.3}, 0, 0, 0, one, legColor),
		node("right_leg", ShapeLeg, math.Vec3{X: 0.2, Y: -0.3}, 0, 0, 0, one, legColor),
	}
}
