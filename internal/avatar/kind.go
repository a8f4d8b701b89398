package avatar

import "strings"

// Kind selects which visual representation is animated.
type Kind string

// Supported avatar kinds.
const (
	ProceduralMale   Kind = "procedural-male"
	ProceduralFemale Kind = "procedural-female"
	CustomImage      Kind = "custom-image"
)

// ParseKind converts a string to a Kind. The short forms "male", "female"
// and "custom" are accepted. Unrecognized values map to ProceduralMale.
func ParseKind(s string) Kind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "procedural-female", "female":
		return ProceduralFemale
	case "custom-image", "custom", "image":
		return CustomImage
	default:
		return ProceduralMale
	}
}

// IsProcedural reports whether k is one of the rigged mesh avatars.
func (k Kind) IsProcedural() bool {
	return k != CustomImage
}

// SkinTone returns the base skin color of a procedural avatar.
func (k Kind) SkinTone() RGB {
	if k == ProceduralFemale {
		return RGB{0xFF, 0xE4, 0xC4}
	}
	return RGB{0xFF, 0xDB, 0xAC}
}

// Label returns the display label for the kind.
func (k Kind) Label() string {
	switch k {
	case ProceduralFemale:
		return "Female Avatar"
	case CustomImage:
		return "Custom Image"
	default:
		return "Male Avatar"
	}
}
