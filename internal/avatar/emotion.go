// Package avatar computes the per-frame procedural pose of the studio avatar.
//
// Everything here is a pure function of elapsed time and a few enum inputs,
// so it can be tested and replayed without a renderer.
package avatar

import "strings"

// Emotion is the expression selected by the user.
type Emotion string

// Supported emotions.
const (
	Neutral   Emotion = "neutral"
	Happy     Emotion = "happy"
	Sad       Emotion = "sad"
	Angry     Emotion = "angry"
	Surprised Emotion = "surprised"
)

// Emotions lists every emotion in selector order.
var Emotions = []Emotion{Neutral, Happy, Sad, Angry, Surprised}

// ParseEmotion converts a string to an Emotion.
// Unrecognized values map to Neutral.
func ParseEmotion(s string) Emotion {
	e := Emotion(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := profiles[e]; ok {
		return e
	}
	return Neutral
}

// Label returns the display label for the emotion.
func (e Emotion) Label() string {
	switch e {
	case Happy:
		return "Happy"
	case Sad:
		return "Sad"
	case Angry:
		return "Angry"
	case Surprised:
		return "Surprised"
	default:
		return "Neutral"
	}
}

// RGB is an 8-bit color.
type RGB struct {
	R, G, B uint8
}

// Floats returns the color as normalized float components.
func (c RGB) Floats() [3]float32 {
	return [3]float32{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255}
}

// EmotionProfile holds the static face parameters of an emotion.
type EmotionProfile struct {
	MouthOffset float64 // vertical mouth shift, scaled by 0.1 when applied
	EyeScale    float64 // base eye size
	AccentColor RGB     // body color
}

var profiles = map[Emotion]EmotionProfile{
	Neutral:   {MouthOffset: 0, EyeScale: 1.0, AccentColor: RGB{0xFF, 0xA5, 0x00}},
	Happy:     {MouthOffset: 0.3, EyeScale: 1.2, AccentColor: RGB{0xFF, 0xD7, 0x00}},
	Sad:       {MouthOffset: -0.3, EyeScale: 0.8, AccentColor: RGB{0x41, 0x69, 0xE1}},
	Angry:     {MouthOffset: 0, EyeScale: 0.7, AccentColor: RGB{0xDC, 0x14, 0x3C}},
	Surprised: {MouthOffset: 0.5, EyeScale: 1.5, AccentColor: RGB{0xFF, 0x69, 0xB4}},
}

// Profile returns the profile for e, or the neutral profile for unknown values.
func Profile(e Emotion) EmotionProfile {
	if p, ok := profiles[e]; ok {
		return p
	}
	return profiles[Neutral]
}

// MouthRestHeight returns the mouth's vertical rest position for e.
func MouthRestHeight(e Emotion) float64 {
	return 1.3 + Profile(e).MouthOffset*0.1
}
