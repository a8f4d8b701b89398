package avatar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfileTable(t *testing.T) {
	tests := []struct {
		emotion Emotion
		want    EmotionProfile
	}{
		{Neutral, EmotionProfile{0, 1.0, RGB{0xFF, 0xA5, 0x00}}},
		{Happy, EmotionProfile{0.3, 1.2, RGB{0xFF, 0xD7, 0x00}}},
		{Sad, EmotionProfile{-0.3, 0.8, RGB{0x41, 0x69, 0xE1}}},
		{Angry, EmotionProfile{0, 0.7, RGB{0xDC, 0x14, 0x3C}}},
		{Surprised, EmotionProfile{0.5, 1.5, RGB{0xFF, 0x69, 0xB4}}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Profile(tt.emotion), string(tt.emotion))
	}
	assert.Equal(t, Profile(Neutral), Profile(Emotion("")))
	assert.Len(t, Emotions, len(profiles))
}

func TestParseEmotion(t *testing.T) {
	assert.Equal(t, Happy, ParseEmotion("happy"))
	assert.Equal(t, Surprised, ParseEmotion(" Surprised "))
	assert.Equal(t, Neutral, ParseEmotion("ecstatic"))
	assert.Equal(t, Neutral, ParseEmotion(""))
}

func TestParseKind(t *testing.T) {
	tests := map[string]Kind{
		"male":              ProceduralMale,
		"procedural-male":   ProceduralMale,
		"Female":            ProceduralFemale,
		"procedural-female": ProceduralFemale,
		"custom":            CustomImage,
		"custom-image":      CustomImage,
		"alien":             ProceduralMale,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseKind(in), in)
	}
}

func TestSkinTone(t *testing.T) {
	assert.Equal(t, RGB{0xFF, 0xDB, 0xAC}, ProceduralMale.SkinTone())
	assert.Equal(t, RGB{0xFF, 0xE4, 0xC4}, ProceduralFemale.SkinTone())
	assert.True(t, ProceduralFemale.IsProcedural())
	assert.False(t, CustomImage.IsProcedural())
}

func TestMouthRestHeight(t *testing.T) {
	assert.InDelta(t, 1.33, MouthRestHeight(Happy), 1e-12)
	assert.InDelta(t, 1.27, MouthRestHeight(Sad), 1e-12)
	assert.InDelta(t, 1.3, MouthRestHeight(Neutral), 1e-12)
}

func TestRGBFloats(t *testing.T) {
	f := RGB{255, 0, 51}.Floats()
	assert.Equal(t, float32(1), f[0])
	assert.Equal(t, float32(0), f[1])
	assert.InDelta(t, 0.2, f[2], 1e-6)
}
