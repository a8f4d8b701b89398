package avatar

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allKinds = []Kind{ProceduralMale, ProceduralFemale, CustomImage}

func TestComputePoseIsPure(t *testing.T) {
	for _, kind := range allKinds {
		for _, emotion := range Emotions {
			for _, speaking := range []bool{false, true} {
				for _, ts := range []float64{0, 0.016, 1.5, 42.25, 3600.5} {
					a := ComputePose(ts, emotion, kind, speaking)
					b := ComputePose(ts, emotion, kind, speaking)
					assert.Equal(t, a, b, "kind=%s emotion=%s speaking=%v t=%v", kind, emotion, speaking, ts)
				}
			}
		}
	}
}

func TestBlinkDutyCycle(t *testing.T) {
	const samples = 200000
	period := 2 * math.Pi / 3

	closed := 0
	for i := 0; i < samples; i++ {
		ts := period * float64(i) / samples
		pose := ComputePose(ts, Neutral, ProceduralMale, false)
		switch pose.Rig.EyeScale {
		case 0.3:
			closed++
		case 1.0:
		default:
			t.Fatalf("unexpected eye scale %v at t=%v", pose.Rig.EyeScale, ts)
		}
	}

	want := (math.Pi - 2*math.Asin(0.95)) / (2 * math.Pi)
	got := float64(closed) / samples
	assert.InDelta(t, want, got, 0.001)
}

func TestBlinkThresholdIsExclusive(t *testing.T) {
	assert.Equal(t, 1.0, blinkScale(-0.95))
	assert.Equal(t, 0.3, blinkScale(math.Nextafter(-0.95, -1)))
	assert.Equal(t, 1.0, blinkScale(0))
	assert.Equal(t, 0.3, blinkScale(-1))
}

func TestArmsRestWhenIdle(t *testing.T) {
	for _, emotion := range Emotions {
		for ts := 0.0; ts < 20; ts += 0.37 {
			pose := ComputePose(ts, emotion, ProceduralFemale, false)
			require.NotNil(t, pose.Rig)
			assert.Equal(t, 0.5, pose.Rig.LeftArmZ)
			assert.Equal(t, -0.5, pose.Rig.RightArmZ)
		}
	}
}

func TestArmsSwayInOppositePhaseWhenSpeaking(t *testing.T) {
	for ts := 0.0; ts < 10; ts += 0.11 {
		pose := ComputePose(ts, Neutral, ProceduralMale, true)
		assert.InDelta(t, math.Sin(ts*2)*0.3+0.5, pose.Rig.LeftArmZ, 1e-12)
		assert.InDelta(t, pose.Rig.LeftArmZ-0.5, -(pose.Rig.RightArmZ + 0.5), 1e-9)
	}
}

func TestSpeakingMouthRange(t *testing.T) {
	for ts := 0.0; ts < 5; ts += 0.013 {
		ref := ComputePose(ts, Neutral, ProceduralMale, true).Rig.MouthScale
		assert.GreaterOrEqual(t, ref, 1.0)
		assert.LessOrEqual(t, ref, 1.3)
		for _, emotion := range Emotions {
			got := ComputePose(ts, emotion, ProceduralMale, true).Rig.MouthScale
			assert.Equal(t, ref, got, "mouth depends on emotion %s", emotion)
		}
	}
}

func TestIdleMouthFollowsEmotion(t *testing.T) {
	tests := []struct {
		emotion Emotion
		want    float64
	}{
		{Neutral, 1.0},
		{Happy, 1.03},
		{Sad, 0.97},
		{Angry, 1.0},
		{Surprised, 1.05},
	}
	for _, tt := range tests {
		t.Run(string(tt.emotion), func(t *testing.T) {
			for _, ts := range []float64{0, 1, 7.5} {
				pose := ComputePose(ts, tt.emotion, ProceduralMale, false)
				assert.Equal(t, 1+Profile(tt.emotion).MouthOffset*0.1, pose.Rig.MouthScale)
				assert.InDelta(t, tt.want, pose.Rig.MouthScale, 1e-12)
			}
		})
	}
}

func TestCustomImageHasNoRig(t *testing.T) {
	for ts := 0.0; ts < 3; ts += 0.25 {
		for _, speaking := range []bool{false, true} {
			pose := ComputePose(ts, Happy, CustomImage, speaking)
			assert.Nil(t, pose.Rig)
			require.NotNil(t, pose.Plane)
			assert.Equal(t, CustomImage, pose.Kind)
			assert.InDelta(t, math.Sin(ts*0.5)*0.1, pose.Plane.RotY, 1e-12)
			assert.InDelta(t, math.Sin(ts*0.3)*0.05, pose.Plane.RotX, 1e-12)
			if speaking {
				assert.InDelta(t, 1+math.Sin(ts*10)*0.02, pose.Plane.Scale, 1e-12)
			} else {
				assert.Equal(t, 1.0, pose.Plane.Scale)
			}
		}
	}
}

func TestProceduralHasNoPlane(t *testing.T) {
	pose := ComputePose(1, Sad, ProceduralFemale, true)
	assert.Nil(t, pose.Plane)
	assert.NotNil(t, pose.Rig)
	assert.Equal(t, ProceduralFemale, pose.Kind)
}

func TestSurprisedSpeakingAtZero(t *testing.T) {
	pose := ComputePose(0, Surprised, ProceduralMale, true)
	require.NotNil(t, pose.Rig)
	assert.Equal(t, 1.0, pose.Rig.EyeScale)
	assert.Equal(t, 1.0, pose.Rig.MouthScale)
	assert.Equal(t, 0.0, pose.Rig.HeadRotY)
	assert.Equal(t, 0.0, pose.Rig.HeadRotX)
	assert.Equal(t, 0.0, pose.Bob)
}

func TestHeadSwayAmplitude(t *testing.T) {
	for ts := 0.0; ts < 60; ts += 0.1 {
		pose := ComputePose(ts, Neutral, ProceduralMale, false)
		assert.LessOrEqual(t, math.Abs(pose.Rig.HeadRotY), 0.1)
		assert.LessOrEqual(t, math.Abs(pose.Rig.HeadRotX), 0.05)
		assert.LessOrEqual(t, math.Abs(pose.Bob), 0.02)
	}
}

func TestUnknownInputsUseDefaults(t *testing.T) {
	got := ComputePose(2.5, Emotion("bored"), Kind("robot"), false)
	want := ComputePose(2.5, Neutral, ProceduralMale, false)
	assert.Equal(t, want, got)
}
