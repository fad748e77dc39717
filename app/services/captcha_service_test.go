package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Generate must never hand back a nil challenge without an error; callers
// dereference the challenge ID as soon as the call succeeds.
func TestCaptchaGenerateReturnsUsableChallenge(t *testing.T) {
	svc, err := NewCaptchaService(2*time.Minute, 8, 220)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		challenge, err := svc.Generate(context.Background())
		require.NoError(t, err)
		require.NotNil(t, challenge)
		assert.NotEmpty(t, challenge.ID)
		assert.NotEmpty(t, challenge.MasterImageBase64)
		assert.NotEmpty(t, challenge.ThumbImageBase64)
	}
}

func TestCaptchaVerifyConsumesChallenge(t *testing.T) {
	svc, err := NewCaptchaService(2*time.Minute, 8, 220)
	require.NoError(t, err)
	impl := svc.(*captchaServiceImpl)

	challenge, err := svc.Generate(context.Background())
	require.NoError(t, err)

	entry, ok := impl.store.Get(challenge.ID)
	require.True(t, ok)

	assert.True(t, svc.Verify(context.Background(), challenge.ID, float64(entry.targetAngle)))

	// consumed on the first attempt
	assert.False(t, svc.Verify(context.Background(), challenge.ID, float64(entry.targetAngle)))
}

func TestCaptchaVerifyRejectsWrongAngle(t *testing.T) {
	svc, err := NewCaptchaService(2*time.Minute, 2, 220)
	require.NoError(t, err)
	impl := svc.(*captchaServiceImpl)

	challenge, err := svc.Generate(context.Background())
	require.NoError(t, err)

	entry, ok := impl.store.Get(challenge.ID)
	require.True(t, ok)

	assert.False(t, svc.Verify(context.Background(), challenge.ID, float64(entry.targetAngle+90)))

	// a failed attempt consumes the challenge too
	_, ok = impl.store.Get(challenge.ID)
	assert.False(t, ok)
}

func TestCaptchaVerifyUnknownChallenge(t *testing.T) {
	svc, err := NewCaptchaService(2*time.Minute, 8, 220)
	require.NoError(t, err)

	assert.False(t, svc.Verify(context.Background(), "missing-challenge", 45))
}
