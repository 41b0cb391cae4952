package main

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/reelcheck/internal/transition"
)

func TestCheck_KeepsFrame(t *testing.T) {
	log, _ := test.NewNullLogger()

	report, err := Check(context.Background(), Options{
		FrameRate: 24,
		Duration:  10,
		Frame:     120,
		Timeout:   5 * time.Second,
	}, log)

	require.NoError(t, err)
	assert.Equal(t, 120, report.Before)
	assert.Equal(t, 120, report.After)
	assert.False(t, report.Stalled)
	assert.GreaterOrEqual(t, report.Reveal, transition.DefaultDebounce)
}

func TestCheck_HungVersionStalls(t *testing.T) {
	log, _ := test.NewNullLogger()

	report, err := Check(context.Background(), Options{
		FrameRate: 24,
		Duration:  10,
		Frame:     48,
		Hung:      true,
		Timeout:   10 * time.Second,
	}, log)

	require.ErrorIs(t, err, errStalled)
	assert.True(t, report.Stalled)
	assert.GreaterOrEqual(t, report.Reveal, transition.DefaultTimeout)
}

func TestCheck_Timeout(t *testing.T) {
	log, _ := test.NewNullLogger()

	_, err := Check(context.Background(), Options{
		FrameRate: 24,
		Duration:  10,
		Frame:     1,
		Timeout:   time.Millisecond,
	}, log)

	require.ErrorIs(t, err, errTimeout)
}

func TestReport_String(t *testing.T) {
	r := Report{Before: 1200, After: 1200, Reveal: 212345 * time.Microsecond}

	assert.Equal(t, "frame 1,200 -> 1,200, revealed in 212ms", r.String())
}
