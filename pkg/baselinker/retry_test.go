package baselinker_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tournevent/baselinker/pkg/baselinker"
)

func TestRetryPolicy_Default(t *testing.T) {
	p := baselinker.DefaultRetryPolicy()

	assert.Equal(t, 4, p.Attempts())
	assert.Equal(t, time.Second, p.Delay(0))
	assert.Equal(t, 2*time.Second, p.Delay(1))
	assert.Equal(t, 4*time.Second, p.Delay(2))
}

func TestRetryPolicy_DelayClampsToLast(t *testing.T) {
	p := baselinker.RetryPolicy{
		Delays:      []time.Duration{10 * time.Millisecond, 20 * time.Millisecond},
		MaxAttempts: 6,
	}

	assert.Equal(t, 6, p.Attempts())
	assert.Equal(t, 20*time.Millisecond, p.Delay(2))
	assert.Equal(t, 20*time.Millisecond, p.Delay(10))
}

func TestRetryPolicy_NoRetry(t *testing.T) {
	p := baselinker.NoRetry()

	assert.Equal(t, 1, p.Attempts())
	assert.Equal(t, time.Duration(0), p.Delay(0))
}

func TestRetryPolicy_EmptyDelays(t *testing.T) {
	p := baselinker.RetryPolicy{}

	assert.Equal(t, 1, p.Attempts())
	assert.Equal(t, time.Duration(0), p.Delay(3))
}
