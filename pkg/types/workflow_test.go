package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComplexityForNodeCount(t *testing.T) {
	assert.Equal(t, ComplexityLow, ComplexityForNodeCount(0))
	assert.Equal(t, ComplexityLow, ComplexityForNodeCount(5))
	assert.Equal(t, ComplexityMedium, ComplexityForNodeCount(6))
	assert.Equal(t, ComplexityMedium, ComplexityForNodeCount(15))
	assert.Equal(t, ComplexityHigh, ComplexityForNodeCount(16))
}

func TestValidTriggerType(t *testing.T) {
	for _, v := range []string{"Manual", "Webhook", "Scheduled", "Triggered"} {
		assert.True(t, ValidTriggerType(v), v)
	}
	assert.False(t, ValidTriggerType("webhook"))
	assert.False(t, ValidTriggerType(""))
}

func TestValidComplexity(t *testing.T) {
	for _, v := range []string{"low", "medium", "high"} {
		assert.True(t, ValidComplexity(v), v)
	}
	assert.False(t, ValidComplexity("Low"))
	assert.False(t, ValidComplexity(""))
}
