package capacity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

func TestRemainingUnlimited(t *testing.T) {
	decision := domain.DateDecision{Bookable: true, Lockout: 0}

	assert.Equal(t, Unlimited, Remaining(decision, 0))
	assert.Equal(t, Unlimited, Remaining(decision, 10000))
}

func TestRemainingMonotonicAndClamped(t *testing.T) {
	decision := domain.DateDecision{Bookable: true, Lockout: 5}

	prev := Remaining(decision, 0)
	assert.Equal(t, 5, prev)

	// Остаток не возрастает с ростом счетчика и не уходит в минус
	for count := 1; count <= 10; count++ {
		cur := Remaining(decision, count)
		assert.LessOrEqual(t, cur, prev)
		assert.GreaterOrEqual(t, cur, 0)
		prev = cur
	}
	assert.Equal(t, 0, Remaining(decision, 5))
	assert.Equal(t, 0, Remaining(decision, 100))
}

func TestAllows(t *testing.T) {
	assert.True(t, Allows(Unlimited, 9999))
	assert.True(t, Allows(3, 3))
	assert.False(t, Allows(3, 4))
	assert.False(t, Allows(0, 1))
	assert.True(t, Allows(0, 0))
}
