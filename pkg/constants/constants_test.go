package constants_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/vinoteca/pkg/constants"
)

func TestBufferSizes(t *testing.T) {
	assert.Greater(t, constants.EventBufferSize, constants.ClientBufferSize)
	assert.Positive(t, constants.RegistrationBufferSize)
}

func TestTimeouts(t *testing.T) {
	assert.Greater(t, constants.ShutdownTimeout, constants.DefaultWriteTimeout)
	assert.Greater(t, constants.RateLimitIdleTimeout, constants.RateLimitCleanupInterval)
}
