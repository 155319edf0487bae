package integrations_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"

	"brewnote.dev/BrewNote/pkg/integrations"
)

func TestGetIntegration(t *testing.T) {
	logger := zaptest.NewLogger(t)

	assert.NotNil(t, integrations.GetIntegration("coffeereview_web", logger))
	assert.Nil(t, integrations.GetIntegration("unknown", logger))
}
