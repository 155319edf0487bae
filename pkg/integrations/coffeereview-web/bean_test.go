package coffeereviewweb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractRating(t *testing.T) {
	rating := extractRating(BeanScraped{Rating: " 94 "})
	assert.NotNil(t, rating)
	assert.InDelta(t, 94.0, *rating, 0.01)

	assert.Nil(t, extractRating(BeanScraped{Rating: "NR"}))
	assert.Nil(t, extractRating(BeanScraped{}))
}
