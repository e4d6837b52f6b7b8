package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNormalizePair(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()

	forward := NormalizePair(a, b)
	backward := NormalizePair(b, a)

	assert.Equal(t, forward, backward, "a pair must normalize identically regardless of order")
	assert.Len(t, forward, 2)
	assert.Contains(t, forward, a)
	assert.Contains(t, forward, b)
}

func TestNormalizePairSamePair(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()

	first := NormalizePair(a, b)
	second := NormalizePair(a, b)
	assert.Equal(t, first, second)
}
