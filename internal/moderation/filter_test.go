package moderation

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSource struct {
	words []string
	err   error
}

func (s *staticSource) Words(ctx context.Context) ([]string, error) {
	return s.words, s.err
}

func TestFilterContains(t *testing.T) {
	filter := NewFilter(&staticSource{words: []string{"spam", "scam"}})

	flagged, err := filter.Contains(context.Background(), "totally fine text")
	require.NoError(t, err)
	assert.False(t, flagged)

	flagged, err = filter.Contains(context.Background(), "this is SPAM really")
	require.NoError(t, err)
	assert.True(t, flagged, "matching is case-insensitive")

	// Substring containment, not word boundaries.
	flagged, err = filter.Contains(context.Background(), "spammer")
	require.NoError(t, err)
	assert.True(t, flagged)

	// Any of the given texts may trigger.
	flagged, err = filter.Contains(context.Background(), "caption ok", "body has a scam inside")
	require.NoError(t, err)
	assert.True(t, flagged)
}

func TestFilterPropagatesSourceError(t *testing.T) {
	filter := NewFilter(&staticSource{err: fmt.Errorf("db down")})

	_, err := filter.Contains(context.Background(), "anything")
	assert.Error(t, err)
}

func TestContainsAnyIgnoresEmptyWords(t *testing.T) {
	assert.False(t, ContainsAny([]string{""}, "some text"))
	assert.False(t, ContainsAny(nil, "some text"))
	assert.True(t, ContainsAny([]string{"bad"}, "a bad word"))
}
