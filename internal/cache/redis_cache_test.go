package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestQuizKey(t *testing.T) {
	assert.Equal(t, "quiz:42", QuizKey(42))
}

func TestNoopCache_AlwaysMisses(t *testing.T) {
	c := NewNoopCache()
	ctx := context.Background()

	assert.NoError(t, c.Set(ctx, QuizKey(1), "value", time.Minute))

	var dest string
	err := c.Get(ctx, QuizKey(1), &dest)
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.Empty(t, dest)

	assert.NoError(t, c.Delete(ctx, QuizKey(1)))
}
