package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func i64(v int64) *int64 { return &v }

func TestUsageAddIdentity(t *testing.T) {
	a := Usage{PromptTokens: i64(5), CompletionTokens: i64(2), TotalTokens: i64(7)}
	sum := a.Add(Usage{})
	assert.Equal(t, *a.PromptTokens, *sum.PromptTokens)
	assert.Equal(t, *a.CompletionTokens, *sum.CompletionTokens)
	assert.Equal(t, *a.TotalTokens, *sum.TotalTokens)
}

func TestUsageAddAllNilStaysNil(t *testing.T) {
	sum := Usage{}.Add(Usage{})
	assert.Nil(t, sum.PromptTokens)
	assert.Nil(t, sum.TotalTokens)
}

func TestUsageAddCommutative(t *testing.T) {
	a := Usage{PromptTokens: i64(3)}
	b := Usage{PromptTokens: i64(4)}
	ab := a.Add(b)
	ba := b.Add(a)
	assert.Equal(t, *ab.PromptTokens, *ba.PromptTokens)
}

func TestUsageAddAssociative(t *testing.T) {
	a := Usage{PromptTokens: i64(1)}
	b := Usage{PromptTokens: i64(2)}
	c := Usage{PromptTokens: i64(3)}
	left := a.Add(b).Add(c)
	right := a.Add(b.Add(c))
	assert.Equal(t, *left.PromptTokens, *right.PromptTokens)
}

func TestUsageAddTreatsAbsentAsZeroWhenOneSideHasIt(t *testing.T) {
	a := Usage{PromptTokens: i64(10)}
	b := Usage{}
	sum := a.Add(b)
	assert.Equal(t, int64(10), *sum.PromptTokens)
}
