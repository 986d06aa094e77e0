package model

import (
	"errors"
	"testing"

	"github.com/pkoukk/tiktoken-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTiktokenCounterRetriesFailedLoad(t *testing.T) {
	calls := 0
	fail := true
	want := &tiktoken.Tiktoken{}
	c := NewTiktokenCounter("gpt-test")
	c.load = func(model string) (*tiktoken.Tiktoken, error) {
		calls++
		assert.Equal(t, "gpt-test", model)
		if fail {
			return nil, errors.New("download failed")
		}
		return want, nil
	}

	_, err := c.Load()
	assert.Error(t, err)
	_, err = c.Count("hello")
	assert.Error(t, err)
	assert.Equal(t, 2, calls, "a failed load is not cached")

	fail = false
	enc, err := c.Load()
	require.NoError(t, err)
	assert.Same(t, want, enc)

	enc, err = c.Load()
	require.NoError(t, err)
	assert.Same(t, want, enc)
	assert.Equal(t, 3, calls, "a loaded encoding is reused")
}
