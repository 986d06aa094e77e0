package model

import (
	"fmt"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// TiktokenCounter counts tokens with the encoding of the configured model,
// falling back to o200k_base for models tiktoken does not know.
// A failed encoding load is retried on the next call.
type TiktokenCounter struct {
	model string
	load  func(model string) (*tiktoken.Tiktoken, error)

	mu  sync.Mutex
	enc *tiktoken.Tiktoken
}

func NewTiktokenCounter(model string) *TiktokenCounter {
	return &TiktokenCounter{
		model: model,
		load:  loadEncoding,
	}
}

func loadEncoding(model string) (*tiktoken.Tiktoken, error) {
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		enc, err = tiktoken.GetEncoding("o200k_base")
	}
	return enc, err
}

// Load fetches the BPE ranks once they are reachable. Call it at startup so
// the download does not land inside the first request.
func (c *TiktokenCounter) Load() (*tiktoken.Tiktoken, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.enc != nil {
		return c.enc, nil
	}
	enc, err := c.load(c.model)
	if err != nil {
		return nil, fmt.Errorf("load tiktoken encoding: %w", err)
	}
	c.enc = enc
	return enc, nil
}

func (c *TiktokenCounter) Count(text string) (int, error) {
	enc, err := c.Load()
	if err != nil {
		return 0, err
	}
	return len(enc.Encode(text, nil, nil)), nil
}
