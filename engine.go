package snowball

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
)

// Engine memoizes analyses: identical inputs and options return the same
// *Analysis without recomputation. It is safe for concurrent use.
type Engine struct {
	cache *cache.Cache
}

// NewEngine returns an Engine keeping results for ttl.
func NewEngine(ttl time.Duration) *Engine {
	return &Engine{cache: cache.New(ttl, 2*ttl)}
}

// Analyze is the memoized Analyze. The returned analysis is shared and must
// not be modified.
func (e *Engine) Analyze(in Inputs, opts AnalysisOptions) (*Analysis, error) {
	key, err := Key(in, opts)
	if err != nil {
		return nil, err
	}
	if v, found := e.cache.Get(key); found {
		return v.(*Analysis), nil
	}
	a, err := Analyze(in, opts)
	if err != nil {
		return nil, err
	}
	e.cache.Set(key, a, cache.DefaultExpiration)
	return a, nil
}

// Key returns the hash identifying an analysis request.
func Key(in Inputs, opts AnalysisOptions) (string, error) {
	data, err := json.Marshal(struct {
		Inputs  Inputs
		Options AnalysisOptions
	}{in, opts})
	if err != nil {
		return "", fmt.Errorf("could not hash analysis inputs: %w", err)
	}
	sum := sha1.Sum(data)
	return hex.EncodeToString(sum[:]), nil
}
