package cache

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/domino14/redblack/config"
	"github.com/domino14/redblack/evtable"
)

// The cache keeps one filled expected value table per deck size, so that
// switching deck sizes back and forth in the shell does not refill tables.

type cache struct {
	sync.Mutex
	tables map[int]*evtable.Builder
}

type loadFunc func(cfg *config.Config, deckSize int) (*evtable.Builder, error)

// GlobalTableCache is our global table cache.
var GlobalTableCache *cache

func buildTable(cfg *config.Config, deckSize int) (*evtable.Builder, error) {
	t, err := evtable.New(deckSize)
	if err != nil {
		return nil, err
	}
	t.Fill()
	return t, nil
}

func (c *cache) get(cfg *config.Config, deckSize int, load loadFunc) (*evtable.Builder, error) {
	c.Lock()
	defer c.Unlock()
	if t, ok := c.tables[deckSize]; ok {
		log.Debug().Int("deck-size", deckSize).Msg("getting table from cache")
		return t, nil
	}
	log.Debug().Int("deck-size", deckSize).Msg("loading table into cache")
	t, err := load(cfg, deckSize)
	if err != nil {
		return nil, err
	}
	c.tables[deckSize] = t
	return t, nil
}

func CreateGlobalTableCache() {
	GlobalTableCache = &cache{tables: make(map[int]*evtable.Builder)}
}

// Load returns the filled table for the deck size. A deckSize of 0 means
// the deck size from the config.
func Load(cfg *config.Config, deckSize int) (*evtable.Builder, error) {
	if GlobalTableCache == nil {
		CreateGlobalTableCache()
	}
	if deckSize == 0 {
		deckSize = cfg.GetInt(config.ConfigDeckSize)
	}
	return GlobalTableCache.get(cfg, deckSize, buildTable)
}

// Reset empties the cache.
func Reset() {
	CreateGlobalTableCache()
}
