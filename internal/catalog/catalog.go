package catalog

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/19506jk/briscola-server/internal/models"
)

//go:embed deck.toml
var defaultDeck []byte

// Rank describes one rank as it appears in every suit
type Rank struct {
	Name  string `toml:"name"`
	Point int    `toml:"point"`
	Value int    `toml:"value"`
}

// deckConfig mirrors the TOML layout
type deckConfig struct {
	Suits []string `toml:"suits"`
	Lead  struct {
		Suit string `toml:"suit"`
		Rank string `toml:"rank"`
	} `toml:"lead"`
	Ranks []Rank `toml:"ranks"`
}

// Catalog is the read-only set of cards a game is played with
type Catalog struct {
	suits []models.Suit
	ranks []Rank
	lead  models.Card
	cards []models.Card
	byKey map[cardKey]models.Card
}

type cardKey struct {
	suit models.Suit
	name string
}

// Default returns the embedded Italian 40-card catalog
func Default() (*Catalog, error) {
	return Parse(defaultDeck)
}

// Load reads a catalog from a TOML file
func Load(path string) (*Catalog, error) {
	var cfg deckConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing catalog %s: %w", path, err)
	}
	return build(&cfg)
}

// Parse decodes a catalog from TOML data
func Parse(data []byte) (*Catalog, error) {
	var cfg deckConfig
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, fmt.Errorf("error parsing catalog: %w", err)
	}
	return build(&cfg)
}

func build(cfg *deckConfig) (*Catalog, error) {
	if len(cfg.Suits) == 0 {
		return nil, errors.New("catalog has no suits")
	}
	if len(cfg.Ranks) == 0 {
		return nil, errors.New("catalog has no ranks")
	}

	c := &Catalog{
		suits: make([]models.Suit, 0, len(cfg.Suits)),
		ranks: make([]Rank, len(cfg.Ranks)),
		cards: make([]models.Card, 0, len(cfg.Suits)*len(cfg.Ranks)),
		byKey: make(map[cardKey]models.Card, len(cfg.Suits)*len(cfg.Ranks)),
	}
	copy(c.ranks, cfg.Ranks)

	for _, s := range cfg.Suits {
		suit := models.Suit(s)
		c.suits = append(c.suits, suit)
		for _, rank := range cfg.Ranks {
			if rank.Name == "" {
				return nil, errors.New("catalog rank without a name")
			}
			card := models.Card{
				Suit:  suit,
				Name:  rank.Name,
				Point: rank.Point,
				Value: rank.Value,
			}
			key := cardKey{suit: suit, name: rank.Name}
			if _, dup := c.byKey[key]; dup {
				return nil, fmt.Errorf("duplicate card in catalog: %s", card)
			}
			c.byKey[key] = card
			c.cards = append(c.cards, card)
		}
	}

	lead, ok := c.Lookup(models.Suit(cfg.Lead.Suit), cfg.Lead.Rank)
	if !ok {
		return nil, fmt.Errorf("lead card %s of %s is not in the catalog", cfg.Lead.Rank, cfg.Lead.Suit)
	}
	c.lead = lead

	return c, nil
}

// Cards returns every card in suit-major order. The slice is a copy.
func (c *Catalog) Cards() []models.Card {
	out := make([]models.Card, len(c.cards))
	copy(out, c.cards)
	return out
}

// Size is the number of cards in the catalog
func (c *Catalog) Size() int {
	return len(c.cards)
}

// Suits returns the suits in catalog order
func (c *Catalog) Suits() []models.Suit {
	out := make([]models.Suit, len(c.suits))
	copy(out, c.suits)
	return out
}

// Ranks returns the ranks in catalog order
func (c *Catalog) Ranks() []Rank {
	out := make([]Rank, len(c.ranks))
	copy(out, c.ranks)
	return out
}

// LeadCard is the card whose holder leads the first trick
func (c *Catalog) LeadCard() models.Card {
	return c.lead
}

// Lookup finds a card by suit and rank name
func (c *Catalog) Lookup(suit models.Suit, name string) (models.Card, bool) {
	card, ok := c.byKey[cardKey{suit: suit, name: name}]
	return card, ok
}
