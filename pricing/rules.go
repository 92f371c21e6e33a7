package pricing

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Baseline selects which unit price feeds the subtotal.
type Baseline string

const (
	// BaselineOriginal prices every line at the list price. Sale prices are
	// visible in the catalog but do not change the quote.
	BaselineOriginal Baseline = "original"
	// BaselineCurrent prices every line at the sale-adjusted price.
	BaselineCurrent Baseline = "current"
)

// Rules holds every tunable of the pricing and points engine.
type Rules struct {
	Baseline   Baseline        `yaml:"baseline"`
	Timezone   string          `yaml:"timezone,omitempty"` // IANA name; empty uses the location of the supplied time
	Individual IndividualRules `yaml:"individual"`
	Bulk       BulkRules       `yaml:"bulk"`
	Tuesday    TuesdayRules    `yaml:"tuesday"`
	Sales      SaleRules       `yaml:"sales"`
	Points     PointsRules     `yaml:"points"`

	// MaxLineQuantity caps a single cart line. Larger lines are skipped.
	MaxLineQuantity int `yaml:"max_line_quantity"`
}

// IndividualRules grants per-product rates to lines of at least MinQuantity.
// Rates replaces the default table as a whole when set in a rule file.
type IndividualRules struct {
	MinQuantity int                `yaml:"min_quantity"`
	Rates       map[string]float64 `yaml:"rates"` // product id -> percent
}

// BulkRules replaces every individual rate once the cart holds MinQuantity items.
type BulkRules struct {
	MinQuantity int     `yaml:"min_quantity"`
	RatePercent float64 `yaml:"rate_percent"`
}

// TuesdayRules applies on Tuesdays after every other discount.
type TuesdayRules struct {
	RatePercent      float64 `yaml:"rate_percent"`
	PointsMultiplier int64   `yaml:"points_multiplier"`
}

// SaleRules holds the price cuts of the two sale events.
type SaleRules struct {
	LightningRatePercent  float64 `yaml:"lightning_rate_percent"`
	SuggestionRatePercent float64 `yaml:"suggestion_rate_percent"`
}

// PointsRules configures loyalty points earned on the final charge.
type PointsRules struct {
	PerAmount int64        `yaml:"per_amount"` // currency units per base point
	Combos    []ComboBonus `yaml:"combos"`
	Tiers     []TierBonus  `yaml:"tiers"`
}

// ComboBonus is awarded when every listed product is present in the cart,
// whatever the quantities. Combos are independent and additive.
type ComboBonus struct {
	Name     string   `yaml:"name"`
	Products []string `yaml:"products"`
	Bonus    int64    `yaml:"bonus"`
}

// TierBonus is keyed on total cart quantity. Only the highest matching tier counts.
type TierBonus struct {
	MinQuantity int   `yaml:"min_quantity"`
	Bonus       int64 `yaml:"bonus"`
}

// Reference product ids of the default data set.
const (
	ProductKeyboard    = "p1"
	ProductMouse       = "p2"
	ProductMonitorArm  = "p3"
	ProductLaptopPouch = "p4"
	ProductSpeaker     = "p5"
)

// DefaultMaxLineQuantity is the per-line cap when a rule file sets none.
const DefaultMaxLineQuantity = 10000

// DefaultRules returns the reference rule set.
func DefaultRules() Rules {
	return Rules{
		Baseline:        BaselineOriginal,
		MaxLineQuantity: DefaultMaxLineQuantity,
		Individual: IndividualRules{
			MinQuantity: 10,
			Rates: map[string]float64{
				ProductKeyboard:    10,
				ProductMouse:       15,
				ProductMonitorArm:  20,
				ProductLaptopPouch: 5,
				ProductSpeaker:     25,
			},
		},
		Bulk:    BulkRules{MinQuantity: 30, RatePercent: 25},
		Tuesday: TuesdayRules{RatePercent: 10, PointsMultiplier: 2},
		Sales:   SaleRules{LightningRatePercent: 20, SuggestionRatePercent: 5},
		Points: PointsRules{
			PerAmount: 1000,
			Combos: []ComboBonus{
				{Name: "keyboard+mouse set", Products: []string{ProductKeyboard, ProductMouse}, Bonus: 50},
				{Name: "full set", Products: []string{ProductKeyboard, ProductMouse, ProductMonitorArm}, Bonus: 100},
			},
			Tiers: []TierBonus{
				{MinQuantity: 30, Bonus: 100},
				{MinQuantity: 20, Bonus: 50},
				{MinQuantity: 10, Bonus: 20},
			},
		},
	}
}

// LoadRules reads a YAML rule file. A missing file yields DefaultRules.
// Values present in the file override the defaults.
func LoadRules(path string) (Rules, error) {
	rules := DefaultRules()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return rules, nil
		}
		return Rules{}, fmt.Errorf("failed to read pricing rules: %w", err)
	}
	// yaml.v3 merges into an existing map, so a rates table in the file
	// must start from an empty map.
	var overlay struct {
		Individual struct {
			Rates map[string]float64 `yaml:"rates"`
		} `yaml:"individual"`
	}
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return Rules{}, fmt.Errorf("failed to parse pricing rules: %w", err)
	}
	if overlay.Individual.Rates != nil {
		rules.Individual.Rates = map[string]float64{}
	}
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return Rules{}, fmt.Errorf("failed to parse pricing rules: %w", err)
	}
	if err := rules.Validate(); err != nil {
		return Rules{}, fmt.Errorf("invalid pricing rules: %w", err)
	}
	return rules, nil
}

// Validate checks ranges and normalizes tier order (highest threshold first).
func (r *Rules) Validate() error {
	switch r.Baseline {
	case "":
		r.Baseline = BaselineOriginal
	case BaselineOriginal, BaselineCurrent:
	default:
		return fmt.Errorf("unknown baseline %q", r.Baseline)
	}
	if r.Individual.MinQuantity <= 0 {
		return fmt.Errorf("individual.min_quantity must be greater than 0")
	}
	for id, rate := range r.Individual.Rates {
		if err := checkPercent(rate); err != nil {
			return fmt.Errorf("individual rate for %s: %w", id, err)
		}
	}
	if r.MaxLineQuantity <= 0 {
		return fmt.Errorf("max_line_quantity must be greater than 0")
	}
	if r.Bulk.MinQuantity <= 0 {
		return fmt.Errorf("bulk.min_quantity must be greater than 0")
	}
	for name, rate := range map[string]float64{
		"bulk.rate_percent":             r.Bulk.RatePercent,
		"tuesday.rate_percent":          r.Tuesday.RatePercent,
		"sales.lightning_rate_percent":  r.Sales.LightningRatePercent,
		"sales.suggestion_rate_percent": r.Sales.SuggestionRatePercent,
	} {
		if err := checkPercent(rate); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	if r.Tuesday.PointsMultiplier < 1 {
		return fmt.Errorf("tuesday.points_multiplier must be at least 1")
	}
	if r.Points.PerAmount <= 0 {
		return fmt.Errorf("points.per_amount must be greater than 0")
	}
	for _, c := range r.Points.Combos {
		if len(c.Products) == 0 {
			return fmt.Errorf("combo %q lists no products", c.Name)
		}
		if c.Bonus < 0 {
			return fmt.Errorf("combo %q has a negative bonus", c.Name)
		}
	}
	for _, t := range r.Points.Tiers {
		if t.MinQuantity <= 0 || t.Bonus < 0 {
			return fmt.Errorf("invalid points tier %+v", t)
		}
	}
	sort.SliceStable(r.Points.Tiers, func(i, j int) bool {
		return r.Points.Tiers[i].MinQuantity > r.Points.Tiers[j].MinQuantity
	})
	return nil
}

func checkPercent(p float64) error {
	if p < 0 || p > 100 {
		return fmt.Errorf("rate %v out of range 0..100", p)
	}
	return nil
}
