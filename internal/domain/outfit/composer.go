package outfit

import (
	"strings"

	"github.com/yanqian/ai-wardrobe/internal/domain/wardrobe"
)

// DefaultCount is the number of outfits recommended per request.
const DefaultCount = 3

const (
	labelCasual   = "Casual Outfit"
	labelWarm     = "Outfit for Warm Weather"
	labelCold     = "Outfit for Cold Weather"
	umbrellaNotes = " (Don't forget an umbrella!)"
)

// RandomSource picks indexes for item selection. *rand.Rand from math/rand/v2 satisfies it.
type RandomSource interface {
	IntN(n int) int
}

// Outfit is one recommended combination.
type Outfit struct {
	Label     string         `json:"label"`
	Top       wardrobe.Item  `json:"top"`
	Bottom    wardrobe.Item  `json:"bottom"`
	Shoes     wardrobe.Item  `json:"shoes"`
	Outerwear *wardrobe.Item `json:"outerwear,omitempty"`
}

type partitions struct {
	tops      []wardrobe.Item
	bottoms   []wardrobe.Item
	outerwear []wardrobe.Item
	shoes     []wardrobe.Item
}

func partition(items []wardrobe.Item) partitions {
	var p partitions
	for _, item := range items {
		switch item.Category {
		case wardrobe.CategoryTop:
			p.tops = append(p.tops, item)
		case wardrobe.CategoryBottom:
			p.bottoms = append(p.bottoms, item)
		case wardrobe.CategoryOuterwear:
			p.outerwear = append(p.outerwear, item)
		case wardrobe.CategoryShoes:
			p.shoes = append(p.shoes, item)
		}
	}
	return p
}

// Compose builds count outfits from the wardrobe. It returns an empty slice when tops,
// bottoms or shoes are missing; one-piece items are never selected. Items are drawn
// with replacement, so outfits may repeat.
func Compose(items []wardrobe.Item, flags Flags, count int, rng RandomSource) []Outfit {
	p := partition(items)
	if len(p.tops) == 0 || len(p.bottoms) == 0 || len(p.shoes) == 0 || count <= 0 {
		return []Outfit{}
	}

	label := labelFor(flags)
	jackets := filterJackets(p.outerwear)

	outfits := make([]Outfit, 0, count)
	for i := 0; i < count; i++ {
		o := Outfit{
			Label:  label,
			Top:    pick(p.tops, rng),
			Bottom: pick(p.bottoms, rng),
			Shoes:  pick(p.shoes, rng),
		}
		// cold is checked before rain
		switch {
		case flags.Cold && len(p.outerwear) > 0:
			o.Outerwear = pickRef(p.outerwear, rng)
		case flags.Rainy && len(jackets) > 0:
			o.Outerwear = pickRef(jackets, rng)
		case flags.Rainy && len(p.outerwear) > 0:
			o.Outerwear = pickRef(p.outerwear, rng)
		}
		outfits = append(outfits, o)
	}
	return outfits
}

func labelFor(flags Flags) string {
	label := labelCasual
	if flags.Warm {
		label = labelWarm
	}
	if flags.Cold {
		label = labelCold
	}
	if flags.Rainy {
		label += umbrellaNotes
	}
	return label
}

func filterJackets(outerwear []wardrobe.Item) []wardrobe.Item {
	var out []wardrobe.Item
	for _, item := range outerwear {
		if strings.Contains(strings.ToLower(item.Filename), "jacket") {
			out = append(out, item)
		}
	}
	return out
}

func pick(items []wardrobe.Item, rng RandomSource) wardrobe.Item {
	return items[rng.IntN(len(items))]
}

func pickRef(items []wardrobe.Item, rng RandomSource) *wardrobe.Item {
	item := pick(items, rng)
	return &item
}
