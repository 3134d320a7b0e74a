package outfit

import (
	"math/rand/v2"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/yanqian/ai-wardrobe/internal/domain/wardrobe"
)

func TestComposeEmptyWhenCategoryMissing(t *testing.T) {
	top := newItem("T1", wardrobe.CategoryTop)
	bottom := newItem("B1", wardrobe.CategoryBottom)
	shoes := newItem("S1", wardrobe.CategoryShoes)
	coat := newItem("coat", wardrobe.CategoryOuterwear)
	dress := newItem("dress", wardrobe.CategoryOnePiece)

	wardrobes := map[string][]wardrobe.Item{
		"no tops":    {bottom, shoes, coat},
		"no bottoms": {top, shoes, coat, dress},
		"no shoes":   {top, bottom, coat},
		"empty":      nil,
	}
	allFlags := []Flags{{}, {Warm: true}, {Cold: true}, {Rainy: true}, {Cold: true, Rainy: true}}
	for name, items := range wardrobes {
		for _, flags := range allFlags {
			got := Compose(items, flags, 3, seeded(1))
			require.NotNil(t, got, name)
			require.Empty(t, got, name)
		}
	}
}

func TestComposeReturnsCountOutfitsFromPartitions(t *testing.T) {
	items := sampleWardrobe()
	for _, n := range []int{1, 3, 7} {
		outfits := Compose(items, Flags{Warm: true}, n, seeded(42))
		require.Len(t, outfits, n)
		for _, o := range outfits {
			require.Equal(t, wardrobe.CategoryTop, o.Top.Category)
			require.Equal(t, wardrobe.CategoryBottom, o.Bottom.Category)
			require.Equal(t, wardrobe.CategoryShoes, o.Shoes.Category)
			require.Nil(t, o.Outerwear)
		}
	}
}

func TestComposeNonPositiveCount(t *testing.T) {
	require.Empty(t, Compose(sampleWardrobe(), Flags{}, 0, seeded(1)))
	require.Empty(t, Compose(sampleWardrobe(), Flags{}, -2, seeded(1)))
}

func TestComposeNeverSelectsOnePiece(t *testing.T) {
	items := append(sampleWardrobe(), newItem("jumpsuit", wardrobe.CategoryOnePiece))
	for _, o := range Compose(items, Flags{Cold: true}, 50, seeded(9)) {
		for _, item := range []wardrobe.Item{o.Top, o.Bottom, o.Shoes, *o.Outerwear} {
			require.NotEqual(t, wardrobe.CategoryOnePiece, item.Category)
		}
	}
}

func TestComposeColdAlwaysAddsOuterwear(t *testing.T) {
	items := sampleWardrobe()
	outerwear := idsOf(items, wardrobe.CategoryOuterwear)

	outfits := Compose(items, Flags{Cold: true}, 20, seeded(7))
	require.Len(t, outfits, 20)
	for _, o := range outfits {
		require.NotNil(t, o.Outerwear)
		require.Contains(t, outerwear, o.Outerwear.ID)
	}
}

func TestComposeColdWithoutOuterwear(t *testing.T) {
	items := []wardrobe.Item{
		newItem("T1", wardrobe.CategoryTop),
		newItem("B1", wardrobe.CategoryBottom),
		newItem("S1", wardrobe.CategoryShoes),
	}
	for _, o := range Compose(items, Flags{Cold: true, Rainy: true}, 3, seeded(3)) {
		require.Nil(t, o.Outerwear)
		require.Equal(t, "Outfit for Cold Weather (Don't forget an umbrella!)", o.Label)
	}
}

func TestComposeRainPrefersJackets(t *testing.T) {
	items := sampleWardrobe()
	var jacketIDs []uuid.UUID
	for _, item := range items {
		if item.Filename == "denim_jacket.png" || item.Filename == "RainJacket.jpg" {
			jacketIDs = append(jacketIDs, item.ID)
		}
	}

	outfits := Compose(items, Flags{Rainy: true}, 30, seeded(11))
	for _, o := range outfits {
		require.NotNil(t, o.Outerwear)
		require.Contains(t, jacketIDs, o.Outerwear.ID)
	}
}

func TestComposeRainFallsBackToAnyOuterwear(t *testing.T) {
	coat := newItem("wool_coat.png", wardrobe.CategoryOuterwear)
	items := []wardrobe.Item{
		newItem("T1", wardrobe.CategoryTop),
		newItem("B1", wardrobe.CategoryBottom),
		newItem("S1", wardrobe.CategoryShoes),
		coat,
	}
	for _, o := range Compose(items, Flags{Warm: true, Rainy: true}, 3, seeded(5)) {
		require.NotNil(t, o.Outerwear)
		require.Equal(t, coat.ID, o.Outerwear.ID)
		require.Equal(t, "Outfit for Warm Weather (Don't forget an umbrella!)", o.Label)
	}
}

func TestComposeColdTakesPrecedenceOverRain(t *testing.T) {
	jacket := newItem("rain_jacket.png", wardrobe.CategoryOuterwear)
	coat := newItem("wool_coat.png", wardrobe.CategoryOuterwear)
	items := []wardrobe.Item{
		newItem("T1", wardrobe.CategoryTop),
		newItem("B1", wardrobe.CategoryBottom),
		newItem("S1", wardrobe.CategoryShoes),
		jacket,
		coat,
	}
	// index 1 into the full outerwear list is the coat, which the rain rule would never pick
	rng := &scriptedRand{values: []int{0, 0, 0, 1}}
	outfits := Compose(items, Flags{Cold: true, Rainy: true}, 1, rng)
	require.Len(t, outfits, 1)
	require.Equal(t, coat.ID, outfits[0].Outerwear.ID)
}

func TestComposeNoOuterwearWithoutColdOrRain(t *testing.T) {
	for _, flags := range []Flags{{}, {Warm: true}} {
		for _, o := range Compose(sampleWardrobe(), flags, 10, seeded(2)) {
			require.Nil(t, o.Outerwear)
		}
	}
}

func TestComposeLabels(t *testing.T) {
	cases := []struct {
		flags Flags
		want  string
	}{
		{Flags{}, "Casual Outfit"},
		{Flags{Warm: true}, "Outfit for Warm Weather"},
		{Flags{Cold: true}, "Outfit for Cold Weather"},
		{Flags{Warm: true, Cold: true}, "Outfit for Cold Weather"},
		{Flags{Rainy: true}, "Casual Outfit (Don't forget an umbrella!)"},
		{Flags{Warm: true, Rainy: true}, "Outfit for Warm Weather (Don't forget an umbrella!)"},
		{Flags{Cold: true, Rainy: true}, "Outfit for Cold Weather (Don't forget an umbrella!)"},
		{Flags{Warm: true, Cold: true, Rainy: true}, "Outfit for Cold Weather (Don't forget an umbrella!)"},
	}
	for _, tc := range cases {
		outfits := Compose(sampleWardrobe(), tc.flags, 2, seeded(1))
		require.Len(t, outfits, 2)
		for _, o := range outfits {
			require.Equal(t, tc.want, o.Label, "%+v", tc.flags)
		}
	}
}

func TestComposeDeterministicWithSeed(t *testing.T) {
	items := sampleWardrobe()
	flags := Flags{Rainy: true}

	first := Compose(items, flags, 5, seeded(1234))
	second := Compose(items, flags, 5, seeded(1234))
	require.Equal(t, first, second)
}

func TestComposeRainyExample(t *testing.T) {
	top := newItem("T1", wardrobe.CategoryTop)
	bottom := newItem("B1", wardrobe.CategoryBottom)
	shoes := newItem("S1", wardrobe.CategoryShoes)
	jacket := newItem("RainJacket", wardrobe.CategoryOuterwear)
	coat := newItem("WoolCoat", wardrobe.CategoryOuterwear)

	outfits := Compose([]wardrobe.Item{top, bottom, shoes, jacket, coat}, Flags{Rainy: true}, 1, seeded(99))
	require.Len(t, outfits, 1)
	o := outfits[0]
	require.Equal(t, top.ID, o.Top.ID)
	require.Equal(t, bottom.ID, o.Bottom.ID)
	require.Equal(t, shoes.ID, o.Shoes.ID)
	require.NotNil(t, o.Outerwear)
	require.Equal(t, jacket.ID, o.Outerwear.ID)
	require.Equal(t, "Casual Outfit (Don't forget an umbrella!)", o.Label)
}

func TestComposeSamplesWithReplacement(t *testing.T) {
	items := []wardrobe.Item{
		newItem("T1", wardrobe.CategoryTop),
		newItem("B1", wardrobe.CategoryBottom),
		newItem("S1", wardrobe.CategoryShoes),
	}
	outfits := Compose(items, Flags{}, 3, seeded(8))
	require.Len(t, outfits, 3)
	for _, o := range outfits {
		require.Equal(t, items[0].ID, o.Top.ID)
	}
}

func sampleWardrobe() []wardrobe.Item {
	return []wardrobe.Item{
		newItem("white_tee.png", wardrobe.CategoryTop),
		newItem("striped_shirt.png", wardrobe.CategoryTop),
		newItem("jeans.png", wardrobe.CategoryBottom),
		newItem("chinos.png", wardrobe.CategoryBottom),
		newItem("sneakers.png", wardrobe.CategoryShoes),
		newItem("boots.png", wardrobe.CategoryShoes),
		newItem("denim_jacket.png", wardrobe.CategoryOuterwear),
		newItem("RainJacket.jpg", wardrobe.CategoryOuterwear),
		newItem("wool_coat.png", wardrobe.CategoryOuterwear),
		newItem("summer_dress.png", wardrobe.CategoryOnePiece),
	}
}

func newItem(filename string, category wardrobe.Category) wardrobe.Item {
	return wardrobe.Item{
		ID:       uuid.New(),
		Filename: filename,
		Category: category,
		Colors:   []string{"#000000"},
	}
}

func idsOf(items []wardrobe.Item, category wardrobe.Category) []uuid.UUID {
	var ids []uuid.UUID
	for _, item := range items {
		if item.Category == category {
			ids = append(ids, item.ID)
		}
	}
	return ids
}

func seeded(seed uint64) RandomSource {
	return rand.New(rand.NewPCG(seed, seed))
}

// scriptedRand replays fixed picks, wrapping each into range.
type scriptedRand struct {
	values []int
	pos    int
}

func (s *scriptedRand) IntN(n int) int {
	v := s.values[s.pos%len(s.values)]
	s.pos++
	return v % n
}
