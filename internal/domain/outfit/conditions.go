package outfit

import "strings"

const (
	warmAbove = 15.0
	coldBelow = 14.0
)

// Flags summarize a weather reading for outfit decisions.
//
// Warm and Cold are never both true, but both are false between 14 and 15 °C inclusive.
type Flags struct {
	Warm  bool `json:"isWarm"`
	Cold  bool `json:"isCold"`
	Rainy bool `json:"isRainy"`
}

// ClassifyConditions derives climate flags from a reading.
func ClassifyConditions(reading WeatherReading) Flags {
	return Flags{
		Warm:  reading.Temperature > warmAbove,
		Cold:  reading.Temperature < coldBelow,
		Rainy: strings.Contains(strings.ToLower(reading.Description), "rain"),
	}
}
