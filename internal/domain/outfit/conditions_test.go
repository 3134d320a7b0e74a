package outfit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifyConditions(t *testing.T) {
	cases := []struct {
		name    string
		reading WeatherReading
		want    Flags
	}{
		{"hot and clear", WeatherReading{Temperature: 28, Description: "clear"}, Flags{Warm: true}},
		{"just above warm", WeatherReading{Temperature: 15.01, Description: "clouds"}, Flags{Warm: true}},
		{"warm boundary is not warm", WeatherReading{Temperature: 15, Description: "clouds"}, Flags{}},
		{"dead zone", WeatherReading{Temperature: 14.5, Description: "clouds"}, Flags{}},
		{"cold boundary is not cold", WeatherReading{Temperature: 14, Description: "clear"}, Flags{}},
		{"cold", WeatherReading{Temperature: 3, Description: "snow"}, Flags{Cold: true}},
		{"cold and rainy", WeatherReading{Temperature: 8, Description: "rain"}, Flags{Cold: true, Rainy: true}},
		{"rain substring", WeatherReading{Temperature: 20, Description: "light rain"}, Flags{Warm: true, Rainy: true}},
		{"rain case insensitive", WeatherReading{Temperature: 14.5, Description: "Rain Showers"}, Flags{Rainy: true}},
		{"drizzle is not rain", WeatherReading{Temperature: 20, Description: "drizzle"}, Flags{Warm: true}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, ClassifyConditions(tc.reading))
		})
	}
}

func TestClassifyConditionsNeverWarmAndCold(t *testing.T) {
	for temp := -30.0; temp <= 45; temp += 0.25 {
		flags := ClassifyConditions(WeatherReading{Temperature: temp})
		require.False(t, flags.Warm && flags.Cold, "temp %.2f", temp)
	}
}
