package weather

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdvice_TemperatureBands(t *testing.T) {
	hot := Advice(&Snapshot{Temperature: 30, Humidity: 50})
	assert.Contains(t, hot, "hot outside")

	cold := Advice(&Snapshot{Temperature: 3, Humidity: 50})
	assert.Contains(t, cold, "cold outside")

	mild := Advice(&Snapshot{Temperature: 18, Humidity: 50})
	assert.Contains(t, mild, "moderate")
}

func TestAdvice_Humidity(t *testing.T) {
	humid := Advice(&Snapshot{Temperature: 18, Humidity: 85})
	assert.Contains(t, humid, "Humidity is high")

	dry := Advice(&Snapshot{Temperature: 18, Humidity: 20})
	assert.Contains(t, dry, "Humidity is low")

	normal := Advice(&Snapshot{Temperature: 18, Humidity: 50})
	assert.NotContains(t, normal, "Humidity")
}

func TestAdvice_Conditions(t *testing.T) {
	storm := Advice(&Snapshot{Temperature: 18, Humidity: 50, Description: "Thunderstorm with heavy rain"})
	// Thunderstorm wins over plain rain.
	assert.Contains(t, storm, "thunderstorm is expected")
	assert.NotContains(t, storm, "Rain is expected")

	rain := Advice(&Snapshot{Temperature: 18, Humidity: 50, Description: "light rain"})
	assert.Contains(t, rain, "Rain is expected")

	snow := Advice(&Snapshot{Temperature: -2, Humidity: 50, Description: "Snow showers"})
	assert.Contains(t, snow, "Snow is expected")
}

func TestReport_IncludesConditionsAndAdvice(t *testing.T) {
	s := &Snapshot{
		City:        "Lisbon",
		Temperature: 27.3,
		FeelsLike:   29.1,
		Humidity:    65,
		Description: "clear sky",
		WindSpeed:   4.2,
	}

	report := Report(s)
	assert.Contains(t, report, "Weather in Lisbon:")
	assert.Contains(t, report, "27.3°C")
	assert.Contains(t, report, "feels like 29.1°C")
	assert.Contains(t, report, "Humidity: 65%")
	assert.Contains(t, report, "clear sky")
	assert.Contains(t, report, "Sleep tips:")
	assert.Contains(t, report, "hot outside")
}
