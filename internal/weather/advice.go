package weather

import (
	"fmt"
	"strings"
)

// Advice builds rule-based sleep tips from a weather snapshot.
func Advice(s *Snapshot) string {
	var tips []string

	switch {
	case s.Temperature > 25:
		tips = append(tips, "It's hot outside. Air out your bedroom or use air conditioning before sleep.")
	case s.Temperature < 10:
		tips = append(tips, "It's cold outside. Make sure your bedroom is warm enough and use a warm blanket.")
	default:
		tips = append(tips, "The temperature is moderate. Keep your bedroom at a comfortable level for sleeping.")
	}

	if s.Humidity > 70 {
		tips = append(tips, "Humidity is high, which can make breathing harder. Ventilate the room or use a dehumidifier.")
	} else if s.Humidity < 30 {
		tips = append(tips, "Humidity is low, which can dry out your throat. Consider a humidifier.")
	}

	desc := strings.ToLower(s.Description)
	switch {
	case strings.Contains(desc, "thunderstorm"):
		tips = append(tips, "A thunderstorm is expected. Close the windows to keep the noise out.")
	case strings.Contains(desc, "rain"):
		tips = append(tips, "Rain is expected. Check that your windows are closed to keep moisture out.")
	case strings.Contains(desc, "snow"):
		tips = append(tips, "Snow is expected. Make sure the room stays warm and keep an extra blanket nearby.")
	}

	return strings.Join(tips, "\n")
}

// Report composes the full user-facing weather message: conditions
// followed by the advice.
func Report(s *Snapshot) string {
	return fmt.Sprintf(
		"Weather in %s:\nTemperature: %.1f°C (feels like %.1f°C)\nHumidity: %d%%\nConditions: %s\nWind speed: %.1f m/s\n\nSleep tips:\n%s",
		s.City, s.Temperature, s.FeelsLike, s.Humidity, s.Description, s.WindSpeed, Advice(s))
}
