package weather

// ConditionFromWMO maps a WMO weather interpretation code to a short label.
func ConditionFromWMO(code int) string {
	switch code {
	case 0:
		return "Clear Sky"
	case 1, 2, 3:
		return "Partly Cloudy"
	case 45, 48:
		return "Foggy"
	case 51, 53, 55:
		return "Drizzle"
	case 61, 63, 65:
		return "Rainy"
	case 71, 73, 75:
		return "Snow"
	case 80, 81, 82:
		return "Heavy Rain"
	case 95, 96, 99:
		return "Thunderstorm"
	default:
		return "Cloudy"
	}
}
