package weather

// Condition represents one of the fixed sky conditions a panel can show.
type Condition string

const (
	ConditionSunny        Condition = "Sunny"
	ConditionPartlyCloudy Condition = "Partly Cloudy"
	ConditionCloudy       Condition = "Cloudy"
	ConditionRainy        Condition = "Rainy"
	ConditionLightRain    Condition = "Light Rain"
	ConditionSnow         Condition = "Snow"
	ConditionFoggy        Condition = "Foggy"
)

// Conditions lists every condition in draw order. A reading picks one of
// these uniformly by index.
var Conditions = []Condition{
	ConditionSunny,
	ConditionPartlyCloudy,
	ConditionCloudy,
	ConditionRainy,
	ConditionLightRain,
	ConditionSnow,
	ConditionFoggy,
}

var conditionIcons = map[Condition]string{
	ConditionSunny:        "fa-sun",
	ConditionPartlyCloudy: "fa-cloud-sun",
	ConditionCloudy:       "fa-cloud",
	ConditionRainy:        "fa-cloud-rain",
	ConditionLightRain:    "fa-cloud-sun-rain",
	ConditionSnow:         "fa-snowflake",
	ConditionFoggy:        "fa-smog",
}

// Icon returns the icon tag paired with the condition, or an empty string
// for values outside the fixed set.
func (c Condition) Icon() string {
	return conditionIcons[c]
}

// Valid reports whether c is one of the fixed conditions.
func (c Condition) Valid() bool {
	_, ok := conditionIcons[c]
	return ok
}

// Location is a city together with the country the catalog resolved for it.
type Location struct {
	City    string `json:"city"`
	Country string `json:"country"`
}

// String renders the location the way the panel's location line shows it.
func (l Location) String() string {
	return l.City + ", " + l.Country
}

// Reading is one synthetic weather observation. Every field is drawn
// independently; there is no correlation between condition and temperature.
type Reading struct {
	Location     Location  `json:"location"`
	TemperatureC int       `json:"temperatureC"`
	Condition    Condition `json:"condition"`
	Icon         string    `json:"icon"`
	WindSpeedKmh int       `json:"windSpeedKmh"`
	HumidityPct  int       `json:"humidityPercent"`
	FeelsLikeC   int       `json:"feelsLikeC"`
	VisibilityKm int       `json:"visibilityKm"`
}
