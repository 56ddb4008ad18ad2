package weather

// Bounds for the fields that do not depend on the city.
const (
	MinWindKmh       = 5
	MaxWindKmh       = 25
	MinHumidityPct   = 30
	MaxHumidityPct   = 90
	MinFeelsLikeDrop = 1
	MaxFeelsLikeDrop = 3
	MinVisibilityKm  = 5
	MaxVisibilityKm  = 20
)

// GenerateReading draws a synthetic reading for city. The temperature comes
// from the city's catalog range; every other field is an independent draw.
func GenerateReading(catalog *Catalog, rnd Random, city string) Reading {
	temps := catalog.TempRange(city)
	temp := rnd.UniformInt(temps.Min, temps.Max)
	cond := Conditions[rnd.UniformInt(0, len(Conditions)-1)]

	return Reading{
		Location:     catalog.Locate(city),
		TemperatureC: temp,
		Condition:    cond,
		Icon:         cond.Icon(),
		WindSpeedKmh: rnd.UniformInt(MinWindKmh, MaxWindKmh),
		HumidityPct:  rnd.UniformInt(MinHumidityPct, MaxHumidityPct),
		FeelsLikeC:   temp - rnd.UniformInt(MinFeelsLikeDrop, MaxFeelsLikeDrop),
		VisibilityKm: rnd.UniformInt(MinVisibilityKm, MaxVisibilityKm),
	}
}
