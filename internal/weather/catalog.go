package weather

const (
	// FallbackCountry is shown for cities the catalog does not know.
	FallbackCountry = "Country"
)

// FallbackRange is the temperature range used for unknown cities.
var FallbackRange = TempRange{Min: 0, Max: 30}

// TempRange is an inclusive temperature range in degrees Celsius.
type TempRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Contains reports whether t lies within the range.
func (r TempRange) Contains(t int) bool {
	return t >= r.Min && t <= r.Max
}

type cityInfo struct {
	country string
	temps   TempRange
}

// Catalog maps known city names to their country and temperature range.
// Names are matched exactly.
type Catalog struct {
	cities map[string]cityInfo
}

// DefaultCatalog returns the built-in catalog of eight cities.
func DefaultCatalog() *Catalog {
	return &Catalog{
		cities: map[string]cityInfo{
			"London":   {country: "United Kingdom", temps: TempRange{Min: 5, Max: 25}},
			"New York": {country: "United States", temps: TempRange{Min: -5, Max: 35}},
			"Tokyo":    {country: "Japan", temps: TempRange{Min: 0, Max: 30}},
			"Paris":    {country: "France", temps: TempRange{Min: 0, Max: 28}},
			"Sydney":   {country: "Australia", temps: TempRange{Min: 10, Max: 40}},
			"Berlin":   {country: "Germany", temps: TempRange{Min: -10, Max: 30}},
			"Mumbai":   {country: "India", temps: TempRange{Min: 15, Max: 45}},
			"Toronto":  {country: "Canada", temps: TempRange{Min: -20, Max: 30}},
		},
	}
}

// Country returns the catalog country for city, or FallbackCountry.
func (c *Catalog) Country(city string) string {
	if info, ok := c.cities[city]; ok {
		return info.country
	}
	return FallbackCountry
}

// TempRange returns the catalog temperature range for city, or FallbackRange.
func (c *Catalog) TempRange(city string) TempRange {
	if info, ok := c.cities[city]; ok {
		return info.temps
	}
	return FallbackRange
}

// Locate resolves city into a Location.
func (c *Catalog) Locate(city string) Location {
	return Location{
		City:    city,
		Country: c.Country(city),
	}
}

// Cities returns the known city names. Order is unspecified.
func (c *Catalog) Cities() []string {
	names := make([]string, 0, len(c.cities))
	for name := range c.cities {
		names = append(names, name)
	}
	return names
}
