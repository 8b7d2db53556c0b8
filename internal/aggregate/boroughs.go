package aggregate

// BoroughFor maps a community school district number to its borough.
// Returns "" for districts outside [1,32].
func BoroughFor(district int) string {
	switch {
	case district >= 1 && district <= 6:
		return "Manhattan"
	case district >= 7 && district <= 12:
		return "Bronx"
	case (district >= 13 && district <= 23) || district == 32:
		return "Brooklyn"
	case district >= 24 && district <= 30:
		return "Queens"
	case district == 31:
		return "Staten Island"
	default:
		return ""
	}
}

// neighborhoods lists the areas served by each district, indexed by
// district number minus one.
var neighborhoods = [32]string{
	"East Village, Lower East Side",
	"Financial District, Tribeca, West Village, Clinton, Midtown, Gramercy, Upper East Side",
	"Lincoln Square, Upper West Side",
	"East Harlem, Randall's Island",
	"Central Harlem, Morningside Heights",
	"Inwood, Washington Heights",
	"Mott Haven, Port Morris",
	"Country Club, Edgewater Park, Soundview, Hunts Point",
	"Morris Heights, Mount Eden",
	"Riverdale, Bedford Park, Norwood",
	"Wakefield, Co-op City, Pelham Parkway",
	"East Tremont, Claremont Village",
	"Brooklyn Heights, Fort Greene, Clinton Hill",
	"Greenpoint, Williamsburg",
	"Sunset Park, Cobble Hill",
	"Bedford Stuyvesant, Weeksville",
	"Prospect Park, Wingate",
	"Canarsie, East Flatbush",
	"Cypress Hills, East New York, Starrett City",
	"Bay Ridge, Fort Hamilton, Dyker Heights",
	"Coney Island, Sheepshead Bay, Gravesend, Ocean Parkway",
	"Marine Park, Georgetown, Flatlands",
	"Brownsville, Ocean Hill",
	"Glendale, Ridgewood, Maspeth, Jackson Heights, Sunnyside",
	"College Point, Whitestone, Hillcrest",
	"Floral Park, Little Neck, Bayside, Fresh Meadows",
	"Richmond Hill, Woodhaven, Howard Beach, South Ozone Park",
	"Rego Park, Forest Hills, Kew Gardens",
	"Rosedale, Saint Albans, Cambria Heights, Queens Village",
	"Hunters Point, Long Island City, Astoria, Steinway",
	"Staten Island",
	"Bushwick",
}

// NeighborhoodsFor returns the neighborhoods served by a district, or ""
// for districts outside [1,32].
func NeighborhoodsFor(district int) string {
	if district < 1 || district > 32 {
		return ""
	}
	return neighborhoods[district-1]
}
