package eligibility

import "strings"

// EuropeanCountries is the in-scope country set, including the common
// alternate spellings the form data contains.
var EuropeanCountries = []string{
	"Albania", "Andorra", "Armenia", "Austria", "Azerbaijan", "Belarus",
	"Belgium", "Bosnia and Herzegovina", "Bulgaria", "Croatia", "Cyprus",
	"Czech Republic", "Czechia", "Denmark", "Estonia", "Finland", "France",
	"Georgia", "Germany", "Greece", "Hungary", "Iceland", "Ireland", "Italy",
	"Kazakhstan", "Kosovo", "Latvia", "Liechtenstein", "Lithuania", "Luxembourg",
	"Malta", "Moldova", "Monaco", "Montenegro", "Netherlands", "North Macedonia",
	"Norway", "Poland", "Portugal", "Romania", "Russia", "San Marino", "Serbia",
	"Slovakia", "Slovak Republic", "Slovenia", "Spain", "Sweden", "Switzerland",
	"Turkey", "Ukraine", "United Kingdom", "UK", "Vatican City",
}

// cityToCountry maps well-known European cities to their country, expanding
// what a bare location string can match.
var cityToCountry = map[string]string{
	"paris": "France", "lyon": "France", "marseille": "France", "toulouse": "France",
	"bordeaux": "France", "lille": "France", "nice": "France", "nantes": "France",
	"strasbourg": "France", "rennes": "France", "grenoble": "France", "montpellier": "France",
	"london": "United Kingdom", "manchester": "United Kingdom", "birmingham": "United Kingdom",
	"edinburgh": "United Kingdom", "glasgow": "United Kingdom", "bristol": "United Kingdom",
	"cambridge": "United Kingdom", "oxford": "United Kingdom", "leeds": "United Kingdom",
	"berlin": "Germany", "munich": "Germany", "hamburg": "Germany", "frankfurt": "Germany",
	"cologne": "Germany", "düsseldorf": "Germany", "dusseldorf": "Germany",
	"stuttgart": "Germany", "dresden": "Germany", "leipzig": "Germany",
	"amsterdam": "Netherlands", "rotterdam": "Netherlands", "hague": "Netherlands",
	"madrid": "Spain", "barcelona": "Spain", "valencia": "Spain", "seville": "Spain",
	"bilbao": "Spain", "zaragoza": "Spain",
	"rome": "Italy", "milan": "Italy", "naples": "Italy", "turin": "Italy",
	"florence": "Italy", "bologna": "Italy", "venice": "Italy",
	"zurich": "Switzerland", "geneva": "Switzerland", "bern": "Switzerland",
	"lausanne": "Switzerland", "basel": "Switzerland",
	"stockholm": "Sweden", "gothenburg": "Sweden", "malmo": "Sweden",
	"oslo": "Norway", "bergen": "Norway",
	"copenhagen": "Denmark", "aarhus": "Denmark",
	"helsinki": "Finland", "tampere": "Finland",
	"brussels": "Belgium", "antwerp": "Belgium", "ghent": "Belgium",
	"vienna": "Austria", "graz": "Austria", "salzburg": "Austria",
	"warsaw": "Poland", "krakow": "Poland", "wroclaw": "Poland",
	"prague": "Czech Republic", "brno": "Czech Republic",
	"budapest": "Hungary",
	"bucharest": "Romania", "cluj": "Romania",
	"athens": "Greece", "thessaloniki": "Greece",
	"lisbon": "Portugal", "porto": "Portugal",
	"dublin": "Ireland", "cork": "Ireland",
	"kiev": "Ukraine", "kyiv": "Ukraine",
	"moscow": "Russia", "saint petersburg": "Russia",
	"istanbul": "Turkey", "ankara": "Turkey",
	"reykjavik": "Iceland",
	"luxembourg": "Luxembourg",
	"valletta": "Malta",
	"nicosia": "Cyprus",
	"tallinn": "Estonia", "riga": "Latvia", "vilnius": "Lithuania",
	"bratislava": "Slovakia", "ljubljana": "Slovenia", "zagreb": "Croatia",
	"belgrade": "Serbia", "sarajevo": "Bosnia and Herzegovina",
	"sofia": "Bulgaria", "skopje": "North Macedonia", "tirana": "Albania",
	"chisinau": "Moldova", "minsk": "Belarus", "tbilisi": "Georgia",
	"yerevan": "Armenia", "baku": "Azerbaijan",
}

// RegionForCountry classifies a country name into the region labels used by
// the world ranking table.
func RegionForCountry(country string) string {
	country = strings.TrimSpace(country)
	if country == "" {
		return "Unknown"
	}
	if country == "UK" {
		country = "United Kingdom"
	}
	if country == "USA" || country == "US" {
		return "Outside Europe"
	}

	for _, c := range EuropeanCountries {
		if strings.EqualFold(country, c) {
			return "Europe"
		}
	}
	return "Outside Europe"
}
