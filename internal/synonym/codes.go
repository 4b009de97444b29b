package synonym

import (
	"sort"
	"strings"
)

// countryCodes is the static fallback from folded country name to
// ISO 3166-1 alpha-3 code, consulted when the synonym table has no entry.
var countryCodes = map[string]string{
	"afghanistan": "AFG", "albania": "ALB", "algeria": "DZA", "andorra": "AND",
	"angola": "AGO", "antigua and barbuda": "ATG", "argentina": "ARG", "armenia": "ARM",
	"australia": "AUS", "austria": "AUT", "azerbaijan": "AZE", "bahamas": "BHS",
	"bahrain": "BHR", "bangladesh": "BGD", "barbados": "BRB", "belarus": "BLR",
	"belgium": "BEL", "belize": "BLZ", "benin": "BEN", "bhutan": "BTN",
	"bolivia": "BOL", "bosnia and herzegovina": "BIH", "botswana": "BWA", "brazil": "BRA",
	"brunei": "BRN", "bulgaria": "BGR", "burkina faso": "BFA", "burundi": "BDI",
	"cambodia": "KHM", "cameroon": "CMR", "canada": "CAN", "central african republic": "CAF",
	"chad": "TCD", "chile": "CHL", "colombia": "COL", "comoros": "COM",
	"costa rica": "CRI", "croatia": "HRV", "cuba": "CUB", "cyprus": "CYP",
	"denmark": "DNK", "djibouti": "DJI", "dominica": "DMA", "dominican republic": "DOM",
	"ecuador": "ECU", "egypt": "EGY", "el salvador": "SLV", "equatorial guinea": "GNQ",
	"eritrea": "ERI", "estonia": "EST", "ethiopia": "ETH", "fiji": "FJI",
	"finland": "FIN", "france": "FRA", "gabon": "GAB", "gambia": "GMB",
	"georgia": "GEO", "ghana": "GHA", "greece": "GRC", "grenada": "GRD",
	"guatemala": "GTM", "guinea": "GIN", "guinea bissau": "GNB", "guyana": "GUY",
	"haiti": "HTI", "honduras": "HND", "hungary": "HUN", "iceland": "ISL",
	"india": "IND", "indonesia": "IDN", "iraq": "IRQ", "ireland": "IRL",
	"israel": "ISR", "italy": "ITA", "jamaica": "JAM", "japan": "JPN",
	"jordan": "JOR", "kazakhstan": "KAZ", "kenya": "KEN", "kiribati": "KIR",
	"kosovo": "XKX", "kuwait": "KWT", "kyrgyzstan": "KGZ", "laos": "LAO",
	"latvia": "LVA", "lebanon": "LBN", "lesotho": "LSO", "liberia": "LBR",
	"libya": "LBY", "liechtenstein": "LIE", "lithuania": "LTU", "luxembourg": "LUX",
	"madagascar": "MDG", "malawi": "MWI", "malaysia": "MYS", "maldives": "MDV",
	"mali": "MLI", "malta": "MLT", "marshall islands": "MHL", "mauritania": "MRT",
	"mauritius": "MUS", "mexico": "MEX", "micronesia": "FSM", "moldova": "MDA",
	"monaco": "MCO", "mongolia": "MNG", "montenegro": "MNE", "morocco": "MAR",
	"mozambique": "MOZ", "namibia": "NAM", "nauru": "NRU", "nepal": "NPL",
	"new zealand": "NZL", "nicaragua": "NIC", "niger": "NER", "nigeria": "NGA",
	"norway": "NOR", "oman": "OMN", "pakistan": "PAK", "palau": "PLW",
	"panama": "PAN", "papua new guinea": "PNG", "paraguay": "PRY", "peru": "PER",
	"philippines": "PHL", "poland": "POL", "portugal": "PRT", "qatar": "QAT",
	"romania": "ROU", "rwanda": "RWA", "saint kitts and nevis": "KNA", "saint lucia": "LCA",
	"saint vincent and the grenadines": "VCT", "samoa": "WSM", "san marino": "SMR", "sao tome and principe": "STP",
	"senegal": "SEN", "serbia": "SRB", "seychelles": "SYC", "sierra leone": "SLE",
	"singapore": "SGP", "slovakia": "SVK", "slovenia": "SVN", "solomon islands": "SLB",
	"somalia": "SOM", "south africa": "ZAF", "south sudan": "SSD", "spain": "ESP",
	"sri lanka": "LKA", "sudan": "SDN", "suriname": "SUR", "sweden": "SWE",
	"switzerland": "CHE", "tajikistan": "TJK", "tanzania": "TZA", "thailand": "THA",
	"togo": "TGO", "tonga": "TON", "trinidad and tobago": "TTO", "tunisia": "TUN",
	"turkmenistan": "TKM", "tuvalu": "TUV", "uganda": "UGA", "ukraine": "UKR",
	"uruguay": "URY", "uzbekistan": "UZB", "vanuatu": "VUT", "venezuela": "VEN",
	"vietnam": "VNM", "yemen": "YEM", "zambia": "ZMB", "zimbabwe": "ZWE",

	// Countries that also appear in the synonym table keep a fallback entry
	"united states": "USA", "united kingdom": "GBR", "russia": "RUS", "china": "CHN",
	"taiwan": "TWN", "south korea": "KOR", "north korea": "PRK", "iran": "IRN",
	"syria": "SYR", "democratic republic of the congo": "COD", "republic of the congo": "COG",
	"ivory coast": "CIV", "czechia": "CZE", "myanmar": "MMR", "eswatini": "SWZ",
	"north macedonia": "MKD", "turkiye": "TUR", "netherlands": "NLD", "germany": "DEU",
	"united arab emirates": "ARE", "saudi arabia": "SAU", "vatican city": "VAT",
	"timor leste": "TLS", "cabo verde": "CPV", "palestine": "PSE", "greenland": "GRL",
	"western sahara": "ESH", "puerto rico": "PRI", "hong kong": "HKG", "macau": "MAC",
	"new caledonia": "NCL", "french guiana": "GUF", "faroe islands": "FRO",
}

// CountryCode returns the static code for a country name
func CountryCode(name string) (string, bool) {
	code, ok := countryCodes[stripArticle(Fold(name))]
	return code, ok
}

// IsKnownCode reports whether code appears in the static table
func IsKnownCode(code string) bool {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, c := range countryCodes {
		if c == code {
			return true
		}
	}
	return false
}

// KnownCodes returns every distinct code in the static table, sorted
func KnownCodes() []string {
	seen := make(map[string]bool, len(countryCodes))
	out := make([]string, 0, len(countryCodes))
	for _, c := range countryCodes {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	sort.Strings(out)
	return out
}

// NameForCode returns a display name for a code, or "" if unknown
func NameForCode(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	best := ""
	for name, c := range countryCodes {
		if c != code {
			continue
		}
		// Prefer the shortest name, then alphabetical, so output is stable
		if best == "" || len(name) < len(best) || (len(name) == len(best) && name < best) {
			best = name
		}
	}
	return best
}
