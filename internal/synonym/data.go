package synonym

import "github.com/ppiankov/geolens/internal/model"

// EUMembers lists the member states of the European Union
var EUMembers = []string{
	"AUT", "BEL", "BGR", "HRV", "CYP", "CZE", "DNK", "EST", "FIN", "FRA",
	"DEU", "GRC", "HUN", "IRL", "ITA", "LVA", "LTU", "LUX", "MLT", "NLD",
	"POL", "PRT", "ROU", "SVK", "SVN", "ESP", "SWE",
}

// Supranational maps two-letter bloc codes to their member codes.
// Blocs are never renderable as a single boundary unit.
var Supranational = map[string][]string{
	"EU": EUMembers,
}

var builtinEntries = []model.SynonymEntry{
	// Common alternate names for countries
	{Canonical: "United States", Entities: []string{"USA"}, Class: model.ClassCountry,
		Aliases: []string{"USA", "US", "U.S.", "U.S.A.", "United States of America", "America", "Washington DC"}},
	{Canonical: "United Kingdom", Entities: []string{"GBR"}, Class: model.ClassCountry,
		Aliases: []string{"UK", "U.K.", "Britain", "Great Britain", "Royaume-Uni"}},
	{Canonical: "Russia", Entities: []string{"RUS"}, Class: model.ClassCountry,
		Aliases: []string{"Russian Federation", "Russie", "Moscow government"}},
	{Canonical: "China", Entities: []string{"CHN"}, Class: model.ClassCountry,
		Aliases: []string{"People's Republic of China", "PRC", "Chine", "Mainland China"}},
	{Canonical: "Taiwan", Entities: []string{"TWN"}, Class: model.ClassCountry,
		Aliases: []string{"Republic of China", "Chinese Taipei", "Formosa"}},
	{Canonical: "South Korea", Entities: []string{"KOR"}, Class: model.ClassCountry,
		Aliases: []string{"Republic of Korea", "ROK", "Corée du Sud"}},
	{Canonical: "North Korea", Entities: []string{"PRK"}, Class: model.ClassCountry,
		Aliases: []string{"DPRK", "Democratic People's Republic of Korea", "Corée du Nord"}},
	{Canonical: "Iran", Entities: []string{"IRN"}, Class: model.ClassCountry,
		Aliases: []string{"Islamic Republic of Iran", "Persia"}},
	{Canonical: "Syria", Entities: []string{"SYR"}, Class: model.ClassCountry,
		Aliases: []string{"Syrian Arab Republic", "Syrie"}},
	{Canonical: "Democratic Republic of the Congo", Entities: []string{"COD"}, Class: model.ClassCountry,
		Aliases: []string{"DRC", "DR Congo", "Congo-Kinshasa", "RDC"}},
	{Canonical: "Republic of the Congo", Entities: []string{"COG"}, Class: model.ClassCountry,
		Aliases: []string{"Congo-Brazzaville", "Congo Republic"}},
	{Canonical: "Ivory Coast", Entities: []string{"CIV"}, Class: model.ClassCountry,
		Aliases: []string{"Côte d'Ivoire", "Cote d'Ivoire"}},
	{Canonical: "Czechia", Entities: []string{"CZE"}, Class: model.ClassCountry,
		Aliases: []string{"Czech Republic", "République tchèque"}},
	{Canonical: "Myanmar", Entities: []string{"MMR"}, Class: model.ClassCountry,
		Aliases: []string{"Burma", "Birmanie"}},
	{Canonical: "Eswatini", Entities: []string{"SWZ"}, Class: model.ClassCountry,
		Aliases: []string{"Swaziland"}},
	{Canonical: "North Macedonia", Entities: []string{"MKD"}, Class: model.ClassCountry,
		Aliases: []string{"Macedonia", "FYROM"}},
	{Canonical: "Türkiye", Entities: []string{"TUR"}, Class: model.ClassCountry,
		Aliases: []string{"Turkey", "Turquie"}},
	{Canonical: "Netherlands", Entities: []string{"NLD"}, Class: model.ClassCountry,
		Aliases: []string{"Holland", "Pays-Bas"}},
	{Canonical: "Germany", Entities: []string{"DEU"}, Class: model.ClassCountry,
		Aliases: []string{"Allemagne", "Deutschland", "Federal Republic of Germany"}},
	{Canonical: "United Arab Emirates", Entities: []string{"ARE"}, Class: model.ClassCountry,
		Aliases: []string{"UAE", "Emirates", "Émirats arabes unis"}},
	{Canonical: "Saudi Arabia", Entities: []string{"SAU"}, Class: model.ClassCountry,
		Aliases: []string{"KSA", "Arabie saoudite"}},
	{Canonical: "Vatican City", Entities: []string{"VAT"}, Class: model.ClassCountry,
		Aliases: []string{"Holy See", "Vatican"}},
	{Canonical: "Timor-Leste", Entities: []string{"TLS"}, Class: model.ClassCountry,
		Aliases: []string{"East Timor"}},
	{Canonical: "Cabo Verde", Entities: []string{"CPV"}, Class: model.ClassCountry,
		Aliases: []string{"Cape Verde"}},
	{Canonical: "Palestine", Entities: []string{"PSE"}, Class: model.ClassCountry,
		Aliases: []string{"Palestinian Territories", "State of Palestine", "Occupied Palestinian Territories"}},

	// Sub-national areas that key onto their country boundary
	{Canonical: "Gaza", Entities: []string{"PSE"}, Class: model.ClassRegion,
		Aliases: []string{"Gaza Strip", "Bande de Gaza"}},
	{Canonical: "West Bank", Entities: []string{"PSE"}, Class: model.ClassRegion,
		Aliases: []string{"Cisjordanie", "Judea and Samaria"}},
	{Canonical: "Crimea", Entities: []string{"UKR"}, Class: model.ClassRegion,
		Aliases: []string{"Crimean Peninsula", "Crimée"}},
	{Canonical: "Donbas", Entities: []string{"UKR"}, Class: model.ClassRegion,
		Aliases: []string{"Donbass", "Donetsk", "Luhansk"}},
	{Canonical: "Scotland", Entities: []string{"GBR"}, Class: model.ClassRegion,
		Aliases: []string{"Écosse"}},
	{Canonical: "Catalonia", Entities: []string{"ESP"}, Class: model.ClassRegion,
		Aliases: []string{"Catalunya", "Catalogne"}},
	{Canonical: "Xinjiang", Entities: []string{"CHN"}, Class: model.ClassRegion,
		Aliases: []string{"East Turkestan"}},
	{Canonical: "Tibet", Entities: []string{"CHN"}, Class: model.ClassRegion},
	{Canonical: "Greenland", Entities: []string{"GRL"}, Class: model.ClassRegion,
		Aliases: []string{"Groenland", "Kalaallit Nunaat"}},

	// Names that denote several units at once
	{Canonical: "Kashmir", Entities: []string{"IND", "PAK"}, Class: model.ClassRegion,
		Aliases: []string{"Jammu and Kashmir", "Cachemire"}},
	{Canonical: "Western Sahara", Entities: []string{"ESH", "MAR"}, Class: model.ClassRegion,
		Aliases: []string{"Sahara occidental"}},
	{Canonical: "Korean Peninsula", Entities: []string{"KOR", "PRK"}, Class: model.ClassRegion,
		Aliases: []string{"the Koreas", "Two Koreas"}},
	{Canonical: "Cyprus Dispute", Entities: []string{"CYP", "TUR"}, Class: model.ClassRegion,
		Aliases: []string{"Northern Cyprus", "TRNC"}},
	{Canonical: "Kurdistan", Entities: []string{"IRQ", "TUR", "SYR", "IRN"}, Class: model.ClassRegion,
		Aliases: []string{"Kurdish region", "Kurdish areas"}},
	{Canonical: "Balkans", Entities: []string{"SRB", "BIH", "HRV", "MNE", "MKD", "ALB", "XKX"}, Class: model.ClassRegion,
		Aliases: []string{"Western Balkans", "Balkan states"}},
	{Canonical: "Baltic States", Entities: []string{"EST", "LVA", "LTU"}, Class: model.ClassRegion,
		Aliases: []string{"Baltics", "pays baltes"}},
	{Canonical: "Sahel", Entities: []string{"MLI", "BFA", "NER", "TCD", "MRT"}, Class: model.ClassRegion,
		Aliases: []string{"Sahel region"}},

	// Supranational blocs resolve to a two-letter code the boundary index rejects
	{Canonical: "European Union", Entities: []string{"EU"}, Class: model.ClassRegion,
		Aliases: []string{"EU", "E.U.", "Union européenne", "UE", "Brussels bloc"}},
}
