package resolve

// builtinCities holds capitals and major cities. Coordinates are rounded to
// two decimals, which is plenty for a marker.
var builtinCities = []City{
	{Name: "Kabul", Country: "AFG", Lat: 34.53, Lon: 69.17, Population: 4600000},
	{Name: "Tirana", Country: "ALB", Lat: 41.33, Lon: 19.82, Population: 560000},
	{Name: "Algiers", Country: "DZA", Lat: 36.75, Lon: 3.04, Population: 3400000, Aliases: []string{"Alger"}},
	{Name: "Luanda", Country: "AGO", Lat: -8.84, Lon: 13.23, Population: 8300000},
	{Name: "Buenos Aires", Country: "ARG", Lat: -34.60, Lon: -58.38, Population: 15000000},
	{Name: "Yerevan", Country: "ARM", Lat: 40.18, Lon: 44.51, Population: 1090000, Aliases: []string{"Erevan"}},
	{Name: "Canberra", Country: "AUS", Lat: -35.28, Lon: 149.13, Population: 460000},
	{Name: "Sydney", Country: "AUS", Lat: -33.87, Lon: 151.21, Population: 5300000},
	{Name: "Vienna", Country: "AUT", Lat: 48.21, Lon: 16.37, Population: 1900000, Aliases: []string{"Wien", "Vienne"}},
	{Name: "Baku", Country: "AZE", Lat: 40.41, Lon: 49.87, Population: 2300000, Aliases: []string{"Bakou"}},
	{Name: "Dhaka", Country: "BGD", Lat: 23.81, Lon: 90.41, Population: 22000000, Aliases: []string{"Dacca"}},
	{Name: "Minsk", Country: "BLR", Lat: 53.90, Lon: 27.56, Population: 2000000},
	{Name: "Brussels", Country: "BEL", Lat: 50.85, Lon: 4.35, Population: 1200000, Aliases: []string{"Bruxelles", "Brussel"}},
	{Name: "La Paz", Country: "BOL", Lat: -16.50, Lon: -68.15, Population: 1900000},
	{Name: "Sarajevo", Country: "BIH", Lat: 43.86, Lon: 18.41, Population: 275000},
	{Name: "Brasilia", Country: "BRA", Lat: -15.79, Lon: -47.88, Population: 4800000, Aliases: []string{"Brasília"}},
	{Name: "Sao Paulo", Country: "BRA", Lat: -23.55, Lon: -46.63, Population: 22000000, Aliases: []string{"São Paulo"}},
	{Name: "Rio de Janeiro", Country: "BRA", Lat: -22.91, Lon: -43.17, Population: 13500000, Aliases: []string{"Rio"}},
	{Name: "Sofia", Country: "BGR", Lat: 42.70, Lon: 23.32, Population: 1240000, Aliases: []string{"Sofiya"}},
	{Name: "Phnom Penh", Country: "KHM", Lat: 11.56, Lon: 104.92, Population: 2200000},
	{Name: "Ottawa", Country: "CAN", Lat: 45.42, Lon: -75.70, Population: 1400000},
	{Name: "Toronto", Country: "CAN", Lat: 43.65, Lon: -79.38, Population: 6200000},
	{Name: "Montreal", Country: "CAN", Lat: 45.50, Lon: -73.57, Population: 4300000, Aliases: []string{"Montréal"}},
	{Name: "Santiago", Country: "CHL", Lat: -33.45, Lon: -70.67, Population: 6900000},
	{Name: "Beijing", Country: "CHN", Lat: 39.90, Lon: 116.41, Population: 21500000, Aliases: []string{"Pékin", "Peking"}},
	{Name: "Shanghai", Country: "CHN", Lat: 31.23, Lon: 121.47, Population: 24800000},
	{Name: "Hong Kong", Country: "HKG", Lat: 22.32, Lon: 114.17, Population: 7400000},
	{Name: "Bogota", Country: "COL", Lat: 4.71, Lon: -74.07, Population: 11000000, Aliases: []string{"Bogotá"}},
	{Name: "Kinshasa", Country: "COD", Lat: -4.44, Lon: 15.27, Population: 16000000},
	{Name: "Zagreb", Country: "HRV", Lat: 45.81, Lon: 15.98, Population: 770000},
	{Name: "Havana", Country: "CUB", Lat: 23.11, Lon: -82.37, Population: 2100000, Aliases: []string{"La Habana", "La Havane"}},
	{Name: "Nicosia", Country: "CYP", Lat: 35.17, Lon: 33.36, Population: 330000},
	{Name: "Prague", Country: "CZE", Lat: 50.08, Lon: 14.44, Population: 1300000, Aliases: []string{"Praha"}},
	{Name: "Copenhagen", Country: "DNK", Lat: 55.68, Lon: 12.57, Population: 1350000, Aliases: []string{"Copenhague", "København"}},
	{Name: "Cairo", Country: "EGY", Lat: 30.04, Lon: 31.24, Population: 21000000, Aliases: []string{"Le Caire"}},
	{Name: "Addis Ababa", Country: "ETH", Lat: 9.03, Lon: 38.74, Population: 5000000, Aliases: []string{"Addis-Abeba"}},
	{Name: "Helsinki", Country: "FIN", Lat: 60.17, Lon: 24.94, Population: 1300000},
	{Name: "Paris", Country: "FRA", Lat: 48.86, Lon: 2.35, Population: 11000000},
	{Name: "Marseille", Country: "FRA", Lat: 43.30, Lon: 5.37, Population: 1600000, Aliases: []string{"Marseilles"}},
	{Name: "Lyon", Country: "FRA", Lat: 45.76, Lon: 4.84, Population: 1700000, Aliases: []string{"Lyons"}},
	{Name: "Paris", Country: "USA", Lat: 33.66, Lon: -95.56, Population: 25000},
	{Name: "Tbilisi", Country: "GEO", Lat: 41.72, Lon: 44.79, Population: 1200000, Aliases: []string{"Tbilissi"}},
	{Name: "Berlin", Country: "DEU", Lat: 52.52, Lon: 13.40, Population: 3700000},
	{Name: "Munich", Country: "DEU", Lat: 48.14, Lon: 11.58, Population: 1500000, Aliases: []string{"München"}},
	{Name: "Accra", Country: "GHA", Lat: 5.60, Lon: -0.19, Population: 2500000},
	{Name: "Athens", Country: "GRC", Lat: 37.98, Lon: 23.73, Population: 3150000, Aliases: []string{"Athènes", "Athina"}},
	{Name: "Budapest", Country: "HUN", Lat: 47.50, Lon: 19.04, Population: 1750000},
	{Name: "New Delhi", Country: "IND", Lat: 28.61, Lon: 77.21, Population: 32000000, Aliases: []string{"Delhi"}},
	{Name: "Mumbai", Country: "IND", Lat: 19.08, Lon: 72.88, Population: 21000000, Aliases: []string{"Bombay"}},
	{Name: "Jakarta", Country: "IDN", Lat: -6.21, Lon: 106.85, Population: 11000000, Aliases: []string{"Djakarta"}},
	{Name: "Tehran", Country: "IRN", Lat: 35.69, Lon: 51.39, Population: 9000000, Aliases: []string{"Téhéran", "Teheran"}},
	{Name: "Baghdad", Country: "IRQ", Lat: 33.32, Lon: 44.36, Population: 7500000, Aliases: []string{"Bagdad"}},
	{Name: "Dublin", Country: "IRL", Lat: 53.35, Lon: -6.26, Population: 1400000},
	{Name: "Jerusalem", Country: "ISR", Lat: 31.77, Lon: 35.21, Population: 970000, Aliases: []string{"Jérusalem"}},
	{Name: "Tel Aviv", Country: "ISR", Lat: 32.09, Lon: 34.78, Population: 4400000, Aliases: []string{"Tel Aviv-Yafo"}},
	{Name: "Rome", Country: "ITA", Lat: 41.90, Lon: 12.50, Population: 4300000, Aliases: []string{"Roma"}},
	{Name: "Milan", Country: "ITA", Lat: 45.46, Lon: 9.19, Population: 3100000, Aliases: []string{"Milano"}},
	{Name: "Tokyo", Country: "JPN", Lat: 35.68, Lon: 139.69, Population: 37000000},
	{Name: "Amman", Country: "JOR", Lat: 31.95, Lon: 35.93, Population: 4000000},
	{Name: "Astana", Country: "KAZ", Lat: 51.17, Lon: 71.45, Population: 1350000, Aliases: []string{"Nur-Sultan"}},
	{Name: "Nairobi", Country: "KEN", Lat: -1.29, Lon: 36.82, Population: 4700000},
	{Name: "Pristina", Country: "XKX", Lat: 42.66, Lon: 21.17, Population: 220000, Aliases: []string{"Prishtina"}},
	{Name: "Beirut", Country: "LBN", Lat: 33.89, Lon: 35.50, Population: 2400000, Aliases: []string{"Beyrouth"}},
	{Name: "Tripoli", Country: "LBY", Lat: 32.89, Lon: 13.19, Population: 1200000},
	{Name: "Vilnius", Country: "LTU", Lat: 54.69, Lon: 25.28, Population: 590000},
	{Name: "Kuala Lumpur", Country: "MYS", Lat: 3.14, Lon: 101.69, Population: 8000000},
	{Name: "Bamako", Country: "MLI", Lat: 12.64, Lon: -8.00, Population: 2800000},
	{Name: "Mexico City", Country: "MEX", Lat: 19.43, Lon: -99.13, Population: 21800000, Aliases: []string{"Ciudad de México", "Mexico"}},
	{Name: "Chisinau", Country: "MDA", Lat: 47.01, Lon: 28.86, Population: 640000, Aliases: []string{"Chișinău", "Kishinev"}},
	{Name: "Rabat", Country: "MAR", Lat: 34.02, Lon: -6.84, Population: 580000},
	{Name: "Naypyidaw", Country: "MMR", Lat: 19.76, Lon: 96.08, Population: 925000, Aliases: []string{"Nay Pyi Taw"}},
	{Name: "Yangon", Country: "MMR", Lat: 16.87, Lon: 96.20, Population: 5600000, Aliases: []string{"Rangoon"}},
	{Name: "Kathmandu", Country: "NPL", Lat: 27.72, Lon: 85.32, Population: 1500000},
	{Name: "Amsterdam", Country: "NLD", Lat: 52.37, Lon: 4.90, Population: 1150000},
	{Name: "The Hague", Country: "NLD", Lat: 52.08, Lon: 4.30, Population: 550000, Aliases: []string{"La Haye", "Den Haag"}},
	{Name: "Wellington", Country: "NZL", Lat: -41.29, Lon: 174.78, Population: 215000},
	{Name: "Niamey", Country: "NER", Lat: 13.51, Lon: 2.11, Population: 1300000},
	{Name: "Abuja", Country: "NGA", Lat: 9.08, Lon: 7.40, Population: 3600000},
	{Name: "Lagos", Country: "NGA", Lat: 6.52, Lon: 3.38, Population: 15000000},
	{Name: "Pyongyang", Country: "PRK", Lat: 39.04, Lon: 125.76, Population: 3000000},
	{Name: "Oslo", Country: "NOR", Lat: 59.91, Lon: 10.75, Population: 700000},
	{Name: "Islamabad", Country: "PAK", Lat: 33.68, Lon: 73.05, Population: 1200000},
	{Name: "Karachi", Country: "PAK", Lat: 24.86, Lon: 67.01, Population: 16800000},
	{Name: "Ramallah", Country: "PSE", Lat: 31.90, Lon: 35.20, Population: 39000},
	{Name: "Gaza", Country: "PSE", Lat: 31.50, Lon: 34.47, Population: 590000, Aliases: []string{"Gaza City"}},
	{Name: "Lima", Country: "PER", Lat: -12.05, Lon: -77.04, Population: 10700000},
	{Name: "Manila", Country: "PHL", Lat: 14.60, Lon: 120.98, Population: 14000000},
	{Name: "Warsaw", Country: "POL", Lat: 52.23, Lon: 21.01, Population: 1800000, Aliases: []string{"Varsovie", "Warszawa"}},
	{Name: "Lisbon", Country: "PRT", Lat: 38.72, Lon: -9.14, Population: 2900000, Aliases: []string{"Lisbonne", "Lisboa"}},
	{Name: "Doha", Country: "QAT", Lat: 25.29, Lon: 51.53, Population: 1200000},
	{Name: "Bucharest", Country: "ROU", Lat: 44.43, Lon: 26.10, Population: 1800000, Aliases: []string{"Bucarest", "București"}},
	{Name: "Moscow", Country: "RUS", Lat: 55.76, Lon: 37.62, Population: 12600000, Aliases: []string{"Moscou", "Moskva"}},
	{Name: "Saint Petersburg", Country: "RUS", Lat: 59.93, Lon: 30.36, Population: 5400000, Aliases: []string{"St. Petersburg", "Saint-Pétersbourg"}},
	{Name: "Kigali", Country: "RWA", Lat: -1.94, Lon: 30.06, Population: 1200000},
	{Name: "Riyadh", Country: "SAU", Lat: 24.71, Lon: 46.68, Population: 7600000, Aliases: []string{"Riyad"}},
	{Name: "Dakar", Country: "SEN", Lat: 14.72, Lon: -17.47, Population: 3100000},
	{Name: "Belgrade", Country: "SRB", Lat: 44.79, Lon: 20.45, Population: 1400000, Aliases: []string{"Beograd"}},
	{Name: "Singapore", Country: "SGP", Lat: 1.35, Lon: 103.82, Population: 5900000, Aliases: []string{"Singapour"}},
	{Name: "Mogadishu", Country: "SOM", Lat: 2.05, Lon: 45.32, Population: 2600000, Aliases: []string{"Mogadiscio"}},
	{Name: "Pretoria", Country: "ZAF", Lat: -25.75, Lon: 28.19, Population: 2500000},
	{Name: "Johannesburg", Country: "ZAF", Lat: -26.20, Lon: 28.05, Population: 6000000},
	{Name: "Seoul", Country: "KOR", Lat: 37.57, Lon: 126.98, Population: 9700000, Aliases: []string{"Séoul"}},
	{Name: "Juba", Country: "SSD", Lat: 4.85, Lon: 31.58, Population: 525000},
	{Name: "Madrid", Country: "ESP", Lat: 40.42, Lon: -3.70, Population: 6700000},
	{Name: "Barcelona", Country: "ESP", Lat: 41.39, Lon: 2.17, Population: 5600000, Aliases: []string{"Barcelone"}},
	{Name: "Khartoum", Country: "SDN", Lat: 15.50, Lon: 32.56, Population: 6000000},
	{Name: "Stockholm", Country: "SWE", Lat: 59.33, Lon: 18.07, Population: 1650000},
	{Name: "Geneva", Country: "CHE", Lat: 46.20, Lon: 6.14, Population: 200000, Aliases: []string{"Genève", "Genf"}},
	{Name: "Bern", Country: "CHE", Lat: 46.95, Lon: 7.45, Population: 135000, Aliases: []string{"Berne"}},
	{Name: "Zurich", Country: "CHE", Lat: 47.38, Lon: 8.54, Population: 420000, Aliases: []string{"Zürich"}},
	{Name: "Damascus", Country: "SYR", Lat: 33.51, Lon: 36.29, Population: 2500000, Aliases: []string{"Damas"}},
	{Name: "Aleppo", Country: "SYR", Lat: 36.20, Lon: 37.13, Population: 2100000, Aliases: []string{"Alep"}},
	{Name: "Taipei", Country: "TWN", Lat: 25.03, Lon: 121.57, Population: 2600000},
	{Name: "Dar es Salaam", Country: "TZA", Lat: -6.79, Lon: 39.21, Population: 7000000},
	{Name: "Bangkok", Country: "THA", Lat: 13.76, Lon: 100.50, Population: 10700000},
	{Name: "Tunis", Country: "TUN", Lat: 36.81, Lon: 10.18, Population: 700000},
	{Name: "Ankara", Country: "TUR", Lat: 39.93, Lon: 32.86, Population: 5700000},
	{Name: "Istanbul", Country: "TUR", Lat: 41.01, Lon: 28.98, Population: 15600000, Aliases: []string{"Constantinople"}},
	{Name: "Kampala", Country: "UGA", Lat: 0.35, Lon: 32.58, Population: 1700000},
	{Name: "Kyiv", Country: "UKR", Lat: 50.45, Lon: 30.52, Population: 2950000, Aliases: []string{"Kiev", "Kiew"}},
	{Name: "Kharkiv", Country: "UKR", Lat: 49.99, Lon: 36.23, Population: 1400000, Aliases: []string{"Kharkov"}},
	{Name: "Odesa", Country: "UKR", Lat: 46.48, Lon: 30.72, Population: 1000000, Aliases: []string{"Odessa"}},
	{Name: "Abu Dhabi", Country: "ARE", Lat: 24.45, Lon: 54.38, Population: 1500000},
	{Name: "Dubai", Country: "ARE", Lat: 25.20, Lon: 55.27, Population: 3600000, Aliases: []string{"Dubaï"}},
	{Name: "London", Country: "GBR", Lat: 51.51, Lon: -0.13, Population: 9000000, Aliases: []string{"Londres"}},
	{Name: "Manchester", Country: "GBR", Lat: 53.48, Lon: -2.24, Population: 550000},
	{Name: "Edinburgh", Country: "GBR", Lat: 55.95, Lon: -3.19, Population: 530000, Aliases: []string{"Édimbourg"}},
	{Name: "London", Country: "CAN", Lat: 42.98, Lon: -81.25, Population: 420000},
	{Name: "Washington", Country: "USA", Lat: 38.91, Lon: -77.04, Population: 700000, Aliases: []string{"Washington D.C.", "Washington DC"}},
	{Name: "New York", Country: "USA", Lat: 40.71, Lon: -74.01, Population: 8300000, Aliases: []string{"New York City", "NYC"}},
	{Name: "Los Angeles", Country: "USA", Lat: 34.05, Lon: -118.24, Population: 3900000},
	{Name: "Chicago", Country: "USA", Lat: 41.88, Lon: -87.63, Population: 2700000},
	{Name: "Caracas", Country: "VEN", Lat: 10.48, Lon: -66.90, Population: 2900000},
	{Name: "Hanoi", Country: "VNM", Lat: 21.03, Lon: 105.85, Population: 8000000, Aliases: []string{"Hanoï"}},
	{Name: "Ho Chi Minh City", Country: "VNM", Lat: 10.82, Lon: 106.63, Population: 9000000, Aliases: []string{"Saigon"}},
	{Name: "Sanaa", Country: "YEM", Lat: 15.37, Lon: 44.19, Population: 3000000, Aliases: []string{"Sana'a"}},
	{Name: "Harare", Country: "ZWE", Lat: -17.83, Lon: 31.05, Population: 1500000},
	{Name: "Vatican City", Country: "VAT", Lat: 41.90, Lon: 12.45, Population: 800, Aliases: []string{"Vatican"}},
}
