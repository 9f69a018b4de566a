package report

import "strings"

// RosterEntry fixes the display code, name and district of one estate slot.
type RosterEntry struct {
	Code     string
	Name     string
	District District
}

// Roster is the fixed, ordered list of the twenty estates every report must
// contain, partitioned into the two districts. Order here is report order.
var Roster = []RosterEntry{
	{Code: "SGH", Name: "Kebun Sei Garo Hulu", District: DistrictBarat},
	{Code: "TPR", Name: "Kebun Tapung Raya", District: DistrictBarat},
	{Code: "SKP", Name: "Kebun Suka Pulai", District: DistrictBarat},
	{Code: "SLD", Name: "Kebun Sei Lindai", District: DistrictBarat},
	{Code: "PMB", Name: "Kebun Pematang Baru", District: DistrictBarat},
	{Code: "KRC", Name: "Kebun Kerinci", District: DistrictBarat},
	{Code: "BTG", Name: "Kebun Batang Tua", District: DistrictBarat},
	{Code: "LBS", Name: "Kebun Lubuk Sakai", District: DistrictBarat},
	{Code: "TMD", Name: "Kebun Tambusai Muda", District: DistrictBarat},
	{Code: "APS", Name: "Kebun Air Panas", District: DistrictBarat},
	{Code: "MJU", Name: "Kebun Mekar Jaya Utama", District: DistrictTimur},
	{Code: "RBT", Name: "Kebun Rambutan", District: DistrictTimur},
	{Code: "KSN", Name: "Kebun Kusuma Negara", District: DistrictTimur},
	{Code: "TLK", Name: "Kebun Teluk Kiri", District: DistrictTimur},
	{Code: "SPG", Name: "Kebun Sei Pagar", District: DistrictTimur},
	{Code: "BGR", Name: "Kebun Bangun Raya", District: DistrictTimur},
	{Code: "DML", Name: "Kebun Damai Lestari", District: DistrictTimur},
	{Code: "PSR", Name: "Kebun Pasir Ringgit", District: DistrictTimur},
	{Code: "WKM", Name: "Kebun Wonosari Kemuning", District: DistrictTimur},
	{Code: "KRS", Name: "Kebun Karya Sejahtera", District: DistrictTimur},
}

// codeAliases resolves legacy spellings to the canonical short code,
// consulted after NormalizeCode. SGHI is the roman-numeral spelling
// ("SGH-I") still present in pre-2023 uploads.
var codeAliases = map[string]string{
	"SGHI": "SGH",
}

// NormalizeCode canonicalizes a plantation code for roster lookup:
// strip every non-alphanumeric rune, uppercase, then apply the alias table.
func NormalizeCode(code string) string {
	var b strings.Builder
	for _, r := range code {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r - ('a' - 'A'))
		case (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
		}
	}
	norm := b.String()
	if canonical, ok := codeAliases[norm]; ok {
		return canonical
	}
	return norm
}

// DistrictCodes returns the roster codes belonging to one district, in
// roster order.
func DistrictCodes(d District) []string {
	codes := make([]string, 0, len(Roster))
	for _, entry := range Roster {
		if entry.District == d {
			codes = append(codes, entry.Code)
		}
	}
	return codes
}

// AllRosterCodes returns every roster code in roster order.
func AllRosterCodes() []string {
	codes := make([]string, 0, len(Roster))
	for _, entry := range Roster {
		codes = append(codes, entry.Code)
	}
	return codes
}

// DistrictOf resolves the district containing the given plantation code, if
// the code (or one of its spellings) is on the roster.
func DistrictOf(code string) (District, bool) {
	norm := NormalizeCode(code)
	for _, entry := range Roster {
		if entry.Code == norm {
			return entry.District, true
		}
	}
	return "", false
}

// NormalizeRows maps an arbitrary row set for one category onto the fixed
// roster: every roster slot appears exactly once, in roster order, re-tagged
// with the canonical code, name, district and a 1-based sequence number.
// Estates absent from the input come back as all-zero rows. The operation is
// idempotent: normalizing an already-normalized set returns it unchanged.
func NormalizeRows(category Category, rows []ComparisonRow) []ComparisonRow {
	byCode := make(map[string]ComparisonRow, len(rows))
	for _, row := range rows {
		code := NormalizeCode(row.PlantationCode)
		if existing, ok := byCode[code]; ok {
			row = mergeRows(existing, row)
		}
		byCode[code] = row
	}
	out := make([]ComparisonRow, 0, len(Roster))
	for i, entry := range Roster {
		row, ok := byCode[entry.Code]
		if !ok {
			row = ComparisonRow{}
		}
		row.Seq = i + 1
		row.PlantationCode = entry.Code
		row.PlantationName = entry.Name
		row.District = entry.District
		row.Category = category
		out = append(out, row)
	}
	return out
}

// mergeRows folds two spellings of the same estate into one row. Legacy
// uploads can carry the aliased code next to the canonical one; their mass
// must add up, not shadow each other, or the grid drifts from the SQL
// totals. Percentages are re-derived from the summed figures.
func mergeRows(a, b ComparisonRow) ComparisonRow {
	for i := range a.Rounds {
		a.Rounds[i].Plan = round2(a.Rounds[i].Plan + b.Rounds[i].Plan)
		a.Rounds[i].Actual = round2(a.Rounds[i].Actual + b.Rounds[i].Actual)
		a.Rounds[i].Percent = percentOf(a.Rounds[i].Actual, a.Rounds[i].Plan)
	}
	a.TodayPlan = round2(a.TodayPlan + b.TodayPlan)
	a.TodayActual = round2(a.TodayActual + b.TodayActual)
	a.TomorrowPlan = round2(a.TomorrowPlan + b.TomorrowPlan)
	a.TotalPlan = round2(a.TotalPlan + b.TotalPlan)
	a.TotalActual = round2(a.TotalActual + b.TotalActual)
	a.TotalPercent = percentOf(a.TotalActual, a.TotalPlan)
	return a
}
