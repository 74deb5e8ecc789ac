package model

import (
	"encoding/json"
	"strings"
)

// NA is the display value used when a field is absent from a notice.
const NA = "n/a"

// UsageType classifies what a property is used for.
type UsageType string

const (
	UsageResidential  UsageType = "Residential"
	UsageCommercial   UsageType = "Commercial"
	UsageIndustrial   UsageType = "Industrial"
	UsageAgricultural UsageType = "Agricultural"
	UsageOther        UsageType = "Other"
)

// UsageTypes lists members in declaration order.
var UsageTypes = []UsageType{
	UsageResidential,
	UsageCommercial,
	UsageIndustrial,
	UsageAgricultural,
	UsageOther,
}

// District is a Maharashtra district. Several identifiers share the
// "Mumbai City / Suburban" display value.
type District string

const (
	DistrictAkola          District = "Akola"
	DistrictAmravati       District = "Amravati"
	DistrictBuldhana       District = "Buldhana"
	DistrictYavatmal       District = "Yavatmal"
	DistrictWashim         District = "Washim"
	DistrictAurangabad     District = "Aurangabad"
	DistrictBeed           District = "Beed"
	DistrictJalna          District = "Jalna"
	DistrictOsmanabad      District = "Osmanabad"
	DistrictNanded         District = "Nanded"
	DistrictLatur          District = "Latur"
	DistrictParbhani       District = "Parbhani"
	DistrictHingoli        District = "Hingoli"
	DistrictBombay         District = "Mumbai City / Suburban"
	DistrictBombaySuburban District = "Mumbai City / Suburban"
	DistrictMumbaiCity     District = "Mumbai City / Suburban"
	DistrictMumbaiSuburban District = "Mumbai City / Suburban"
	DistrictThane          District = "Thane"
	DistrictPalghar        District = "Palghar"
	DistrictRaigad         District = "Raigad"
	DistrictRatnagiri      District = "Ratnagiri"
	DistrictSindhudurg     District = "Sindhudurg"
	DistrictBhandara       District = "Bhandara"
	DistrictChandrapur     District = "Chandrapur"
	DistrictGadchiroli     District = "Gadchiroli"
	DistrictGondia         District = "Gondia"
	DistrictNagpur         District = "Nagpur"
	DistrictWardha         District = "Wardha"
	DistrictAhmednagar     District = "Ahmednagar"
	DistrictDhule          District = "Dhule"
	DistrictJalgaon        District = "Jalgaon"
	DistrictNandurbar      District = "Nandurbar"
	DistrictNashik         District = "Nashik"
	DistrictSangli         District = "Sangli"
	DistrictSatara         District = "Satara"
	DistrictSolapur        District = "Solapur"
	DistrictKolhapur       District = "Kolhapur"
	DistrictPune           District = "Pune"
	DistrictNA             District = NA
)

// Districts lists members in declaration order, aliases included.
var Districts = []District{
	DistrictAkola, DistrictAmravati, DistrictBuldhana, DistrictYavatmal, DistrictWashim,
	DistrictAurangabad, DistrictBeed, DistrictJalna, DistrictOsmanabad, DistrictNanded,
	DistrictLatur, DistrictParbhani, DistrictHingoli,
	DistrictBombay, DistrictBombaySuburban, DistrictMumbaiCity, DistrictMumbaiSuburban,
	DistrictThane, DistrictPalghar, DistrictRaigad, DistrictRatnagiri, DistrictSindhudurg,
	DistrictBhandara, DistrictChandrapur, DistrictGadchiroli, DistrictGondia, DistrictNagpur,
	DistrictWardha, DistrictAhmednagar, DistrictDhule, DistrictJalgaon, DistrictNandurbar,
	DistrictNashik, DistrictSangli, DistrictSatara, DistrictSolapur, DistrictKolhapur,
	DistrictPune, DistrictNA,
}

// City is a Maharashtra city.
type City string

const (
	CityMumbai           City = "Mumbai"
	CityPune             City = "Pune"
	CityNagpur           City = "Nagpur"
	CityThane            City = "Thane"
	CityPimpriChinchwad  City = "Pimpri-Chinchwad"
	CityNashik           City = "Nashik"
	CityKalyanDombivli   City = "Kalyan-Dombivli"
	CityVasaiVirar       City = "Vasai-Virar"
	CityAurangabad       City = "Aurangabad"
	CityNaviMumbai       City = "Navi Mumbai"
	CitySolapur          City = "Solapur"
	CityMiraBhayandar    City = "Mira-Bhayandar"
	CityJalgaon          City = "Jalgaon"
	CityDhule            City = "Dhule"
	CityAmravati         City = "Amravati"
	CityNandedWaghala    City = "Nanded-Waghala"
	CityKolhapur         City = "Kolhapur"
	CityUlhasnagar       City = "Ulhasnagar"
	CitySangli           City = "Sangli"
	CityMalegaon         City = "Malegaon"
	CityAkola            City = "Akola"
	CityLatur            City = "Latur"
	CityBhiwandiNizampur City = "Bhiwandi-Nizampur"
	CityAhmednagar       City = "Ahmednagar"
	CityChandrapur       City = "Chandrapur"
	CityParbhani         City = "Parbhani"
	CityIchalkaranji     City = "Ichalkaranji"
	CityJalna            City = "Jalna"
	CityAmbarnath        City = "Ambernath"
	CityBhusawal         City = "Bhusawal"
	CityPanvel           City = "Panvel"
	CityBadlapur         City = "Badlapur"
	CityBoisar           City = "Boisar"
	CityGondia           City = "Gondia"
	CitySatara           City = "Satara"
	CityBarshi           City = "Barshi"
	CityYavatmal         City = "Yavatmal"
	CityAchalpur         City = "Achalpur"
	CityOsmanabad        City = "Osmanabad"
	CityNandurbar        City = "Nandurbar"
	CityWardha           City = "Wardha"
	CityUdgir            City = "Udgir"
	CityHinganghat       City = "Hinganghat"
	CityNA               City = NA
)

// Cities lists members in declaration order.
var Cities = []City{
	CityMumbai, CityPune, CityNagpur, CityThane, CityPimpriChinchwad, CityNashik,
	CityKalyanDombivli, CityVasaiVirar, CityAurangabad, CityNaviMumbai, CitySolapur,
	CityMiraBhayandar, CityJalgaon, CityDhule, CityAmravati, CityNandedWaghala,
	CityKolhapur, CityUlhasnagar, CitySangli, CityMalegaon, CityAkola, CityLatur,
	CityBhiwandiNizampur, CityAhmednagar, CityChandrapur, CityParbhani, CityIchalkaranji,
	CityJalna, CityAmbarnath, CityBhusawal, CityPanvel, CityBadlapur, CityBoisar,
	CityGondia, CitySatara, CityBarshi, CityYavatmal, CityAchalpur, CityOsmanabad,
	CityNandurbar, CityWardha, CityUdgir, CityHinganghat, CityNA,
}

// normalize maps raw onto the first member whose value matches it
// case-insensitively, or fallback when nothing matches.
func normalize[T ~string](raw string, members []T, fallback T) T {
	for _, m := range members {
		if strings.EqualFold(string(m), raw) {
			return m
		}
	}
	return fallback
}

// NormalizeUsageType never fails; unknown usage degrades to Other.
func NormalizeUsageType(raw string) UsageType {
	return normalize(raw, UsageTypes, UsageOther)
}

// NormalizeDistrict never fails; unknown districts degrade to n/a.
func NormalizeDistrict(raw string) District {
	return normalize(raw, Districts, DistrictNA)
}

// NormalizeCity never fails; unknown cities degrade to n/a.
func NormalizeCity(raw string) City {
	return normalize(raw, Cities, CityNA)
}

// Values returns the distinct display values of members, in order.
// Used to build enum constraints for schemas.
func Values[T ~string](members []T) []string {
	seen := make(map[string]bool, len(members))
	out := make([]string, 0, len(members))
	for _, m := range members {
		if seen[string(m)] {
			continue
		}
		seen[string(m)] = true
		out = append(out, string(m))
	}
	return out
}

// rawEnum extracts the candidate string from a JSON value. Plain strings
// are used as-is; older snapshots stored enums as {"value": "..."}.
// Anything else yields "" which matches no member.
func rawEnum(data []byte) string {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return s
	}
	var wrapped struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil {
		return wrapped.Value
	}
	return ""
}

func (u *UsageType) UnmarshalJSON(data []byte) error {
	*u = NormalizeUsageType(rawEnum(data))
	return nil
}

func (d *District) UnmarshalJSON(data []byte) error {
	*d = NormalizeDistrict(rawEnum(data))
	return nil
}

func (c *City) UnmarshalJSON(data []byte) error {
	*c = NormalizeCity(rawEnum(data))
	return nil
}
