// Package schema builds the JSON Schema for public notice records and
// validates documents against it.
package schema

import (
	"maps"
	"slices"

	"github.com/ppiankov/landwatch/internal/model"
)

// Mode selects how enum fields are constrained.
type Mode int

const (
	// Generation closes every enum to its member values. Sent to providers
	// as the structured output constraint.
	Generation Mode = iota

	// Snapshot accepts any string (or legacy {"value": ...} object) for
	// enum fields; decoding normalizes them.
	Snapshot
)

// field is one string property with its extraction guidance.
type field struct {
	name string
	desc string
}

var addressFields = []field{
	{"flat_or_apartment_numbers", `Identifier(s) of an individual unit within a residential building or area. Can contain multiple values if there are multiple units. (Examples: "Flat No. 202", "2", "Apt. 2a", "3A", "61 A", "C-602", "Flat No. 2 and Flat No. 3", "Flt. 5", "Flat #1, Apt#2")`},
	{"office_or_shop_numbers", `Identifier(s) of an individual unit within a commercial building or area. Can contain multiple values if there are multiple units. (Examples: "Shop No. 5", "Shop No. 1, 2, 3 & 4; Office No. 102", "Tenement No. 398/49", "Office #101", "Office 12")`},
	{"floor_numbers", `Identifier(s) of the floor where the unit(s) are located within a building. Can contain multiple values if there are multiple units. (Examples: "5th floor", "First floor", "Ground flr", "Ground", "floor 3")`},
	{"building_wing_or_tower_or_number", `Identifier of a single building amongst many within a society or building complex. Can contain multiple values if there are multiple units. (Examples: "Tower D", "B-3", "A", "C wing", "2", "Bldg. 5")`},
	{"building_number_on_street", `Identifier of a building on a specific street. Can contain multiple values if there are multiple units. (Examples: "57" from "57, Linking Road", "9" from "9 Cannaught Rd", "FJ-11" from "Building No. FJ-11")`},
	{"plot_number", `Identifier of a residential or industrial plot of land or factory or shed. Can contain multiple values if needed. (Examples: "Final Plot No. 123-B1", "Plot 5-C", "Plot No:40", "Plot bearing S. No. 185B")`},
	{"bungalow_or_house_number", `Identifier of a bungalow or house. Do not confuse this with survey numbers. Can contain multiple values if needed. (Examples: "Bungalow 12", "House 819", "House No.331-334-335")`},
	{"gut_or_gat_number", `Land identification number assigned by the state revenue department, usually for rural parcels. (Examples: "Gat No. 100", "Gut No. 339")`},
	{"survey_or_cs_or_cts_number", `Umbrella term for official identifiers of a parcel of land, including Hissa numbers. (Examples: "Survey Number 60/AA", "S. No 1A/294", "C.S. No. 46/1", "Survey No. 112, Hissa No. 3", "S. No. 112, H. No. 1,2,3,5,8", "City Survey No. 1176 (part)", "C. Survey. No. 2016/57")`},
	{"building_name", `Name of a residential, commercial or industrial building. Can contain multiple values if needed. (Examples: "Jeevan Niwas", "Prasad", "Lodha Supremus", "Sun-n-Sea", "Gokul")`},
	{"society_or_complex_name", `Name of a society or complex containing multiple buildings, plots, wings, houses, or offices. (Examples: "Ganjawala CHS Ltd.", "Rajdoot Co-op. Hsng. Soc", "Peninsula Corporate Park", "Tarapur M.I.D.C", "Pravin Rita CHSL")`},
	{"street_or_road_or_marg", `Name or identifier of the street, road, lane or marg of the property. (Examples: "Laxmibai Jagmohandas Marg", "J.P. Road", "Hughes Rd.", "5th Street", "Venus Lane")`},
	{"sub_locality_or_city_divsion", `Sub-locality, sub-area, or division within city limits. Do not confuse with locality_or_area_or_neighbourhood. (Examples: "Versova", "Kala Ghoda", "Pali Hill", "Phase 2", "Bhuleshwar Division")`},
	{"locality_or_area_or_neighbourhood", `Locality, area, or neighbourhood. Do not confuse with the village name. (Examples: "Andheri (West)", "Goregaon W", "Shivajinagar", "Worli", "Aundh")`},
	{"village", `Official village name. Must be explicitly mentioned, else "n/a". (Examples: "Village - Chatgaon", "Vil-Somatane", "Vlg Ashti")`},
	{"taluka", `Official taluka name. Must be explicitly mentioned, else "n/a". (Examples: "Taluka - Maval", "Andheri Taluka", "Tal-Akot")`},
}

var addressTailFields = []field{
	{"state", `Official name of the state. (Examples: "MH", "Maharashtra", "M.H", "GJ")`},
	{"pin_code", `6-digit postal code. If only a 2-digit number is found, prefix "4000" ("16" becomes "400016"). "n/a" when not given for the main property. (Examples: "400030", "411 007", "400 001")`},
}

const (
	districtDesc = `Official district and/or sub-district. Must be explicitly mentioned, else "n/a". (Examples: "District - Amravati", "Pune District", "Registration District and Sub-district Mumbai City & Mumbai Suburban")`
	cityDesc     = `Official name of the city. (Examples: "Mumbai", "Pune", "Nagpur")`
)

var propertyFields = []field{
	{"type_of_property", `Kind of property, e.g. "Flat", "Shop", "Land", "Bungalow", "Industrial Shed".`},
	{"area", `Area with units exactly as written, e.g. "650 sq. ft. carpet".`},
}

var noticeInfoFields = []field{
	{"date_of_notice_in_DDMMYY_format", `Date the notice was issued, as DD/MM/YY. "n/a" if absent.`},
	{"ai_generated_50_word_summary", `Neutral summary of the notice in at most 50 words.`},
}

var sellerFields = []field{
	{"person_name", `Name(s) of the individual seller(s) or owner(s).`},
	{"person_address", `Seller's own address if stated elsewhere, as one string.`},
	{"company_name", `Name of the selling company, if any.`},
	{"company_address", `Registered office address of the selling company, as one string.`},
}

var advocateFields = []field{
	{"advocate_name", `Name of the advocate who issued the notice.`},
	{"firm_name", `Name of the law firm, if any.`},
	{"advocate_or_firm_phone_number", `Phone number(s) of the advocate or firm.`},
	{"advocate_or_firm_email", `Email address of the advocate or firm.`},
	{"advocate_or_firm_address", `Address of the advocate or firm, as one string.`},
}

// Notice returns the JSON Schema for a model.PublicNotice. Every object
// is closed and lists all of its properties as required.
func Notice(mode Mode) map[string]any {
	address := object(addressFields, nil)
	props := address["properties"].(map[string]any)
	props["district_and_or_sub_district"] = enumProp(mode, model.Values(model.Districts), districtDesc)
	props["city"] = enumProp(mode, model.Values(model.Cities), cityDesc)
	for _, f := range addressTailFields {
		props[f.name] = stringProp(f.desc)
	}
	address["required"] = append(address["required"].([]string), "district_and_or_sub_district", "city", "state", "pin_code")

	property := object(propertyFields, map[string]any{
		"address":             address,
		"property_usage_type": enumProp(mode, model.Values(model.UsageTypes), "How the property is used."),
	})

	info := object(noticeInfoFields, map[string]any{
		"num_days_to_respond": map[string]any{
			"type":        "integer",
			"description": "Number of days given to raise objections. 0 if not stated.",
		},
	})

	return object(nil, map[string]any{
		"property_details":    property,
		"general_notice_info": info,
		"seller_details":      object(sellerFields, nil),
		"advocate_details":    object(advocateFields, nil),
	})
}

// object builds a closed object schema from string fields plus extra
// properties. required lists the string fields first, then the extras by name.
func object(fields []field, extra map[string]any) map[string]any {
	props := make(map[string]any, len(fields)+len(extra))
	required := make([]string, 0, len(fields)+len(extra))
	for _, f := range fields {
		props[f.name] = stringProp(f.desc)
		required = append(required, f.name)
	}
	for _, name := range slices.Sorted(maps.Keys(extra)) {
		props[name] = extra[name]
		required = append(required, name)
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
		"required":             required,
	}
}

func stringProp(desc string) map[string]any {
	return map[string]any{"type": "string", "description": desc}
}

func enumProp(mode Mode, values []string, desc string) map[string]any {
	if mode == Generation {
		return map[string]any{"type": "string", "enum": values, "description": desc}
	}
	return map[string]any{
		"description": desc,
		"anyOf": []any{
			map[string]any{"type": "string"},
			map[string]any{
				"type":       "object",
				"properties": map[string]any{"value": map[string]any{"type": "string"}},
				"required":   []string{"value"},
			},
		},
	}
}
