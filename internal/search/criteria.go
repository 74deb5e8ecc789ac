package search

import (
	"strings"

	"github.com/ppiankov/landwatch/internal/model"
)

// Criteria are the record fields a structured search can constrain.
// Blank and "n/a" values are ignored.
type Criteria struct {
	FlatOrApartmentNumbers        string
	OfficeOrShopNumbers           string
	BuildingName                  string
	SocietyOrComplexName          string
	StreetOrRoadOrMarg            string
	LocalityOrAreaOrNeighbourhood string
	City                          string
	PinCode                       string
	TypeOfProperty                string
	SurveyOrCSOrCTSNumber         string
}

// Field is one named criterion.
type Field struct {
	Name  string
	Value string
}

// Fields returns every criterion, named as in the record schema, in a
// fixed order.
func (c Criteria) Fields() []Field {
	return []Field{
		{"flat_or_apartment_numbers", c.FlatOrApartmentNumbers},
		{"office_or_shop_numbers", c.OfficeOrShopNumbers},
		{"building_name", c.BuildingName},
		{"society_or_complex_name", c.SocietyOrComplexName},
		{"street_or_road_or_marg", c.StreetOrRoadOrMarg},
		{"locality_or_area_or_neighbourhood", c.LocalityOrAreaOrNeighbourhood},
		{"city", c.City},
		{"pin_code", c.PinCode},
		{"type_of_property", c.TypeOfProperty},
		{"survey_or_cs_or_cts_number", c.SurveyOrCSOrCTSNumber},
	}
}

// Filtered returns the criteria that carry a value, trimmed. Blank and
// "n/a" values in any case are dropped.
func (c Criteria) Filtered() []Field {
	var out []Field
	for _, f := range c.Fields() {
		if model.IsBlank(f.Value) {
			continue
		}
		out = append(out, Field{Name: f.Name, Value: strings.TrimSpace(f.Value)})
	}
	return out
}

// Set assigns the criterion named name. Returns false for an unknown name.
func (c *Criteria) Set(name, value string) bool {
	switch name {
	case "flat_or_apartment_numbers":
		c.FlatOrApartmentNumbers = value
	case "office_or_shop_numbers":
		c.OfficeOrShopNumbers = value
	case "building_name":
		c.BuildingName = value
	case "society_or_complex_name":
		c.SocietyOrComplexName = value
	case "street_or_road_or_marg":
		c.StreetOrRoadOrMarg = value
	case "locality_or_area_or_neighbourhood":
		c.LocalityOrAreaOrNeighbourhood = value
	case "city":
		c.City = value
	case "pin_code":
		c.PinCode = value
	case "type_of_property":
		c.TypeOfProperty = value
	case "survey_or_cs_or_cts_number":
		c.SurveyOrCSOrCTSNumber = value
	default:
		return false
	}
	return true
}

func (c Criteria) String() string {
	fields := c.Filtered()
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f.Name + ": " + f.Value
	}
	return strings.Join(parts, ", ")
}
