package model

import (
	"regexp"
	"strings"
)

// Address is the location of a property as printed in a notice.
// Multi-unit values (several flats, plots, surveys) are kept as one
// comma-joined string per field.
type Address struct {
	FlatOrApartmentNumbers        string   `json:"flat_or_apartment_numbers"`
	OfficeOrShopNumbers           string   `json:"office_or_shop_numbers"`
	FloorNumbers                  string   `json:"floor_numbers"`
	BuildingWingOrTowerOrNumber   string   `json:"building_wing_or_tower_or_number"`
	BuildingNumberOnStreet        string   `json:"building_number_on_street"`
	PlotNumber                    string   `json:"plot_number"`
	BungalowOrHouseNumber         string   `json:"bungalow_or_house_number"`
	GutOrGatNumber                string   `json:"gut_or_gat_number"`
	SurveyOrCSOrCTSNumber         string   `json:"survey_or_cs_or_cts_number"`
	BuildingName                  string   `json:"building_name"`
	SocietyOrComplexName          string   `json:"society_or_complex_name"`
	StreetOrRoadOrMarg            string   `json:"street_or_road_or_marg"`
	SubLocalityOrCityDivision     string   `json:"sub_locality_or_city_divsion"`
	LocalityOrAreaOrNeighbourhood string   `json:"locality_or_area_or_neighbourhood"`
	Village                       string   `json:"village"`
	Taluka                        string   `json:"taluka"`
	District                      District `json:"district_and_or_sub_district"`
	City                          City     `json:"city"`
	State                         string   `json:"state"`
	PinCode                       string   `json:"pin_code"`
}

// PropertyDetails describes the property a notice concerns.
type PropertyDetails struct {
	Address           Address   `json:"address"`
	PropertyUsageType UsageType `json:"property_usage_type"`
	TypeOfProperty    string    `json:"type_of_property"`
	Area              string    `json:"area"`
}

// GeneralNoticeInfo holds notice-level metadata.
type GeneralNoticeInfo struct {
	DateOfNotice     string `json:"date_of_notice_in_DDMMYY_format"`
	NumDaysToRespond int    `json:"num_days_to_respond"`
	Summary          string `json:"ai_generated_50_word_summary"`
}

// SellerDetails identifies the party transferring the property.
type SellerDetails struct {
	PersonName     string `json:"person_name"`
	PersonAddress  string `json:"person_address"`
	CompanyName    string `json:"company_name"`
	CompanyAddress string `json:"company_address"`
}

// AdvocateDetails identifies the advocate or firm that issued the notice.
type AdvocateDetails struct {
	AdvocateName string `json:"advocate_name"`
	FirmName     string `json:"firm_name"`
	Phone        string `json:"advocate_or_firm_phone_number"`
	Email        string `json:"advocate_or_firm_email"`
	Address      string `json:"advocate_or_firm_address"`
}

// PublicNotice is one structured record extracted from a newspaper notice.
type PublicNotice struct {
	PropertyDetails   PropertyDetails   `json:"property_details"`
	GeneralNoticeInfo GeneralNoticeInfo `json:"general_notice_info"`
	SellerDetails     SellerDetails     `json:"seller_details"`
	AdvocateDetails   AdvocateDetails   `json:"advocate_details"`
}

// IsEmpty reports whether n is the zero record.
func (n PublicNotice) IsEmpty() bool {
	return n == PublicNotice{}
}

// IsBlank reports whether n carries no information at all: every text
// field is empty or n/a and no response period is given.
func (n PublicNotice) IsBlank() bool {
	if len(n.PropertyDetails.Address.Components()) > 0 || n.GeneralNoticeInfo.NumDaysToRespond != 0 {
		return false
	}
	for _, s := range []string{
		n.PropertyDetails.TypeOfProperty,
		n.PropertyDetails.Area,
		n.GeneralNoticeInfo.DateOfNotice,
		n.GeneralNoticeInfo.Summary,
		n.SellerDetails.PersonName,
		n.SellerDetails.PersonAddress,
		n.SellerDetails.CompanyName,
		n.SellerDetails.CompanyAddress,
		n.AdvocateDetails.AdvocateName,
		n.AdvocateDetails.FirmName,
		n.AdvocateDetails.Phone,
		n.AdvocateDetails.Email,
		n.AdvocateDetails.Address,
	} {
		if !IsBlank(s) {
			return false
		}
	}
	return true
}

// Components returns the address parts in reading order, skipping
// empty and n/a values.
func (a Address) Components() []string {
	parts := []string{
		a.FlatOrApartmentNumbers,
		a.OfficeOrShopNumbers,
		a.FloorNumbers,
		a.BuildingWingOrTowerOrNumber,
		a.BuildingNumberOnStreet,
		a.PlotNumber,
		a.BungalowOrHouseNumber,
		a.GutOrGatNumber,
		a.SurveyOrCSOrCTSNumber,
		a.BuildingName,
		a.SocietyOrComplexName,
		a.StreetOrRoadOrMarg,
		a.SubLocalityOrCityDivision,
		a.LocalityOrAreaOrNeighbourhood,
		a.Village,
		a.Taluka,
		string(a.District),
		string(a.City),
		a.State,
		a.PinCode,
	}

	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if IsBlank(p) {
			continue
		}
		out = append(out, strings.TrimSpace(p))
	}
	return out
}

// Format returns the complete address as a single line.
func (a Address) Format() string {
	return strings.Join(a.Components(), ", ")
}

// IsBlank reports whether a field carries no information.
func IsBlank(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || strings.EqualFold(s, NA)
}

var twoDigitPin = regexp.MustCompile(`^\d{2}$`)

// NormalizePinCode expands the two-digit Mumbai postal zone suffix that
// notices commonly print ("16") into a full pin code ("400016").
// Any other value is returned unchanged.
func NormalizePinCode(pin string) string {
	compact := strings.ReplaceAll(pin, " ", "")
	if twoDigitPin.MatchString(compact) {
		return "4000" + compact
	}
	return pin
}
