package extract

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/ppiankov/landwatch/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kashiNotice() model.PublicNotice {
	var n model.PublicNotice
	a := &n.PropertyDetails.Address
	*a = model.Address{
		FlatOrApartmentNumbers:        "Flat No. 101",
		OfficeOrShopNumbers:           "n/a",
		FloorNumbers:                  "1st Floor",
		BuildingWingOrTowerOrNumber:   "n/a",
		BuildingNumberOnStreet:        "n/a",
		PlotNumber:                    "n/a",
		BungalowOrHouseNumber:         "n/a",
		GutOrGatNumber:                "n/a",
		SurveyOrCSOrCTSNumber:         "C.T.S. No. 1234",
		BuildingName:                  "Kashi Building",
		SocietyOrComplexName:          "Kashi Co-operative Housing Society Limited",
		StreetOrRoadOrMarg:            "Nehru Road",
		SubLocalityOrCityDivision:     "Vile Parle (East)",
		LocalityOrAreaOrNeighbourhood: "n/a",
		Village:                       "n/a",
		Taluka:                        "Andheri",
		District:                      model.DistrictMumbaiCity,
		City:                          model.CityMumbai,
		State:                         "Maharashtra",
		PinCode:                       "57",
	}
	n.PropertyDetails.PropertyUsageType = model.UsageResidential
	n.PropertyDetails.TypeOfProperty = "Flat"
	n.PropertyDetails.Area = "450 sq. ft. carpet"
	n.GeneralNoticeInfo = model.GeneralNoticeInfo{
		DateOfNotice:     "12/03/24",
		NumDaysToRespond: 14,
		Summary:          "Title investigation of Flat No. 101 in Kashi Building.",
	}
	n.SellerDetails = model.SellerDetails{PersonName: "Mr. Suresh Patil", PersonAddress: "n/a", CompanyName: "n/a", CompanyAddress: "n/a"}
	n.AdvocateDetails = model.AdvocateDetails{
		AdvocateName: "Adv. R. K. Deshmukh",
		FirmName:     "n/a",
		Phone:        "9820000000",
		Email:        "n/a",
		Address:      "Office No. 5, Andheri (East), Mumbai 400069",
	}
	return n
}

func noticeDoc(t *testing.T, n model.PublicNotice) map[string]any {
	t.Helper()
	b, err := json.Marshal(n)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(b, &doc))
	return doc
}

func docJSON(t *testing.T, doc map[string]any) string {
	t.Helper()
	b, err := json.Marshal(doc)
	require.NoError(t, err)
	return string(b)
}

func address(doc map[string]any) map[string]any {
	return doc["property_details"].(map[string]any)["address"].(map[string]any)
}

func TestStructuredExtract(t *testing.T) {
	doc := noticeDoc(t, kashiNotice())
	p := &stubProvider{reply: "```json\n" + docJSON(t, doc) + "\n```"}
	e := NewStructuredExtractor(p, nil)

	got, err := e.Extract(context.Background(), "PUBLIC NOTICE ...")
	require.NoError(t, err)

	want := kashiNotice()
	want.PropertyDetails.Address.PinCode = "400057"
	assert.Equal(t, want, *got)

	require.Equal(t, 1, p.calls())
	req := p.reqs[0]
	assert.Equal(t, "public_notice", req.SchemaName)
	assert.NotNil(t, req.Schema)
	require.NotNil(t, req.Temperature)
	assert.Zero(t, *req.Temperature)
	assert.Contains(t, req.Prompt, "FINAL_EXTRACTED_TEXT")
	assert.Contains(t, req.Prompt, "PUBLIC NOTICE ...")
}

func TestStructuredExtractRepairsDeviations(t *testing.T) {
	doc := noticeDoc(t, kashiNotice())
	addr := address(doc)
	addr["city"] = "mumbai"
	addr["district_and_or_sub_district"] = "Gotham"
	delete(addr, "village")
	addr["landmark"] = "near station"
	doc["property_details"].(map[string]any)["property_usage_type"] = "Farmland"
	doc["general_notice_info"].(map[string]any)["num_days_to_respond"] = "15"

	e := NewStructuredExtractor(&stubProvider{reply: docJSON(t, doc)}, nil)
	got, err := e.Extract(context.Background(), "text")
	require.NoError(t, err)

	assert.Equal(t, model.CityMumbai, got.PropertyDetails.Address.City)
	assert.Equal(t, model.DistrictNA, got.PropertyDetails.Address.District)
	assert.Equal(t, model.NA, got.PropertyDetails.Address.Village)
	assert.Equal(t, model.UsageOther, got.PropertyDetails.PropertyUsageType)
	assert.Equal(t, 15, got.GeneralNoticeInfo.NumDaysToRespond)
}

func TestStructuredExtractFailures(t *testing.T) {
	valid := docJSON(t, noticeDoc(t, kashiNotice()))
	tests := []struct {
		name    string
		p       *stubProvider
		wantErr error
	}{
		{"provider error", &stubProvider{err: errors.New("rate limited")}, model.ErrCapabilityFailure},
		{"malformed json", &stubProvider{reply: valid[:len(valid)/2]}, model.ErrCapabilityFailure},
		{"not an object", &stubProvider{reply: `["a","b"]`}, model.ErrCapabilityFailure},
		{"blank record", &stubProvider{reply: `{}`}, model.ErrCapabilityFailure},
		{"fractional days", &stubProvider{reply: `{"general_notice_info":{"num_days_to_respond":7.5}}`}, model.ErrCapabilityFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewStructuredExtractor(tt.p, nil).Extract(context.Background(), "text")
			assert.Nil(t, got)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestStructuredExtractNoProvider(t *testing.T) {
	got, err := NewStructuredExtractor(nil, nil).Extract(context.Background(), "text")
	assert.Nil(t, got)
	assert.ErrorIs(t, err, model.ErrCapabilityUnavailable)
}

func TestMatchEnum(t *testing.T) {
	assert.Equal(t, "Mumbai", matchEnum("MUMBAI", []string{"Pune", "Mumbai", "n/a"}))
	assert.Equal(t, "n/a", matchEnum("Gotham", []string{"Pune", "Mumbai", "n/a"}))
	assert.Equal(t, "Other", matchEnum("Farmland", []string{"Residential", "Other"}))
}
