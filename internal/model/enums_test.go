package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDistrict(t *testing.T) {
	tests := []struct {
		raw  string
		want District
	}{
		{"Pune", DistrictPune},
		{"pune", DistrictPune},
		{"MUMBAI CITY / SUBURBAN", DistrictMumbaiCity},
		{"Atlantis", DistrictNA},
		{"", DistrictNA},
		{" Pune", DistrictNA}, // no trimming
		{"n/a", DistrictNA},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeDistrict(tt.raw), "raw=%q", tt.raw)
	}
}

func TestNormalizeDistrict_AliasesShareValue(t *testing.T) {
	assert.Equal(t, DistrictBombay, DistrictMumbaiSuburban)
	assert.Equal(t, "Mumbai City / Suburban", string(NormalizeDistrict("mumbai city / suburban")))
}

func TestNormalizeCity(t *testing.T) {
	assert.Equal(t, CityMumbai, NormalizeCity("mumbai"))
	assert.Equal(t, CityNaviMumbai, NormalizeCity("NAVI MUMBAI"))
	assert.Equal(t, CityAmbarnath, NormalizeCity("Ambernath"))
	assert.Equal(t, CityNA, NormalizeCity("Atlantis"))
}

func TestNormalizeUsageType(t *testing.T) {
	assert.Equal(t, UsageResidential, NormalizeUsageType("residential"))
	assert.Equal(t, UsageOther, NormalizeUsageType("Mixed"))
	assert.Equal(t, UsageOther, NormalizeUsageType(""))
}

func TestNormalize_Idempotent(t *testing.T) {
	for _, d := range Districts {
		assert.Equal(t, d, NormalizeDistrict(string(NormalizeDistrict(string(d)))))
	}
	for _, c := range Cities {
		assert.Equal(t, c, NormalizeCity(string(NormalizeCity(string(c)))))
	}
	for _, u := range UsageTypes {
		assert.Equal(t, u, NormalizeUsageType(string(u)))
	}
}

func TestValues_Dedupes(t *testing.T) {
	vals := Values(Districts)
	count := 0
	for _, v := range vals {
		if v == "Mumbai City / Suburban" {
			count++
		}
	}
	assert.Equal(t, 1, count)
	assert.Equal(t, "Akola", vals[0])
	assert.Equal(t, NA, vals[len(vals)-1])
	assert.Len(t, Values(Cities), len(Cities))
}

func TestEnumUnmarshalJSON(t *testing.T) {
	var addr struct {
		District District  `json:"district"`
		City     City      `json:"city"`
		Usage    UsageType `json:"usage"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"district":"thane","city":{"value":"Pune"},"usage":42}`), &addr))
	assert.Equal(t, DistrictThane, addr.District)
	assert.Equal(t, CityPune, addr.City)
	assert.Equal(t, UsageOther, addr.Usage)

	require.NoError(t, json.Unmarshal([]byte(`{"district":null,"city":"Gotham","usage":"COMMERCIAL"}`), &addr))
	assert.Equal(t, DistrictNA, addr.District)
	assert.Equal(t, CityNA, addr.City)
	assert.Equal(t, UsageCommercial, addr.Usage)
}
