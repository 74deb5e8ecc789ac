package corpus

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/ppiankov/landwatch/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func notice(building string, city model.City) model.PublicNotice {
	var n model.PublicNotice
	a := &n.PropertyDetails.Address
	*a = model.Address{
		FlatOrApartmentNumbers: "n/a", OfficeOrShopNumbers: "n/a", FloorNumbers: "n/a",
		BuildingWingOrTowerOrNumber: "n/a", BuildingNumberOnStreet: "n/a", PlotNumber: "n/a",
		BungalowOrHouseNumber: "n/a", GutOrGatNumber: "n/a", SurveyOrCSOrCTSNumber: "n/a",
		BuildingName: building, SocietyOrComplexName: "n/a", StreetOrRoadOrMarg: "n/a",
		SubLocalityOrCityDivision: "n/a", LocalityOrAreaOrNeighbourhood: "n/a", Village: "n/a",
		Taluka: "n/a", District: model.DistrictNA, City: city, State: "Maharashtra", PinCode: "n/a",
	}
	n.PropertyDetails.PropertyUsageType = model.UsageResidential
	n.PropertyDetails.TypeOfProperty = "Flat"
	n.PropertyDetails.Area = "n/a"
	n.GeneralNoticeInfo = model.GeneralNoticeInfo{DateOfNotice: "n/a", NumDaysToRespond: 7, Summary: "n/a"}
	n.SellerDetails = model.SellerDetails{PersonName: "n/a", PersonAddress: "n/a", CompanyName: "n/a", CompanyAddress: "n/a"}
	n.AdvocateDetails = model.AdvocateDetails{AdvocateName: "n/a", FirmName: "n/a", Phone: "n/a", Email: "n/a", Address: "n/a"}
	return n
}

func TestStoreOrdering(t *testing.T) {
	s := New(nil)
	s.Put("b.jpg", notice("Alpha", model.CityPune))
	s.Put("a.jpg", notice("Beta", model.CityMumbai))
	s.Put("c.txt", notice("Gamma", model.CityThane))
	s.Put("b.jpg", notice("Alpha Replaced", model.CityPune))

	assert.Equal(t, []string{"b.jpg", "a.jpg", "c.txt"}, s.Keys())
	assert.Equal(t, 3, s.Len())

	n, ok := s.Get("b.jpg")
	require.True(t, ok)
	assert.Equal(t, "Alpha Replaced", n.PropertyDetails.Address.BuildingName)

	entries := s.Records()
	require.Len(t, entries, 3)
	assert.Equal(t, "a.jpg", entries[1].Key)
	assert.Equal(t, "Beta", entries[1].Notice.PropertyDetails.Address.BuildingName)
}

func TestStoreDelete(t *testing.T) {
	s := New(nil)
	s.Put("a", notice("A", model.CityPune))
	s.Put("b", notice("B", model.CityPune))

	require.NoError(t, s.Delete("a"))
	assert.Equal(t, []string{"b"}, s.Keys())
	sizeAfterFirst := s.Len()

	err := s.Delete("a")
	assert.ErrorIs(t, err, model.ErrKeyNotFound)
	assert.Equal(t, sizeAfterFirst, s.Len())

	s.Clear()
	assert.Zero(t, s.Len())
	assert.Empty(t, s.Keys())
}

func TestExportEmpty(t *testing.T) {
	out, err := New(nil).Export()
	require.NoError(t, err)
	assert.Equal(t, "{}", string(out))
}

func TestExportFormat(t *testing.T) {
	s := New(nil)
	s.Put("z.jpg", notice("Zed & Co", model.CityPune))
	s.Put("a.jpg", notice("Ay", model.CityMumbai))

	out, err := s.Export()
	require.NoError(t, err)
	text := string(out)

	assert.True(t, strings.HasPrefix(text, "{\n    \"z.jpg\": {\n        \"property_details\": {"))
	assert.Less(t, strings.Index(text, "z.jpg"), strings.Index(text, "a.jpg"))
	assert.Contains(t, text, "Zed & Co")
	assert.True(t, json.Valid(out))
}

func TestImportSampleRoundTrip(t *testing.T) {
	s := New(nil)
	require.NoError(t, s.Import(sampleSnapshot))
	assert.Equal(t, []string{"sample1.jpg"}, s.Keys())

	n, _ := s.Get("sample1.jpg")
	assert.Equal(t, model.CityMumbai, n.PropertyDetails.Address.City)
	assert.Equal(t, 14, n.GeneralNoticeInfo.NumDaysToRespond)

	out, err := s.Export()
	require.NoError(t, err)
	assert.JSONEq(t, string(sampleSnapshot), string(out))
}

func TestImportPreservesKeyOrder(t *testing.T) {
	src := New(nil)
	for _, k := range []string{"m.jpg", "b.png", "x.txt", "a.jpg"} {
		src.Put(k, notice(k, model.CityPune))
	}
	data, err := src.Export()
	require.NoError(t, err)

	dst := New(nil)
	require.NoError(t, dst.Import(data))
	assert.Equal(t, src.Keys(), dst.Keys())

	again, err := dst.Export()
	require.NoError(t, err)
	assert.Equal(t, string(data), string(again))
}

func TestImportLegacyEnumObjects(t *testing.T) {
	doc := map[string]any{}
	b, _ := json.Marshal(notice("Kashi", model.CityMumbai))
	var rec map[string]any
	require.NoError(t, json.Unmarshal(b, &rec))
	addr := rec["property_details"].(map[string]any)["address"].(map[string]any)
	addr["city"] = map[string]any{"value": "mumbai"}
	addr["district_and_or_sub_district"] = "Atlantis"
	doc["old.jpg"] = rec
	data, _ := json.Marshal(doc)

	s := New(nil)
	require.NoError(t, s.Import(data))
	n, _ := s.Get("old.jpg")
	assert.Equal(t, model.CityMumbai, n.PropertyDetails.Address.City)
	assert.Equal(t, model.DistrictNA, n.PropertyDetails.Address.District)
}

func TestImportRejectsAtomically(t *testing.T) {
	s := New(nil)
	s.Put("keep.jpg", notice("Keep", model.CityPune))

	good, _ := json.Marshal(notice("Good", model.CityPune))
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{"a": `},
		{"array", `[1, 2]`},
		{"missing field", `{"good.jpg": ` + string(good) + `, "bad.jpg": {"property_details": {}}}`},
		{"wrong type", `{"bad.jpg": 42}`},
		{"trailing data", `{} {}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Import([]byte(tt.data))
			assert.ErrorIs(t, err, model.ErrSchemaMismatch)
			assert.Equal(t, []string{"keep.jpg"}, s.Keys())
		})
	}
}

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "property_database.json")

	s := New(nil)
	require.NoError(t, s.LoadFile(path))
	assert.Zero(t, s.Len())

	require.NoError(t, s.LoadSample())
	s.Put("extra.txt", notice("Extra", model.CityNashik))
	require.NoError(t, s.SaveFile(path))

	loaded := New(nil)
	require.NoError(t, loaded.LoadFile(path))
	assert.Equal(t, []string{"sample1.jpg", "extra.txt"}, loaded.Keys())

	matches, err := filepath.Glob(filepath.Join(filepath.Dir(path), ".snapshot-*"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestLoadFileCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

	s := New(nil)
	s.Put("keep", notice("Keep", model.CityPune))
	assert.ErrorIs(t, s.LoadFile(path), model.ErrSchemaMismatch)
	assert.Equal(t, 1, s.Len())
}

func TestConcurrentPut(t *testing.T) {
	s := New(nil)
	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Put(string(rune('a'+i%26))+".jpg", notice("B", model.CityPune))
			_ = s.Records()
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 26, s.Len())
}
