package season

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BielosX/wombat/home-scraper/src/home"
)

func seasonList(t *testing.T, body string) *home.SeasonList {
	t.Helper()
	var list home.SeasonList
	require.NoError(t, json.Unmarshal([]byte(body), &list))
	return &list
}

func TestResolve_SinglesOnly(t *testing.T) {
	list := seasonList(t, `{"list": {"s1": {"1": {"rule":0,"cid":"abc","rst":0,"ts2":100,"name":"S1"}}}}`)

	resolution, err := Resolve(list)
	require.NoError(t, err)
	require.NotNil(t, resolution.Singles)
	assert.Nil(t, resolution.Doubles)
	assert.Equal(t, Record{CompetitionID: "abc", RankingType: 0, Timestamp: 100, Format: Singles, Name: "S1"}, *resolution.Singles)
	assert.Equal(t, "S1", resolution.SeasonName)
	assert.Len(t, resolution.Records(), 1)
}

func TestResolve_BothFormats(t *testing.T) {
	list := seasonList(t, `{"list": {
		"20": {
			"10201": {"rule":1,"cid":"dbl","rst":2,"ts1":7,"name":"Season 20 doubles"},
			"10200": {"rule":0,"cid":"sgl","rst":1,"ts2":9,"name":"Season 20"}
		},
		"19": {"10191": {"rule":0,"cid":"old","ts2":1,"name":"Season 19"}}
	}}`)

	resolution, err := Resolve(list)
	require.NoError(t, err)
	assert.Equal(t, "20", resolution.SeasonKey)
	assert.Equal(t, "Season 20", resolution.SeasonName, "name comes from the singles ladder")
	assert.Equal(t, "sgl", resolution.Singles.CompetitionID)
	assert.Equal(t, int64(9), resolution.Singles.Timestamp)
	assert.Equal(t, "dbl", resolution.Doubles.CompetitionID)
	assert.Equal(t, 2, resolution.Doubles.RankingType)
	assert.Equal(t, int64(7), resolution.Doubles.Timestamp)

	records := resolution.Records()
	require.Len(t, records, 2)
	assert.Equal(t, Singles, records[0].Format)
	assert.Equal(t, Doubles, records[1].Format)
}

func TestResolve_DoublesOnlyNamesSeason(t *testing.T) {
	list := seasonList(t, `{"list": {"s": {"k": {"rule":1,"cid":"d"}}}}`)

	resolution, err := Resolve(list)
	require.NoError(t, err)
	assert.Nil(t, resolution.Singles)
	require.NotNil(t, resolution.Doubles)
	assert.Equal(t, UnknownSeasonName, resolution.SeasonName)
}

func TestResolve_CompetitionIDFallsBackToKey(t *testing.T) {
	list := seasonList(t, `{"list": {"s": {"10200": {"rule":0,"ts2":3}}}}`)

	resolution, err := Resolve(list)
	require.NoError(t, err)
	assert.Equal(t, "10200", resolution.Singles.CompetitionID)
}

func TestResolve_FirstLadderPerFormatWins(t *testing.T) {
	list := seasonList(t, `{"list": {"s": {"a": {"rule":0,"cid":"first"}, "b": {"rule":0,"cid":"second"}}}}`)

	resolution, err := Resolve(list)
	require.NoError(t, err)
	assert.Equal(t, "first", resolution.Singles.CompetitionID)
}

func TestResolve_IgnoresOddMetadataTypes(t *testing.T) {
	tests := []struct {
		name    string
		record  string
		wantCID string
	}{
		{"string season", `{"rule":0,"cid":"abc","rst":0,"ts2":100,"name":"S1","season":"1"}`, "abc"},
		{"string count", `{"rule":0,"cid":"abc","rst":0,"ts2":100,"name":"S1","cnt":"12"}`, "abc"},
		{"numeric start", `{"rule":0,"cid":"abc","rst":0,"ts2":100,"name":"S1","start":20221201}`, "abc"},
		{"numeric cid", `{"rule":0,"cid":123,"rst":0,"ts2":100,"name":"S1"}`, "123"},
		{"object cid", `{"rule":0,"cid":{"x":1},"rst":0,"ts2":100,"name":"S1"}`, "k"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolution, err := Resolve(seasonList(t, `{"list": {"s": {"k": `+tt.record+`}}}`))
			require.NoError(t, err)
			require.NotNil(t, resolution.Singles)
			assert.Equal(t, tt.wantCID, resolution.Singles.CompetitionID)
			assert.Equal(t, int64(100), resolution.Singles.Timestamp)
			assert.Equal(t, "S1", resolution.SeasonName)
		})
	}
}

func TestResolve_NoData(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing list", `{}`},
		{"empty list", `{"list": {}}`},
		{"unknown rules only", `{"list": {"s": {"a": {"rule":2}, "b": {"cid":"x"}}}}`},
		{"first season not an object", `{"list": {"s": [1, 2]}}`},
		{"non record ladders", `{"list": {"s": {"a": 5}}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(seasonList(t, tt.body))
			assert.ErrorIs(t, err, ErrNoData)
		})
	}

	_, err := Resolve(nil)
	assert.ErrorIs(t, err, ErrNoData)
}
