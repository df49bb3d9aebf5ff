package entity

import (
	"encoding/json"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalSortedJSONSortsTopLevelKeysAlphabetically(t *testing.T) {
	schedule := NewSchedule()
	schedule.AddProject(&Project{ID: "P1", Name: "Zeta", ShortName: "Z"})

	out, err := MarshalSortedJSON(schedule)
	require.NoError(t, err)

	var generic map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &generic))

	keys := make([]string, 0, len(generic))
	for k := range generic {
		keys = append(keys, k)
	}
	require.NotEmpty(t, keys)
	sorted := append([]string{}, keys...)
	sort.Strings(sorted)

	text := string(out)
	lastIdx := -1
	for _, key := range sorted {
		idx := strings.Index(text, `"`+key+`":`)
		require.GreaterOrEqual(t, idx, 0)
		assert.GreaterOrEqual(t, idx, lastIdx)
		lastIdx = idx
	}
}

func TestMarshalSortedJSONIsValidJSON(t *testing.T) {
	schedule := NewSchedule()
	schedule.AddTask(&Task{ID: "T1", ProjectID: "P1", Name: "Pour"})

	out, err := MarshalSortedJSON(schedule)
	require.NoError(t, err)

	var roundTrip interface{}
	assert.NoError(t, json.Unmarshal(out, &roundTrip))
}
