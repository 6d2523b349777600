package i18n_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mydatashare/mdscore/pkg/i18n"
)

func rec(translation string) i18n.Fields {
	return i18n.Fields{"translation": translation}
}

func TestMergePools(t *testing.T) {
	t.Parallel()

	prev := i18n.Pool{
		"fin": {
			"1": {"name": rec("Nimi"), "description": rec("Kuvaus")},
		},
		"swe": {
			"1": {"name": rec("Namn")},
		},
	}
	next := i18n.Pool{
		"fin": {
			"1": {"name": rec("Uusi nimi")},
			"2": {"name": rec("Toinen")},
		},
		"eng": {
			"1": {"name": rec("Name")},
		},
	}

	got := i18n.MergePools(prev, next)

	assert.ElementsMatch(t, []string{"fin", "swe", "eng"}, keys(got))
	assert.Equal(t, rec("Uusi nimi"), got["fin"]["1"]["name"])
	assert.Equal(t, rec("Kuvaus"), got["fin"]["1"]["description"], "fields of prev survive a shared id")
	assert.Equal(t, rec("Toinen"), got["fin"]["2"]["name"])
	assert.Equal(t, rec("Namn"), got["swe"]["1"]["name"])
	assert.Equal(t, rec("Name"), got["eng"]["1"]["name"])

	// inputs untouched
	assert.Equal(t, rec("Nimi"), prev["fin"]["1"]["name"])
	assert.NotContains(t, prev["fin"], "2")
	assert.NotContains(t, prev, "eng")
	assert.Len(t, next["fin"]["1"], 1)
}

func TestMergePools_Nil(t *testing.T) {
	t.Parallel()

	pool := i18n.Pool{"fin": {"1": {"name": rec("Nimi")}}}

	assert.Equal(t, pool, i18n.MergePools(nil, pool))
	assert.Equal(t, pool, i18n.MergePools(pool, nil))
	assert.Empty(t, i18n.MergePools(nil, nil))
}

func TestMergeRawPools(t *testing.T) {
	t.Parallel()

	prev := map[string]any{
		"fin": map[string]any{
			"1": map[string]any{
				"name":        map[string]any{"translation": "Nimi"},
				"description": map[string]any{"translation": "Kuvaus"},
			},
		},
	}
	next := map[string]any{
		"fin": map[string]any{
			"1": map[string]any{
				"name": map[string]any{"translation": "Uusi"},
			},
		},
		"eng": map[string]any{
			"1": map[string]any{"name": map[string]any{"translation": "Name"}},
		},
	}

	got := i18n.MergeRawPools(prev, next)

	fin1 := got["fin"].(map[string]any)["1"].(map[string]any)
	assert.Equal(t, map[string]any{"translation": "Uusi"}, fin1["name"])
	assert.Equal(t, map[string]any{"translation": "Kuvaus"}, fin1["description"])
	assert.Contains(t, got, "eng")

	prevFin1 := prev["fin"].(map[string]any)["1"].(map[string]any)
	assert.Equal(t, map[string]any{"translation": "Nimi"}, prevFin1["name"])
	assert.NotContains(t, prev, "eng")

	require.NotNil(t, i18n.MergeRawPools(nil, nil))
}

func TestMetadataPool_Languages(t *testing.T) {
	t.Parallel()

	pool := testMetadatas()
	assert.Equal(t, []string{"eng", "fin", "swe"}, pool.Languages(testItems()[0]))
	assert.Nil(t, pool.Languages(i18n.Fields{"name": "no links"}))
}

func keys[M ~map[string]V, V any](m M) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
