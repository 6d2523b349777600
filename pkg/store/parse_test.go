package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mydatashare/mdscore/pkg/i18n"
	"github.com/mydatashare/mdscore/pkg/jsonmap"
	"github.com/mydatashare/mdscore/pkg/oidc"
	"github.com/mydatashare/mdscore/pkg/store"
)

func TestKind_Key(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind store.Kind
		want string
	}{
		{store.KindAuthItem, "auth_items"},
		{store.KindIDProvider, "id_providers"},
		{store.KindMetadata, "metadatas"},
		{store.KindTranslation, "translations"},
		{store.KindURL, "urls"},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.Key())
		})
	}
}

func TestKind_Capabilities(t *testing.T) {
	t.Parallel()

	assert.True(t, store.KindAuthItem.Has(store.Translatable|store.URLCapable))
	assert.True(t, store.KindURL.Has(store.Translatable))
	assert.False(t, store.KindURL.Has(store.URLCapable))
	assert.False(t, store.KindTranslation.Has(store.Translatable))
}

func TestRecord_CapabilityErrors(t *testing.T) {
	t.Parallel()

	s := store.New()
	tr := store.NewRecord(store.KindTranslation, map[string]any{"uuid": "t"}, s)

	_, err := tr.TranslateIn("name", "fin")
	assert.ErrorIs(t, err, store.ErrNotTranslatable)
	_, err = tr.URLs("openid_configuration")
	assert.ErrorIs(t, err, store.ErrNoURLs)

	detached := store.NewRecord(store.KindIDProvider, map[string]any{"uuid": 7.0, "name": "idp"}, nil)
	assert.Equal(t, "7", detached.UUID())
	_, err = detached.Translate("name")
	assert.ErrorIs(t, err, store.ErrDetached)
	assert.Equal(t, "idp", detached.Text("name"))
}

func TestParseRecords(t *testing.T) {
	t.Parallel()

	resp := jsonmap.Map{
		"id_providers": []any{
			map[string]any{"uuid": "b", "name": "B"},
			map[string]any{"name": "no uuid"},
			"not an object",
			map[string]any{"uuid": "a", "name": "A"},
		},
	}

	recs := store.ParseRecords(store.KindIDProvider, resp, nil)
	require.Len(t, recs, 2)
	assert.Equal(t, "A", recs["a"].String("name"))
	assert.Equal(t, store.KindIDProvider, recs["b"].Kind())

	assert.Empty(t, store.ParseRecords(store.KindMetadata, resp, nil))
}

func TestAuthItem_AuthParamsObject(t *testing.T) {
	t.Parallel()

	rec := store.NewRecord(store.KindAuthItem, map[string]any{
		"uuid": "1",
		"auth_params": map[string]any{
			"prompt":     "login",
			"acr_values": []any{"a", "b"},
			"max_age":    60.0,
			"skip":       nil,
		},
	}, nil)
	params := store.NewAuthItem(rec, nil).AuthParams()

	assert.Equal(t, "login", params.Get("prompt"))
	assert.Equal(t, []string{"a", "b"}, params["acr_values"])
	assert.Equal(t, "60", params.Get("max_age"))
	assert.NotContains(t, params, "skip")
}

func legacyResponse() jsonmap.Map {
	return jsonmap.Map{
		"auth_items": map[string]any{
			"1": map[string]any{
				"uuid":             "1",
				"name":             "auth_item 1 name",
				"translation_id":   "tr1",
				"id_provider_uuid": "11",
			},
		},
		"id_providers": map[string]any{
			"11": map[string]any{
				"uuid":         "11",
				"name":         "id_provider name 11",
				"url_group_id": "g11",
			},
		},
		"urls": map[string]any{
			"g11": []any{
				map[string]any{"url_type": "privacy_policy", "url": "https://idp1.example.com/privacy"},
				map[string]any{"url_type": "openid_configuration", "url": oidConfigURL},
			},
		},
		"translations": map[string]any{
			"fin": map[string]any{
				"tr1": map[string]any{
					"name": map[string]any{"translation": "Tunnistustapa 1"},
				},
			},
		},
	}
}

func TestStore_Legacy(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	s := store.New(store.WithGeneration(store.GenerationLegacy), store.WithLanguage("fin"))
	require.NoError(t, s.ParseAPIResponse(ctx, legacyResponse()))

	assert.Equal(t, "legacy", s.Generation().String())
	assert.Empty(t, s.Metadatas())

	item, ok := s.AuthItem("1")
	require.True(t, ok)
	assert.Equal(t, oidConfigURL, item.DiscoveryURL())
	assert.Equal(t, oidc.StateNotStarted, item.Discovery().State(), "no discoverer configured")
	assert.Equal(t, "Tunnistustapa 1", item.Text("name"))

	idp, _ := item.IDProvider()
	assert.Equal(t, "https://idp1.example.com/privacy", idp.URL("privacy_policy"))

	// a later response with another language keeps the finnish translations
	more := jsonmap.Map{
		"translations": map[string]any{
			"eng": map[string]any{
				"tr1": map[string]any{
					"name": map[string]any{"translation": "Authentication 1"},
				},
			},
		},
	}
	require.NoError(t, s.ParseAPIResponse(ctx, more))

	assert.Len(t, s.Translations(), 2)
	assert.Equal(t, "Tunnistustapa 1", item.Text("name"))
	res, err := item.TranslateIn("name", "eng", i18n.WithNotFoundError())
	require.NoError(t, err)
	assert.Equal(t, "Authentication 1", res.Value)
	assert.Len(t, s.AuthItems(), 1)
	assert.Len(t, s.URLGroups(), 1)
}

func TestStore_LegacyWithoutURLs(t *testing.T) {
	t.Parallel()

	resp := legacyResponse()
	delete(resp, "urls")

	s := store.New(store.WithGeneration(store.GenerationLegacy))
	require.NoError(t, s.ParseAPIResponse(t.Context(), resp))
	assert.Empty(t, s.AuthItems())
	assert.Len(t, s.IDProviders(), 1)
}

func TestStore_IgnoresOtherGeneration(t *testing.T) {
	t.Parallel()

	s := store.New()
	require.NoError(t, s.ParseAPIResponse(t.Context(), legacyResponse()))

	assert.Empty(t, s.Translations())
	assert.Empty(t, s.URLGroups())
	assert.Empty(t, s.AuthItems(), "no metadatas to find the discovery url in")
}
