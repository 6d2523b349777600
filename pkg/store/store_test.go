package store_test

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mydatashare/mdscore/pkg/i18n"
	"github.com/mydatashare/mdscore/pkg/jsonmap"
	"github.com/mydatashare/mdscore/pkg/oidc"
	"github.com/mydatashare/mdscore/pkg/store"
)

const (
	oidConfigURL  = "https://idp1.example.com/.well-known/openid-configuration"
	oidConfigURL2 = "https://idp2.example.com/.well-known/openid-configuration"
)

func oidMetadata(uuid, owner, u string) map[string]any {
	return map[string]any{
		"uuid":       uuid,
		"type":       "url",
		"subtype1":   "openid_configuration",
		"subtype2":   nil,
		"model":      "id_provider",
		"model_uuid": owner,
		"name":       "openid_configuration",
		"json_data": map[string]any{
			"name":        "url name",
			"method_type": "get",
			"url_type":    "openid_configuration",
			"url":         u,
		},
	}
}

func translationMetadata(uuid, lang, owner string, data map[string]any) map[string]any {
	return map[string]any{
		"uuid":       uuid,
		"type":       "translation",
		"subtype1":   lang,
		"model_uuid": owner,
		"json_data":  data,
	}
}

func authItemsResponse() jsonmap.Map {
	return jsonmap.Map{
		"auth_items": map[string]any{
			"1": map[string]any{
				"uuid":             "1",
				"name":             "auth_item 1 name",
				"description":      "auth_item 1 description",
				"id_provider_uuid": "11",
				"metadatas.uuid":   []any{"t1fin"},
			},
			"2": map[string]any{
				"uuid":             "2",
				"name":             "auth_item name 2",
				"description":      "auth_item description 2",
				"auth_params":      "param1=1&param2=2",
				"id_provider_uuid": "11",
			},
			"22": map[string]any{
				"uuid":             "22",
				"name":             "auth_item 22 name",
				"id_provider_uuid": "222",
			},
		},
		"id_providers": map[string]any{
			"11": map[string]any{
				"uuid":           "11",
				"name":           "id_provider name 11",
				"metadatas.uuid": []any{"url1"},
			},
			"222": map[string]any{
				"uuid":           "222",
				"name":           "id_provider name 222",
				"metadatas.uuid": []any{"url2"},
			},
		},
		"metadatas": map[string]any{
			"url1":  oidMetadata("url1", "11", oidConfigURL),
			"url2":  oidMetadata("url2", "222", oidConfigURL2),
			"t1fin": translationMetadata("t1fin", "fin", "1", map[string]any{"name": "Tunnistustapa 1"}),
		},
	}
}

type countingDiscoverer struct {
	calls atomic.Int32
}

func (d *countingDiscoverer) Discover(_ context.Context, u string) (*oidc.Document, error) {
	d.calls.Add(1)
	return &oidc.Document{
		Issuer:                oidc.IssuerBaseURL(u),
		AuthorizationEndpoint: oidc.IssuerBaseURL(u) + "/authorize",
		TokenEndpoint:         oidc.IssuerBaseURL(u) + "/token",
	}, nil
}

func TestStore_ParseAPIResponse(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	disc := &countingDiscoverer{}
	s := store.New(store.WithDiscoverer(disc))

	require.NoError(t, s.ParseAPIResponse(ctx, authItemsResponse()))

	items := s.AuthItems()
	require.Len(t, items, 3)
	assert.Len(t, s.IDProviders(), 2)
	assert.Len(t, s.Metadatas(), 3)

	item1, ok := s.AuthItem("1")
	require.True(t, ok)
	assert.Equal(t, "auth_item 1 name", item1.String("name"))
	assert.Equal(t, oidConfigURL, item1.DiscoveryURL())
	assert.Same(t, s, item1.Store())

	item2, _ := s.AuthItem("2")
	assert.Same(t, item1.Discovery(), item2.Discovery(), "items of one provider share the discovery")
	assert.Equal(t, "1", item2.AuthParams().Get("param1"))
	assert.Equal(t, "2", item2.AuthParams().Get("param2"))
	assert.Nil(t, item1.AuthParams())

	item22, _ := s.AuthItem("22")
	assert.Equal(t, oidConfigURL2, item22.DiscoveryURL())
	assert.NotSame(t, item1.Discovery(), item22.Discovery())

	doc, ok := item1.Discovery().Await(ctx)
	require.True(t, ok)
	assert.Equal(t, "https://idp1.example.com/authorize", doc.AuthorizationEndpoint)
	_, ok = item22.Discovery().Await(ctx)
	require.True(t, ok)
	assert.Equal(t, int32(2), disc.calls.Load(), "one fetch per id provider")

	idp, ok := item1.IDProvider()
	require.True(t, ok)
	assert.Equal(t, "id_provider name 11", idp.String("name"))

	assert.Equal(t, []string{"1", "2", "22"}, uuids(s.AuthItemList()))
}

func TestStore_BackgroundDiscoveryDisabled(t *testing.T) {
	t.Parallel()

	disc := &countingDiscoverer{}
	s := store.New(store.WithDiscoverer(disc), store.WithBackgroundDiscovery(false))
	require.NoError(t, s.ParseAPIResponse(t.Context(), authItemsResponse()))

	item, ok := s.AuthItem("1")
	require.True(t, ok)
	assert.Equal(t, oidc.StateNotStarted, item.Discovery().State())
	assert.Equal(t, int32(0), disc.calls.Load())

	doc, err := item.Discovery().Resolve(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "https://idp1.example.com/token", doc.TokenEndpoint)
	assert.Equal(t, int32(1), disc.calls.Load())
}

func TestStore_DiscoveryOutlivesParseContext(t *testing.T) {
	t.Parallel()

	disc := oidc.DiscovererFunc(func(ctx context.Context, u string) (*oidc.Document, error) {
		select {
		case <-time.After(50 * time.Millisecond):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		return &oidc.Document{Issuer: oidc.IssuerBaseURL(u)}, nil
	})
	s := store.New(store.WithDiscoverer(disc))

	ctx, cancel := context.WithCancel(t.Context())
	require.NoError(t, s.ParseAPIResponse(ctx, authItemsResponse()))
	cancel()

	item, ok := s.AuthItem("1")
	require.True(t, ok)

	doc, ok := item.Discovery().Await(t.Context())
	require.True(t, ok)
	assert.Equal(t, "https://idp1.example.com", doc.Issuer)
	assert.Equal(t, oidc.StateReady, item.Discovery().State())
	assert.NoError(t, item.Discovery().Err())
}

func TestStore_MergeReplacesByUUID(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	s := store.New()
	require.NoError(t, s.ParseAPIResponse(ctx, authItemsResponse()))

	first, _ := s.AuthItem("1")

	second := jsonmap.Map{
		"auth_items": map[string]any{
			"1": map[string]any{"uuid": "1", "name": "renamed", "id_provider_uuid": "11"},
		},
		"id_providers": map[string]any{
			"11": map[string]any{"uuid": "11", "name": "idp renamed"},
		},
		"metadatas": map[string]any{
			"url1": oidMetadata("url1", "11", oidConfigURL),
		},
	}
	require.NoError(t, s.ParseAPIResponse(ctx, second))

	assert.Len(t, s.AuthItems(), 3, "untouched items survive")
	got, _ := s.AuthItem("1")
	assert.Equal(t, "renamed", got.String("name"))
	assert.Equal(t, "auth_item 1 name", first.String("name"), "replaced records are not modified")

	idp, _ := s.IDProvider("11")
	assert.Equal(t, "idp renamed", idp.String("name"))
	assert.Len(t, s.IDProviders(), 2)

	// parsing the same response again is idempotent
	require.NoError(t, s.ParseAPIResponse(ctx, second))
	assert.Len(t, s.AuthItems(), 3)
	assert.Len(t, s.Metadatas(), 3)
}

func TestStore_IncompleteResponses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		resp jsonmap.Map
	}{
		{"empty", jsonmap.Map{}},
		{"no id providers", jsonmap.Map{"auth_items": authItemsResponse()["auth_items"], "metadatas": authItemsResponse()["metadatas"]}},
		{"no metadatas", jsonmap.Map{"auth_items": authItemsResponse()["auth_items"], "id_providers": authItemsResponse()["id_providers"]}},
		{"empty auth items", jsonmap.Map{"auth_items": map[string]any{}, "id_providers": authItemsResponse()["id_providers"], "metadatas": authItemsResponse()["metadatas"]}},
		{"malformed collection", jsonmap.Map{"auth_items": "nope", "id_providers": 3.0, "metadatas": nil}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := store.New()
			require.NoError(t, s.ParseAPIResponse(t.Context(), tt.resp))
			assert.Empty(t, s.AuthItems())
		})
	}
}

func TestStore_DropsItemsWithoutDiscoveryURL(t *testing.T) {
	t.Parallel()

	resp := authItemsResponse()
	delete(resp["metadatas"].(map[string]any), "url2")

	s := store.New()
	require.NoError(t, s.ParseAPIResponse(t.Context(), resp))

	_, ok := s.AuthItem("22")
	assert.False(t, ok)
	_, ok = s.AuthItem("1")
	assert.True(t, ok)
	_, ok = s.IDProvider("222")
	assert.True(t, ok, "the provider itself is still stored")
}

func TestStore_ResponseShapes(t *testing.T) {
	t.Parallel()

	page1 := jsonmap.Map{
		"auth_items":   authItemsResponse()["auth_items"],
		"id_providers": authItemsResponse()["id_providers"],
		"metadatas":    authItemsResponse()["metadatas"],
		"next_offset":  3.0,
	}
	page2 := jsonmap.Map{
		"auth_items": map[string]any{
			"3": map[string]any{"uuid": "3", "name": "third", "id_provider_uuid": "11"},
		},
		"id_providers": authItemsResponse()["id_providers"],
		"metadatas":    authItemsResponse()["metadatas"],
	}

	raw, err := json.Marshal([]any{page1, page2})
	require.NoError(t, err)

	tests := []struct {
		name string
		resp any
	}{
		{"list of pages", []jsonmap.Map{page1, page2}},
		{"list of any", []any{page1, page2}},
		{"json bytes", raw},
		{"json raw message", json.RawMessage(raw)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := store.New()
			require.NoError(t, s.ParseAPIResponse(t.Context(), tt.resp))
			assert.Equal(t, []string{"1", "2", "22", "3"}, uuids(s.AuthItemList()))
		})
	}
}

func TestStore_InvalidResponses(t *testing.T) {
	t.Parallel()

	s := store.New()
	for _, resp := range []any{nil, 42, "text", []any{1}, []byte("not json"), []byte(`"string"`)} {
		assert.ErrorIs(t, s.ParseAPIResponse(t.Context(), resp), store.ErrInvalidResponse, "%v", resp)
	}
	assert.Error(t, s.ParseAPIResponse(t.Context(), []jsonmap.Map{}))
}

func TestStore_DoesNotAliasInput(t *testing.T) {
	t.Parallel()

	resp := authItemsResponse()
	s := store.New()
	require.NoError(t, s.ParseAPIResponse(t.Context(), resp))

	resp["auth_items"].(map[string]any)["1"].(map[string]any)["name"] = "mutated"

	item, _ := s.AuthItem("1")
	assert.Equal(t, "auth_item 1 name", item.String("name"))

	fields := item.Fields()
	fields["name"] = "changed copy"
	assert.Equal(t, "auth_item 1 name", item.String("name"))
}

func TestStore_ClearKeepsLanguage(t *testing.T) {
	t.Parallel()

	s := store.New(store.WithLanguage("eng"))
	require.NoError(t, s.ParseAPIResponse(t.Context(), authItemsResponse()))

	item, _ := s.AuthItem("1")
	s.SetLanguage("fin")
	s.Clear()

	assert.Empty(t, s.AuthItems())
	assert.Empty(t, s.IDProviders())
	assert.Empty(t, s.Metadatas())
	assert.Equal(t, "fin", s.Language())

	_, ok := item.IDProvider()
	assert.False(t, ok, "references resolve at access time")
}

func TestStore_Translate(t *testing.T) {
	t.Parallel()

	s := store.New()
	require.NoError(t, s.ParseAPIResponse(t.Context(), authItemsResponse()))
	item, _ := s.AuthItem("1")

	assert.Equal(t, "auth_item 1 name", item.Text("name"), "no language set")

	s.SetLanguage("fin")
	assert.Equal(t, "Tunnistustapa 1", item.Text("name"))
	assert.Equal(t, "auth_item 1 description", item.Text("description"))

	res, err := item.TranslateIn("name", "eng")
	require.NoError(t, err)
	assert.False(t, res.Found)

	_, err = item.TranslateIn("name", "eng", i18n.WithNotFoundError())
	assert.ErrorIs(t, err, i18n.ErrTranslationNotFound)

	got, err := s.TranslateAll([]string{"name"}, []i18n.Fields{{"name": "x", "metadatas.uuid": []any{"t1fin"}}})
	require.NoError(t, err)
	assert.Equal(t, "Tunnistustapa 1", got[0]["name"])
}

func TestRecord_URLs(t *testing.T) {
	t.Parallel()

	s := store.New()
	require.NoError(t, s.ParseAPIResponse(t.Context(), authItemsResponse()))

	idp, ok := s.IDProvider("11")
	require.True(t, ok)

	assert.Equal(t, oidConfigURL, idp.URL("openid_configuration"))

	_, err := idp.URLs("privacy_policy")
	assert.ErrorIs(t, err, i18n.ErrURLNotFound)

	item, _ := s.AuthItem("2")
	_, err = item.URLs("openid_configuration")
	assert.ErrorIs(t, err, i18n.ErrLinkingFieldMissing)
	assert.Empty(t, item.URL("openid_configuration"))
}

func uuids(items []*store.AuthItem) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.UUID()
	}
	return out
}
