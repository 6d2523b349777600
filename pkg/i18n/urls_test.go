package i18n_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mydatashare/mdscore/pkg/i18n"
)

func TestURLs(t *testing.T) {
	t.Parallel()

	pool := i18n.URLPool{
		"5": {
			i18n.Fields{"uuid": "u1", "url_type": "icon_medium", "url": "https://example.com/icon.png"},
			i18n.Fields{"uuid": "u2", "url_type": "privacy_policy", "url": "https://example.com/privacy"},
			i18n.Fields{"uuid": "u3", "url_type": "icon_medium", "url": "https://example.com/icon2.png"},
		},
	}
	obj := i18n.Fields{"name": "Item", "url_group_id": 5.0}

	t.Run("filters by type", func(t *testing.T) {
		got, err := i18n.URLs(obj, "icon_medium", pool)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "https://example.com/icon.png", i18n.URLValue(got[0]))
		assert.Equal(t, "https://example.com/icon2.png", i18n.URLValue(got[1]))
	})

	failures := []struct {
		name   string
		obj    i18n.Fields
		pool   i18n.URLPool
		urlTyp string
		reason i18n.Reason
	}{
		{"pool missing", obj, nil, "icon_medium", i18n.ReasonPoolMissing},
		{"no group id", i18n.Fields{"name": "Item"}, pool, "icon_medium", i18n.ReasonLinkMissing},
		{"group missing", i18n.Fields{"url_group_id": "9"}, pool, "icon_medium", i18n.ReasonGroupMissing},
		{"type missing", obj, pool, "terms_of_service", i18n.ReasonTypeMissing},
	}

	for _, tt := range failures {
		t.Run(tt.name, func(t *testing.T) {
			got, err := i18n.URLs(tt.obj, tt.urlTyp, tt.pool)
			require.NoError(t, err)
			assert.Empty(t, got)
			assert.NotNil(t, got)

			_, err = i18n.URLs(tt.obj, tt.urlTyp, tt.pool, i18n.WithNotFoundError())
			var nf *i18n.NotFoundError
			require.ErrorAs(t, err, &nf)
			assert.Equal(t, tt.reason, nf.Reason)
			assert.ErrorIs(t, err, i18n.ErrURLNotFound)
		})
	}
}

func TestMetadataURLs(t *testing.T) {
	t.Parallel()

	pool := testMetadatas()
	pool["url1"] = i18n.Fields{
		"uuid": "url1", "type": "url", "subtype1": "icon_medium",
		"json_data": map[string]any{"url": "https://example.com/1.png"},
	}
	pool["url2"] = i18n.Fields{
		"uuid": "url2", "type": "url", "subtype1": "privacy_policy",
		"json_data": map[string]any{"url": "https://example.com/privacy"},
	}
	obj := i18n.Fields{"uuid": "1", "metadatas.uuid": []any{"fin1", "url2", "url1"}}

	t.Run("filters by subtype in link order", func(t *testing.T) {
		got, err := i18n.MetadataURLs(obj, "icon_medium", pool)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "https://example.com/1.png", i18n.URLValue(got[0]))
	})

	t.Run("missing link field is always an error", func(t *testing.T) {
		_, err := i18n.MetadataURLs(i18n.Fields{"uuid": "1"}, "icon_medium", pool)
		assert.ErrorIs(t, err, i18n.ErrLinkingFieldMissing)

		_, err = i18n.MetadataURLs(i18n.Fields{"uuid": "1"}, "icon_medium", nil, i18n.WithNotFoundError())
		assert.ErrorIs(t, err, i18n.ErrLinkingFieldMissing)
	})

	t.Run("nil pool", func(t *testing.T) {
		got, err := i18n.MetadataURLs(obj, "icon_medium", nil)
		require.NoError(t, err)
		assert.Empty(t, got)

		_, err = i18n.MetadataURLs(obj, "icon_medium", nil, i18n.WithNotFoundError())
		assert.ErrorIs(t, err, i18n.ErrURLNotFound)
	})

	t.Run("type missing", func(t *testing.T) {
		_, err := i18n.MetadataURLs(obj, "terms_of_service", pool, i18n.WithNotFoundError())
		var nf *i18n.NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, i18n.ReasonTypeMissing, nf.Reason)
	})
}

func TestURLValue(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a", i18n.URLValue(i18n.Fields{"json_data": map[string]any{"url": "a"}}))
	assert.Equal(t, "b", i18n.URLValue(i18n.Fields{"url": "b"}))
	assert.Empty(t, i18n.URLValue(i18n.Fields{}))
	assert.Empty(t, i18n.URLValue(nil))
}
