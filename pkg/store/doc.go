// Package store turns MyDataShare API responses into cross-referenced records.
//
// A Store is an explicit aggregate: create one with New and hand it to
// whatever needs it. ParseAPIResponse is the single ingestion point. It
// accepts one page, a list of pages, or raw JSON:
//
//	s := store.New(store.WithDiscoverer(oidc.NewHTTPDiscoverer(apiClient, log)))
//	if err := s.ParseAPIResponse(ctx, resp); err != nil {
//	    return err
//	}
//	s.SetLanguage("fin")
//	for _, item := range s.AuthItemList() {
//	    fmt.Println(item.Text("name"))
//	}
//
// # Records
//
// Every parsed object becomes a *Record tagged with its Kind. A kind's
// capabilities decide whether the record resolves translations
// (Translatable) and URLs (URLCapable); resolution itself lives in package
// i18n and reads the store's pool at call time.
//
// AuthItems additionally carry the oidc.Discovery of their identity provider.
// It is shared by all AuthItems of that provider, and its fetch starts during
// parsing unless WithBackgroundDiscovery(false) is given. References between
// records, such as AuthItem.IDProvider, are looked up when used, since the
// referenced record may arrive in a later response.
//
// # Schema generations
//
// The API has served two schemas: a legacy one with separate "translations"
// and "urls" collections and a unified one with a "metadatas" collection. A
// store reads exactly one of them, chosen with WithGeneration.
package store
