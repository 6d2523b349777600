// Package mdscore is a client core for the MyDataShare API.
//
// It fetches the public AuthItem catalogue, parses it into a store of
// cross-referenced records, resolves localized texts and URLs, and runs the
// OpenID Connect authorization flow against the identity provider an
// AuthItem points to.
//
// Basic usage:
//
//	cfg := config.Default()
//	cfg.APIBaseURL = "https://api.mydatashare.com"
//
//	client, err := mdscore.New(cfg, mdscore.WithLogger(log))
//	if err != nil {
//		return err
//	}
//	if err := client.FetchAuthItems(ctx); err != nil {
//		return err
//	}
//
//	client.Store().SetLanguage("fin")
//	item, _ := client.Store().AuthItem(uuid)
//
//	flow := client.Flow(clientID, "https://app.example.com/callback")
//	authURL, err := flow.AuthorizationURL(ctx, item, "openid profile")
//
// The building blocks live in pkg/: api (transport and pagination), store
// (parsing and records), i18n (translations and URLs), oidc (discovery and
// the authorization flow) and storage (state kept between redirect and
// callback). Client only wires them together; each can be used on its own.
package mdscore
