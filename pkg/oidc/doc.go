// Package oidc implements the parts of OpenID Connect the MyDataShare client
// needs to sign a user in through an AuthItem's identity provider.
//
// # Discovery
//
// Every identity provider publishes a discovery document. A *Discovery tracks
// the fetch of one document with an explicit state (not started, pending,
// ready, failed) and is shared by all AuthItems of the provider, so one
// background fetch serves all of them. A failed fetch resolves to absence;
// Resolve then tries a fresh fetch.
//
// # Authorization code flow
//
// Flow builds the authorization URL with golang.org/x/oauth2 (PKCE S256, a
// 128 character nonce, a UUID state and the AuthItem's auth_params), keeps
// the nonce, verifier, state and discovery document in a storage.Storage,
// and completes the flow in Callback:
//
//	flow := oidc.NewFlow(clientID, redirectURI, st)
//	authURL, err := flow.AuthorizationURL(ctx, item, "openid profile")
//	// redirect the user agent to authURL, then on the redirect URI:
//	data, err := flow.CallbackURL(ctx, redirectedTo, "openid profile")
//
// EndSessionURL builds the logout URL from the stored ID token and document.
package oidc
