package oidc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/mydatashare/mdscore/pkg/jwt"
	"github.com/mydatashare/mdscore/pkg/logger"
	"github.com/mydatashare/mdscore/pkg/storage"
)

// Response modes of the authorization response.
const (
	ResponseModeFragment = "fragment"
	ResponseModeQuery    = "query"
)

// Storage keys of the values carried from the redirect to the callback.
const (
	KeyNonce        = "nonce"
	KeyOIDConfig    = "oidConfig"
	KeyIDToken      = "idToken"
	KeyState        = "state"
	KeyCodeVerifier = "codeVerifier"
)

// reservedParams cannot be overridden by an AuthItem's auth_params.
var reservedParams = map[string]struct{}{
	"client_id":             {},
	"redirect_uri":          {},
	"response_type":         {},
	"response_mode":         {},
	"scope":                 {},
	"state":                 {},
	"nonce":                 {},
	"code_challenge":        {},
	"code_challenge_method": {},
}

// Provider is what the flow needs from an AuthItem.
type Provider interface {
	Discovery() *Discovery
	AuthParams() url.Values
}

// AuthorizationData holds the tokens of a completed authorization.
type AuthorizationData struct {
	AccessToken  string    `json:"access_token"`
	IDToken      string    `json:"id_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	TokenType    string    `json:"token_type,omitempty"`
	Expiry       time.Time `json:"expiry,omitzero"`
}

// Flow runs the OpenID Connect authorization code flow with PKCE for one
// registered client. State is kept in storage between AuthorizationURL and
// Callback, so the two may run in different processes sharing a backend.
type Flow struct {
	clientID     string
	redirectURI  string
	responseMode string
	storage      storage.Storage
	httpClient   *http.Client
	logger       *slog.Logger
}

// FlowOption configures a Flow.
type FlowOption func(*Flow)

// WithResponseMode sets how the provider returns the authorization response.
// The default is ResponseModeFragment.
func WithResponseMode(mode string) FlowOption {
	return func(f *Flow) {
		if mode != "" {
			f.responseMode = mode
		}
	}
}

// WithHTTPClient sets the client used for the token request.
func WithHTTPClient(c *http.Client) FlowOption {
	return func(f *Flow) {
		if c != nil {
			f.httpClient = c
		}
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) FlowOption {
	return func(f *Flow) {
		if l != nil {
			f.logger = l
		}
	}
}

// NewFlow returns a flow for the client registered with clientID and redirectURI.
func NewFlow(clientID, redirectURI string, st storage.Storage, opts ...FlowOption) *Flow {
	f := &Flow{
		clientID:     clientID,
		redirectURI:  redirectURI,
		responseMode: ResponseModeFragment,
		storage:      st,
		logger:       logger.Discard(),
	}
	if f.storage == nil {
		f.storage = storage.WithPrefix(storage.NewMemory(), storage.DefaultPrefix)
	}
	for _, opt := range opts {
		opt(f)
	}
	f.logger = f.logger.With(logger.Component("oidc"))
	return f
}

// ResponseMode returns the configured response mode.
func (f *Flow) ResponseMode() string {
	return f.responseMode
}

func (f *Flow) oauthConfig(doc *Document, scope string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:    f.clientID,
		RedirectURL: f.redirectURI,
		Scopes:      strings.Fields(scope),
		Endpoint:    doc.Endpoint(),
	}
}

func (f *Flow) ctxWithClient(ctx context.Context) context.Context {
	if f.httpClient == nil {
		return ctx
	}
	return context.WithValue(ctx, oauth2.HTTPClient, f.httpClient)
}

// AuthOption configures a single authorization request.
type AuthOption func(*authOptions)

type authOptions struct {
	state string
}

// WithState sets the OAuth 2.0 state parameter. By default a random UUID is used.
func WithState(state string) AuthOption {
	return func(o *authOptions) {
		o.state = state
	}
}

// AuthorizationURL builds the URL the user agent must be sent to in order to
// authorize with p's identity provider. The discovery document is awaited or
// fetched when needed. The nonce, PKCE verifier, state and document are
// saved to storage for Callback.
func (f *Flow) AuthorizationURL(ctx context.Context, p Provider, scope string, opts ...AuthOption) (string, error) {
	var o authOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.state == "" {
		o.state = uuid.NewString()
	}

	disc := p.Discovery()
	if disc == nil {
		return "", ErrNoConfiguration
	}
	doc, err := disc.Resolve(ctx)
	if err != nil {
		return "", errors.Join(ErrNoConfiguration, err)
	}
	if err := doc.Validate(); err != nil {
		return "", errors.Join(ErrNoConfiguration, err)
	}

	nonce, err := GenerateNonce()
	if err != nil {
		return "", err
	}
	verifier := oauth2.GenerateVerifier()

	authURL := f.oauthConfig(doc, scope).AuthCodeURL(o.state,
		oauth2.S256ChallengeOption(verifier),
		oauth2.SetAuthURLParam("response_mode", f.responseMode),
		oauth2.SetAuthURLParam("nonce", nonce),
	)

	authURL, err = withExtraParams(authURL, p.AuthParams())
	if err != nil {
		return "", err
	}

	docJSON, err := doc.Marshal()
	if err != nil {
		return "", err
	}
	for _, kv := range [][2]string{
		{KeyNonce, nonce},
		{KeyCodeVerifier, verifier},
		{KeyState, o.state},
		{KeyOIDConfig, docJSON},
	} {
		if err := f.storage.Set(ctx, kv[0], kv[1]); err != nil {
			return "", errors.Join(ErrStorage, err)
		}
	}

	f.logger.DebugContext(ctx, "authorization url built", logger.URL(doc.AuthorizationEndpoint))
	return authURL, nil
}

func withExtraParams(authURL string, extra url.Values) (string, error) {
	if len(extra) == 0 {
		return authURL, nil
	}
	u, err := url.Parse(authURL)
	if err != nil {
		return "", fmt.Errorf("oidc: authorization url: %w", err)
	}
	q := u.Query()
	for k, vs := range extra {
		if _, reserved := reservedParams[k]; reserved || len(vs) == 0 {
			continue
		}
		q[k] = vs
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Callback completes the flow from the parameters of the authorization
// response: it checks for a provider error, exchanges the code for tokens,
// and verifies the ID token nonce against the stored one. The nonce is
// consumed whatever the outcome. On success the ID token is stored for
// EndSessionURL.
func (f *Flow) Callback(ctx context.Context, params url.Values, scope string) (*AuthorizationData, error) {
	nonce, err := f.take(ctx, KeyNonce, true)
	if err != nil {
		return nil, err
	}

	if code := params.Get("error"); code != "" {
		return nil, &AuthorizationError{
			Code:        code,
			Description: params.Get("error_description"),
			URI:         params.Get("error_uri"),
		}
	}

	code := params.Get("code")
	if code == "" {
		return nil, ErrCodeMissing
	}

	if err := f.checkState(ctx, params.Get("state")); err != nil {
		return nil, err
	}

	docJSON, err := f.take(ctx, KeyOIDConfig, false)
	if err != nil {
		return nil, err
	}
	if docJSON == "" {
		return nil, ErrConfigurationMissing
	}
	doc, err := UnmarshalDocument(docJSON)
	if err != nil {
		return nil, errors.Join(ErrConfigurationMissing, err)
	}

	var exchangeOpts []oauth2.AuthCodeOption
	verifier, err := f.take(ctx, KeyCodeVerifier, true)
	if err != nil {
		return nil, err
	}
	if verifier != "" {
		exchangeOpts = append(exchangeOpts, oauth2.VerifierOption(verifier))
	}

	token, err := f.oauthConfig(doc, scope).Exchange(f.ctxWithClient(ctx), code, exchangeOpts...)
	if err != nil {
		f.logger.WarnContext(ctx, "token request failed", logger.URL(doc.TokenEndpoint), logger.Error(err))
		return nil, errors.Join(ErrTokenRequest, err)
	}

	idToken, _ := token.Extra("id_token").(string)
	if idToken == "" {
		return nil, ErrIDTokenMissing
	}

	data := &AuthorizationData{
		AccessToken:  token.AccessToken,
		IDToken:      idToken,
		RefreshToken: token.RefreshToken,
		TokenType:    token.TokenType,
		Expiry:       token.Expiry,
	}
	if err := verifyNonce(nonce, idToken); err != nil {
		return nil, err
	}

	if err := f.storage.Set(ctx, KeyIDToken, idToken); err != nil {
		return nil, errors.Join(ErrStorage, err)
	}
	return data, nil
}

// CallbackURL is Callback reading the parameters from the redirect URL the
// provider sent the user agent to.
func (f *Flow) CallbackURL(ctx context.Context, redirectURL, scope string) (*AuthorizationData, error) {
	params, err := CallbackValues(redirectURL, f.responseMode)
	if err != nil {
		return nil, fmt.Errorf("oidc: callback url: %w", err)
	}
	return f.Callback(ctx, params, scope)
}

func (f *Flow) checkState(ctx context.Context, got string) error {
	want, err := f.take(ctx, KeyState, true)
	if err != nil {
		return err
	}
	if want != "" && want != got {
		return ErrStateMismatch
	}
	return nil
}

func verifyNonce(expected, idToken string) error {
	tok, err := jwt.Decode(idToken)
	if err != nil {
		return err
	}
	if expected == "" {
		return ErrNonceMissing
	}
	if expected != tok.Nonce() {
		return ErrNonceInvalid
	}
	return nil
}

// take reads key from storage, removing it when remove is set.
// A missing key yields "" without error.
func (f *Flow) take(ctx context.Context, key string, remove bool) (string, error) {
	v, err := f.storage.Get(ctx, key)
	if remove {
		if rmErr := f.storage.Remove(ctx, key); rmErr != nil {
			return "", errors.Join(ErrStorage, rmErr)
		}
	}
	if errors.Is(err, storage.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", errors.Join(ErrStorage, err)
	}
	return v, nil
}

// EndSessionURL returns the provider's end session URL for logging the user
// out, with post_logout_redirect_uri and id_token_hint set. The stored ID
// token and discovery document are consumed. It reports false when either of
// them is no longer stored or the provider has no end session endpoint, in
// which case local sessions must be ended by the caller.
func (f *Flow) EndSessionURL(ctx context.Context, postLogoutRedirectURI string) (string, bool) {
	idToken, err := f.take(ctx, KeyIDToken, true)
	if err != nil {
		f.logger.WarnContext(ctx, "reading id token failed", logger.Error(err))
		return "", false
	}
	if idToken == "" {
		return "", false
	}

	docJSON, err := f.take(ctx, KeyOIDConfig, true)
	if err != nil {
		f.logger.WarnContext(ctx, "reading openid configuration failed", logger.Error(err))
		return "", false
	}
	if docJSON == "" {
		return "", false
	}
	doc, err := UnmarshalDocument(docJSON)
	if err != nil || doc.EndSessionEndpoint == "" {
		return "", false
	}

	u, err := url.Parse(doc.EndSessionEndpoint)
	if err != nil {
		return "", false
	}
	q := u.Query()
	q.Add("post_logout_redirect_uri", postLogoutRedirectURI)
	q.Set("id_token_hint", idToken)
	u.RawQuery = q.Encode()
	return u.String(), true
}
