package main

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/cobra"

	"github.com/mydatashare/mdscore/pkg/callback"
	"github.com/mydatashare/mdscore/pkg/oidc"
)

var errUnknownAuthItem = errors.New("unknown auth item")

type loginOptions struct {
	authItem      string
	clientID      string
	redirectURI   string
	scope         string
	timeout       time.Duration
	postLogoutURI string
}

type tokenView struct {
	AccessToken   string    `json:"access_token" yaml:"access_token"`
	IDToken       string    `json:"id_token" yaml:"id_token"`
	RefreshToken  string    `json:"refresh_token,omitempty" yaml:"refresh_token,omitempty"`
	TokenType     string    `json:"token_type,omitempty" yaml:"token_type,omitempty"`
	Expiry        time.Time `json:"expiry,omitzero" yaml:"expiry,omitempty"`
	EndSessionURL string    `json:"end_session_url,omitempty" yaml:"end_session_url,omitempty"`
}

func newLoginCmd(a *app) *cobra.Command {
	var opts loginOptions

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with the identity provider of an auth item",
		Long: `Prints the authorization URL of the auth item's identity provider and
waits on the redirect URI for the response. The redirect URI must be a
loopback http URL registered for the client. The tokens are printed once
the code has been exchanged.`,
		Example: `  mdsctl login --auth-item 5d1c... --client-id my-app \
    --redirect-uri http://127.0.0.1:8765/callback`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.login(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.authItem, "auth-item", "", "uuid of the auth item to log in with")
	flags.StringVar(&opts.clientID, "client-id", "", "client id registered with the identity provider")
	flags.StringVar(&opts.redirectURI, "redirect-uri", "http://127.0.0.1:8765/callback", "loopback redirect URI")
	flags.StringVar(&opts.scope, "scope", "openid", "space separated scopes to request")
	flags.DurationVar(&opts.timeout, "timeout", 5*time.Minute, "how long to wait for the authorization response")
	flags.StringVar(&opts.postLogoutURI, "post-logout-redirect-uri", "", "also print an end session URL redirecting here")
	_ = cmd.MarkFlagRequired("auth-item")
	_ = cmd.MarkFlagRequired("client-id")

	return cmd
}

func (a *app) login(cmd *cobra.Command, opts loginOptions) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
	defer cancel()

	if err := a.client.FetchAuthItems(ctx); err != nil {
		return err
	}
	item, ok := a.client.Store().AuthItem(opts.authItem)
	if !ok {
		return fmt.Errorf("%w: %s", errUnknownAuthItem, opts.authItem)
	}

	flow := a.client.Flow(opts.clientID, opts.redirectURI, oidc.WithResponseMode(oidc.ResponseModeQuery))
	authURL, err := flow.AuthorizationURL(ctx, item, opts.scope)
	if err != nil {
		return err
	}

	var data *oidc.AuthorizationData
	srv, err := callback.New(opts.redirectURI,
		func(ctx context.Context, params url.Values) error {
			var err error
			data, err = flow.Callback(ctx, params, opts.scope)
			return err
		},
		callback.WithLogger(a.log),
		callback.WithStartHook(func(string) {
			fmt.Fprintf(cmd.ErrOrStderr(), "Open this URL in your browser to log in with %s:\n\n  %s\n\n", item.Text("name"), authURL)
		}),
	)
	if err != nil {
		return err
	}
	if err := srv.Run(ctx); err != nil {
		return err
	}

	view := tokenView{
		AccessToken:  data.AccessToken,
		IDToken:      data.IDToken,
		RefreshToken: data.RefreshToken,
		TokenType:    data.TokenType,
		Expiry:       data.Expiry,
	}
	if opts.postLogoutURI != "" {
		view.EndSessionURL, _ = flow.EndSessionURL(ctx, opts.postLogoutURI)
	}
	return writeOutput(cmd.OutOrStdout(), a.output, view)
}
