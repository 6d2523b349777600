// Package callback receives the authorization response of a native client.
//
// A command line client cannot be redirected to itself, so it registers a
// loopback redirect URI and listens on it for the duration of one login:
//
//	srv, err := callback.New("http://127.0.0.1:8765/callback",
//		func(ctx context.Context, params url.Values) error {
//			data, err := flow.Callback(ctx, params, scope)
//			...
//		},
//		callback.WithStartHook(func(u string) { fmt.Println("listening on", u) }),
//	)
//	if err != nil {
//		return err
//	}
//	err = srv.Run(ctx)
//
// Run returns after the first request to the callback path, with the error
// of the handler. The identity provider must deliver the response in the
// query or as a form post; fragments never reach the server.
//
// Routing is done with chi. Run also stops on interrupt and TERM signals,
// and all startup and shutdown failures wrap ErrStart and ErrShutdown.
package callback
