// Package api is the HTTP transport of the MyDataShare client.
//
// Client decodes JSON responses into jsonmap.Map values and reports non-2xx
// responses as *StatusError, which matches ErrUnexpectedStatus:
//
//	c := api.New(cfg, api.WithLogger(log))
//	resp, err := c.FetchAuthItems(ctx, true)
//	var se *api.StatusError
//	if errors.As(err, &se) && se.StatusCode == http.StatusNotFound {
//	    // wrong api version
//	}
//
// FetchAllPages drives the offset pagination of search endpoints: the first
// request carries offset=0, each following request carries the next_offset of
// the previous page, and the pages are merged with pagination.Combine.
//
// The client does not retry. Timeouts come from the http.Client, which
// defaults to config.Config.HTTPTimeout.
package api
