// Package async provides a small generic Future used to share the result of
// one in-flight computation between many consumers.
//
// Async starts the supplied function in its own goroutine and returns a
// *Future immediately. Consumers wait with Await, bound their own wait with
// AwaitContext, or poll with IsComplete. Resolved and Rejected build futures
// that are already complete, which keeps call sites uniform when a value is
// known up front.
//
// # Usage
//
//	doc := async.Async(ctx, url, func(ctx context.Context, u string) (*oidc.Document, error) {
//	    return discoverer.Discover(ctx, u)
//	})
//
//	// every AuthItem of the provider waits on the same future
//	d, err := doc.AwaitContext(ctx)
//
// There is no cancellation primitive: once started, the computation runs to
// completion or failure under the context it was started with.
package async
