// Package storage defines the key-value persistence surface the client uses to
// keep authorization state (nonce, PKCE verifier, discovery document, ID
// token) between an authorization redirect and its callback.
//
// Memory is the in-process implementation. Package redis provides a shared
// backend for deployments running more than one instance. WithPrefix
// namespaces keys so that co-hosted applications do not overwrite each
// other's state:
//
//	st := storage.WithPrefix(storage.NewMemory(), storage.Prefix(storage.DefaultPrefix, "app.example.com"))
package storage
