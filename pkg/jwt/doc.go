// Package jwt decodes JSON Web Tokens without verifying them.
//
// The client only needs to read claims of ID tokens it received directly from
// an identity provider's token endpoint, most importantly the nonce used for
// replay protection:
//
//	tok, err := jwt.Decode(idToken)
//	if err != nil {
//	    return err
//	}
//	if tok.Nonce() != storedNonce {
//	    return oidc.ErrNonceInvalid
//	}
//
// Typed access to the registered claims goes through Claims:
//
//	var claims jwt.StandardClaims
//	if err := tok.Claims(&claims); err != nil {
//	    return err
//	}
package jwt
