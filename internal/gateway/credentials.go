// Package gateway holds the collaborator surfaces a real processor client is
// built from: credentials, the wire transport shape, and the translation of
// transport failures into typed payment errors.
package gateway

import (
	"encoding/base64"
	"fmt"
)

// Credentials produces an opaque authorization header value. Consumers never
// parse it.
type Credentials interface {
	AuthorizationHeader() string
}

// BasicCredentials carries a merchant's key pair and renders it as HTTP
// basic auth.
type BasicCredentials struct {
	MerchantID string
	PublicKey  string
	PrivateKey string
}

func (c BasicCredentials) AuthorizationHeader() string {
	raw := c.PublicKey + ":" + c.PrivateKey
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(raw))
}

func (c BasicCredentials) String() string {
	return fmt.Sprintf("[%s %s]", c.MerchantID, c.PublicKey)
}

// BearerCredentials wraps a single secret key, the shape card processors
// commonly use.
type BearerCredentials struct {
	SecretKey string
}

func (c BearerCredentials) AuthorizationHeader() string {
	return "Bearer " + c.SecretKey
}
