package auth

import (
	"context"
	"fmt"
)

// Type selects the Authorization scheme Discord expects for the credential.
type Type string

const (
	// TypeBot authenticates a bot token.
	TypeBot Type = "Bot"
	// TypeBearer authenticates an OAuth2 access token.
	TypeBearer Type = "Bearer"
)

// TokenProvider yields the current token. Implementations may rotate tokens
// (OAuth2 refresh) between calls.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a TokenProvider for a fixed token string.
type StaticToken string

func (t StaticToken) Token(ctx context.Context) (string, error) {
	if t == "" {
		return "", fmt.Errorf("auth: empty token")
	}
	return string(t), nil
}

// Credential pairs a token source with its Authorization scheme.
type Credential struct {
	Type     Type
	Provider TokenProvider
}

// NewBotToken builds a bot credential from a fixed token.
func NewBotToken(token string) *Credential {
	return &Credential{Type: TypeBot, Provider: StaticToken(token)}
}

// NewBearerToken builds an OAuth2 bearer credential from a fixed token.
func NewBearerToken(token string) *Credential {
	return &Credential{Type: TypeBearer, Provider: StaticToken(token)}
}

// NewTokenProvider builds a credential around a rotating token source.
func NewTokenProvider(typ Type, provider TokenProvider) *Credential {
	return &Credential{Type: typ, Provider: provider}
}

// Header renders the Authorization header value.
func (c *Credential) Header(ctx context.Context) (string, error) {
	if c == nil || c.Provider == nil {
		return "", fmt.Errorf("auth: no token provider configured")
	}
	token, err := c.Provider.Token(ctx)
	if err != nil {
		return "", fmt.Errorf("auth: resolving token: %w", err)
	}
	typ := c.Type
	if typ == "" {
		typ = TypeBot
	}
	return fmt.Sprintf("%s %s", typ, token), nil
}
