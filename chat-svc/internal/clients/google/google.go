package google

import (
	"context"
	"errors"
	"fmt"

	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/dto"
	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
)

// Client runs the authorization code flow against Google and validates the id
// token that comes back.
type Client struct {
	config       *oauth2.Config
	hostedDomain string
}

func New(clientID, clientSecret, redirectURL, hostedDomain string) (*Client, error) {
	if clientID == "" || clientSecret == "" || redirectURL == "" {
		return nil, errors.New("missing google oauth configuration")
	}
	return &Client{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     googleoauth.Endpoint,
			Scopes:       []string{"openid", "email", "profile"},
		},
		hostedDomain: hostedDomain,
	}, nil
}

// AuthCodeURL asks Google to only offer accounts of the hosted domain. The hint is
// cosmetic; the callback still checks the address.
func (c *Client) AuthCodeURL(state string) string {
	opts := []oauth2.AuthCodeOption{oauth2.SetAuthURLParam("prompt", "select_account")}
	if c.hostedDomain != "" {
		opts = append(opts, oauth2.SetAuthURLParam("hd", c.hostedDomain))
	}
	return c.config.AuthCodeURL(state, opts...)
}

func (c *Client) Exchange(ctx context.Context, code string) (*dto.GoogleIdentity, error) {
	tok, err := c.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange code: %w", err)
	}

	raw, ok := tok.Extra("id_token").(string)
	if !ok || raw == "" {
		return nil, errors.New("google response has no id_token")
	}

	payload, err := idtoken.Validate(ctx, raw, c.config.ClientID)
	if err != nil {
		return nil, fmt.Errorf("validate id token: %w", err)
	}

	id := &dto.GoogleIdentity{Subject: payload.Subject}
	id.Email, _ = payload.Claims["email"].(string)
	id.EmailVerified, _ = payload.Claims["email_verified"].(bool)
	id.Name, _ = payload.Claims["name"].(string)
	id.Picture, _ = payload.Claims["picture"].(string)
	id.HostedDomain, _ = payload.Claims["hd"].(string)
	return id, nil
}
