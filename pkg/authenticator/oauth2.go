package authenticator

import (
	"context"
	"errors"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/veleo-lab/backend/config"
	"golang.org/x/oauth2"
)

type oauth2Service struct {
	*oidc.Provider
	oauth2.Config

	name    string
	idField string
}

func NewOAuth2Service(ctx context.Context, oauth2Cfg config.OAuth2Config) (IOAuth2Service, error) {
	provider, err := oidc.NewProvider(ctx, oauth2Cfg.Issuer)
	if err != nil {
		return nil, err
	}

	return &oauth2Service{
		name:     oauth2Cfg.Name,
		idField:  oauth2Cfg.IDField,
		Provider: provider,
		Config: oauth2.Config{
			ClientID:     oauth2Cfg.ClientID,
			ClientSecret: oauth2Cfg.ClientSecret,
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		},
	}, nil
}

func (s *oauth2Service) Service() string {
	return s.name
}

func (s *oauth2Service) VerifyIDToken(ctx context.Context, rawIDToken string) (OAuth2User, error) {
	idToken, err := s.Verifier(&oidc.Config{ClientID: s.ClientID}).Verify(ctx, rawIDToken)
	if err != nil {
		return OAuth2User{}, err
	}

	var profile map[string]any
	if err := idToken.Claims(&profile); err != nil {
		return OAuth2User{}, errors.New("invalid id token")
	}

	id, ok := profile[s.idField].(string)
	if !ok {
		return OAuth2User{}, fmt.Errorf("invalid id field %s", s.idField)
	}

	email, _ := profile["email"].(string)
	username, _ := profile["name"].(string)
	return OAuth2User{ID: id, Email: email, Username: username}, nil
}

func (s *oauth2Service) VerifyAuthorizationCode(
	ctx context.Context, code, redirectURI string,
) (OAuth2User, error) {
	cfg := s.Config
	cfg.RedirectURL = redirectURI
	token, err := cfg.Exchange(ctx, code)
	if err != nil {
		return OAuth2User{}, err
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		return OAuth2User{}, errors.New("no id_token field in oauth2 token")
	}

	return s.VerifyIDToken(ctx, rawIDToken)
}
