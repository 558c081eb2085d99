package server

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	app "kaviospix/src/app"
	cfg "kaviospix/src/configuration"
)

type (
	AuthHandler struct {
		auth             *app.AuthService
		oidcProvider     *oidc.Provider
		authConfig       *oauth2.Config
		clientID         string
		frontendURL      string
		oauthStateString string
	}

	RegisterBody struct {
		Name            string `json:"name"`
		Email           string `json:"email"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirmPassword"`
	}

	LoginBody struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
)

func randString(nByte int) (string, error) {
	b := make([]byte, nByte)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func NewAuthHandler(config *cfg.Properties, auth *app.AuthService) *AuthHandler {
	handler := &AuthHandler{
		auth:        auth,
		clientID:    config.Auth.GoogleID,
		frontendURL: config.Auth.FrontendURL,
	}

	provider, err := oidc.NewProvider(oauth2.NoContext, config.Auth.GoogleIssuer)
	if err != nil {
		// Manual login still works without the provider; Google routes
		// will report unavailable.
		log.Errorf("error creating OIDC provider: %v", err)
		return handler
	}
	handler.oidcProvider = provider
	handler.authConfig = &oauth2.Config{
		ClientID:     config.Auth.GoogleID,
		ClientSecret: config.Auth.GoogleSecret,
		RedirectURL:  config.Auth.GoogleRedirect,
		Endpoint:     provider.Endpoint(),
		Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
	}
	return handler
}

func (a *AuthHandler) Register(c *gin.Context) {
	var body RegisterBody
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "malformed request body"})
		return
	}
	user, token, err := a.auth.Register(c.Request.Context(), body.Name, body.Email, body.Password, body.ConfirmPassword)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "token": token, "user": publicUser(user)})
}

func (a *AuthHandler) Login(c *gin.Context) {
	var body LoginBody
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "malformed request body"})
		return
	}
	user, token, err := a.auth.Login(c.Request.Context(), body.Email, body.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "token": token, "user": publicUser(user)})
}

// Google starts the external sign-in by redirecting to the provider.
func (a *AuthHandler) Google(c *gin.Context) {
	if a.authConfig == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "message": "google sign-in is not configured"})
		return
	}
	a.oauthStateString, _ = randString(16)
	c.Redirect(http.StatusFound, a.authConfig.AuthCodeURL(a.oauthStateString))
}

// GoogleCallback exchanges the authorization code, verifies the ID
// token and completes sign-in, then hands the bearer token to the
// frontend.
func (a *AuthHandler) GoogleCallback(c *gin.Context) {
	if a.authConfig == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "message": "google sign-in is not configured"})
		return
	}
	if c.Query("state") != a.oauthStateString {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "no current state found"})
		return
	}

	token, err := a.authConfig.Exchange(c.Request.Context(), c.Query("code"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "error getting access token: " + err.Error()})
		return
	}
	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "no ID token found in callback"})
		return
	}

	verifier := a.oidcProvider.Verifier(&oidc.Config{ClientID: a.clientID})
	idToken, err := verifier.Verify(c.Request.Context(), rawIDToken)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "error verifying ID token: " + err.Error()})
		return
	}

	var claims struct {
		Email      string `json:"email"`
		Name       string `json:"name"`
		GivenName  string `json:"given_name"`
		FamilyName string `json:"family_name"`
		Picture    string `json:"picture"`
		Verified   bool   `json:"email_verified"`
	}
	if err := idToken.Claims(&claims); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "can not parse ID token claims: " + err.Error()})
		return
	}

	user, bearer, err := a.auth.CompleteOAuth(c.Request.Context(), app.OAuthProfile{
		Subject:    idToken.Subject,
		Email:      claims.Email,
		Name:       claims.Name,
		GivenName:  claims.GivenName,
		FamilyName: claims.FamilyName,
		Picture:    claims.Picture,
		Verified:   claims.Verified,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	// API clients get JSON, browsers are sent back to the frontend with
	// the token in the query.
	if strings.Contains(c.GetHeader("Accept"), "application/json") {
		c.JSON(http.StatusOK, gin.H{"success": true, "token": bearer, "user": publicUser(user)})
		return
	}
	redirect := fmt.Sprintf("%s/?token=%s", a.frontendURL, url.QueryEscape(bearer))
	c.Redirect(http.StatusFound, redirect)
}

func (a *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "user": publicUser(currentUser(c))})
}
