package main

import (
	"net/http"

	"dizzie/internal/app/catalog"
	"dizzie/internal/app/followers"
	"dizzie/internal/app/providers"
	"dizzie/internal/app/users"
	"dizzie/internal/auth"
	"dizzie/internal/http/middleware"
	"dizzie/internal/httpapi"
	"dizzie/internal/store"
)

func newHTTPHandler(cfg Config, tokens *auth.Manager, dataStore *store.Store) http.Handler {
	userSvc := users.New(dataStore, tokens)
	providerSvc := providers.New(dataStore)
	catalogSvc := catalog.New(dataStore)
	followerSvc := followers.New(dataStore)

	handler := httpapi.New(tokens, userSvc, providerSvc, catalogSvc, followerSvc).Routes()

	handler = middleware.CORS(cfg.AllowedOrigins)(handler)
	handler = middleware.RequestLogging()(handler)
	handler = middleware.Recovery()(handler)

	return handler
}
