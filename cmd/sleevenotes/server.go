package main

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"sleevenotes/internal/app/lists"
	"sleevenotes/internal/app/profile"
	"sleevenotes/internal/app/ratings"
	"sleevenotes/internal/app/search"
	"sleevenotes/internal/app/users"
	"sleevenotes/internal/auth"
	"sleevenotes/internal/httpapi"
	"sleevenotes/internal/httpapi/middleware"
	"sleevenotes/internal/musicapi"
	"sleevenotes/internal/store"
)

func newHTTPHandler(cfg Config, dataStore *store.Store, tokens *auth.TokenManager) http.Handler {
	userSvc := users.New(dataStore, tokens)
	ratingSvc := ratings.New(dataStore)
	listSvc := lists.New(dataStore)
	profileSvc := profile.New(dataStore, dataStore, dataStore)
	searchSvc := search.New(newCatalogClient(cfg))

	api := httpapi.New(userSvc, searchSvc, ratingSvc, listSvc, profileSvc)

	return middleware.Chain(api.Routes(),
		middleware.RequestLogging(),
		middleware.Recovery(),
		middleware.CORS(cfg.AllowedOrigins),
	)
}

func newCatalogClient(cfg Config) musicapi.Client {
	if cfg.SpotifyClientID == "" || cfg.SpotifyClientSecret == "" {
		log.Warn().Msg("Spotify credentials not provided, catalog lookups disabled")
		return nil
	}

	log.Info().Msg("Spotify client initialized")
	return musicapi.NewSpotifyClient(cfg.SpotifyClientID, cfg.SpotifyClientSecret)
}
