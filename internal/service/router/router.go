package router

import (
	"net/http"

	"github.com/gorilla/mux"

	auth "skinshop/internal/auth/controller"
	catalog "skinshop/internal/catalog/controller"
	economy "skinshop/internal/economy/controller"
	"skinshop/internal/service/metrics"
	"skinshop/internal/service/middleware"
)

func SetUpRoutes(
	authHandler *auth.AuthHandler,
	economyHandler *economy.EconomyHandler,
	catalogHandler *catalog.CatalogHandler,
	authenticator *middleware.Authenticator,
) *mux.Router {
	router := mux.NewRouter()
	router.Use(middleware.RequestIDMiddleware)
	router.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost) // Register account
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)       // Login, returns bearer token

	protected := api.NewRoute().Subrouter()
	protected.Use(authenticator.Middleware)
	protected.HandleFunc("/balance", economyHandler.GetBalance).Methods(http.MethodGet, http.MethodPost)
	protected.HandleFunc("/add-coins", economyHandler.AddCoins).Methods(http.MethodPost)
	protected.HandleFunc("/purchase", economyHandler.Purchase).Methods(http.MethodPost)
	protected.HandleFunc("/purchase/{itemId:[0-9]+}", economyHandler.Purchase).Methods(http.MethodPost)
	protected.HandleFunc("/history", economyHandler.History).Methods(http.MethodGet)
	protected.HandleFunc("/info", economyHandler.Info).Methods(http.MethodGet) // Coins, owned skins and purchases
	protected.HandleFunc("/available-items", catalogHandler.AvailableItems).Methods(http.MethodGet, http.MethodPost)
	protected.HandleFunc("/owned-items", catalogHandler.OwnedItems).Methods(http.MethodGet)
	return router
}
