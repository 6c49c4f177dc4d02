package http

import (
	"net/http"

	"github.com/doughlab/authd/pkg/httpx"
	"github.com/doughlab/authd/pkg/jwtx"
)

// JWKSHandler exposes the JSON Web Key Set so downstream services can verify
// access tokens without sharing any secret.
func JWKSHandler(keys *jwtx.KeySet) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, keys.PublicJWKS())
	}
}
