package handlers

import (
	"net/http"

	"github.com/Kamaljaya32/Laundry/internal/utils"
	"github.com/Kamaljaya32/Laundry/internal/websocket"
)

// serveWs authenticates the device via a token query parameter (browser
// and mobile websocket clients cannot set headers) and attaches it to the
// owner's event stream.
func (r *Router) serveWs(w http.ResponseWriter, req *http.Request) {
	token := req.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "token query parameter required", http.StatusUnauthorized)
		return
	}

	claims, err := utils.ValidateToken(token, r.cfg.JWTSecret)
	if err != nil || utils.IsRefreshToken(claims) {
		http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
		return
	}
	ownerID, _ := claims["id"].(string)
	if ownerID == "" {
		http.Error(w, "Invalid token claims", http.StatusUnauthorized)
		return
	}

	websocket.ServeWs(r.hub, ownerID, w, req)
}
