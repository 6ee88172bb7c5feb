package interfaces

import (
	"net/http"
)

func userIDFromRequest(r *http.Request) (string, bool) {
	userID, ok := r.Context().Value("userID").(string)
	return userID, ok
}
