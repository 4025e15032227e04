package httpapi

import (
	"net/http"

	"climacheck-server/internal/utils"
)

// NewMux returns a mux serving /health and answering any unmatched route
// with a JSON 404. Features register their own routes on it afterwards.
func NewMux(serviceName string) *http.ServeMux {
	mux := http.NewServeMux()
	registerHealthcheck(mux, serviceName)
	mux.HandleFunc("/", handleNotFound)
	return mux
}

func handleNotFound(w http.ResponseWriter, r *http.Request) {
	utils.WriteError(w, http.StatusNotFound, "endpoint not found")
}
