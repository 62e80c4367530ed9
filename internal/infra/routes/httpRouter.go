package routes

import (
	"encoding/json"
	"net/http"

	"intellialert/internal/infra/handlers"

	"github.com/gorilla/mux"
)

type Routes struct {
	Mux               *mux.Router
	CallHandlers      *handlers.CallHandlers
	ProfileHandlers   *handlers.ProfileHandlers
	WebsocketHandlers *handlers.WebsocketHandlers
}

func NewRoutes(mux *mux.Router, callHandlers *handlers.CallHandlers, profileHandlers *handlers.ProfileHandlers, websocketHandlers *handlers.WebsocketHandlers) *Routes {
	return &Routes{mux, callHandlers, profileHandlers, websocketHandlers}
}

func (r *Routes) Init() {
	r.Mux.HandleFunc("/make-call", r.CallHandlers.MakeCall).Methods(http.MethodGet)
	r.Mux.HandleFunc("/calls", r.CallHandlers.CreateCall).Methods(http.MethodPost)
	r.Mux.HandleFunc("/call-events", r.CallHandlers.CallEvents).Methods(http.MethodPost)
	r.Mux.HandleFunc("/call-status", r.CallHandlers.CallStatus).Methods(http.MethodPost)

	r.Mux.HandleFunc("/users/update_profile/{user_id}", r.ProfileHandlers.UpdateProfile).Methods(http.MethodPut)

	r.Mux.HandleFunc("/ws", r.WebsocketHandlers.Serve).Methods(http.MethodGet)

	r.Mux.HandleFunc("/test", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"hello": "world"})
	}).Methods(http.MethodGet)

	r.Mux.HandleFunc("/healthCheck", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		response := map[string]string{"status": "healthy"}
		json.NewEncoder(w).Encode(response)
	}).Methods(http.MethodGet)
}
