package main

import (
	"encoding/json"
	"log"
	"net/http"

	"clothsim/config"
	"clothsim/network"
	"clothsim/session"
	"clothsim/sim"
)

func main() {
	config.InitConfig()

	addr := config.StringOr("LISTEN_ADDR", ":8080")
	width := config.IntOr("CLOTH_WIDTH", sim.DefaultWidth)
	height := config.IntOr("CLOTH_HEIGHT", sim.DefaultHeight)

	manager := session.NewManager(width, height)
	server := network.NewServer(manager)

	http.HandleFunc("/ws", server.HandleWS)
	http.HandleFunc("/api/sessions", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(manager.List())
		case http.MethodPost:
			code := manager.Create()
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]string{"code": code})
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})

	log.Printf("listening on %s (ws endpoint: /ws, cloth %dx%d)", addr, width, height)
	log.Fatal(http.ListenAndServe(addr, nil))
}
