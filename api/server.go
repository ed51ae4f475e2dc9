package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/wricardo/rover-mission/mission/codec"
	"github.com/wricardo/rover-mission/mission/service"
	"github.com/wricardo/rover-mission/transport/websocket"
)

// Server represents the REST API server
type Server struct {
	service service.MissionService
	hub     *websocket.Hub
	router  *mux.Router
}

// NewServer creates a new API server. hub may be nil.
func NewServer(missionService service.MissionService, hub *websocket.Hub) *Server {
	s := &Server{
		service: missionService,
		hub:     hub,
		router:  mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", s.handleHealth).Methods("GET")

	// Missions
	api.HandleFunc("/missions", s.handleRunMission).Methods("POST")

	// Scenarios
	api.HandleFunc("/scenarios", s.handleListScenarios).Methods("GET")
	api.HandleFunc("/scenarios", s.handleCreateScenario).Methods("POST")
	api.HandleFunc("/scenarios/{name}", s.handleGetScenario).Methods("GET")
	api.HandleFunc("/scenarios/{name}/run", s.handleRunScenario).Methods("POST")

	// WebSocket
	s.router.HandleFunc("/ws", s.handleWebSocket)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps service failures to status codes. Parse errors
// carry their kind and offending token.
func respondServiceError(w http.ResponseWriter, err error) {
	var parseErr *codec.ParseError
	switch {
	case errors.As(err, &parseErr):
		respondJSON(w, http.StatusBadRequest, map[string]string{
			"error": err.Error(),
			"kind":  parseErr.Kind.String(),
			"token": parseErr.Token,
		})
	case errors.Is(err, service.ErrInvalidScenario):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrScenarioNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}

// Mission Handlers

func (s *Server) handleRunMission(w http.ResponseWriter, r *http.Request) {
	var req service.MissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := s.service.Run(r.Context(), req)
	if err != nil {
		log.Printf("[MISSION] topic=%s error=%q", service.AdhocTopic, err.Error())
		respondServiceError(w, err)
		return
	}

	s.publish(result)
	respondJSON(w, http.StatusOK, result)
}

// handleRunScenario runs a stored scenario. The body is optional and may
// replace the scenario's commands.
func (s *Server) handleRunScenario(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	var req struct {
		Commands string `json:"commands,omitempty"`
	}
	if r.Body != nil {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	result, err := s.service.RunScenario(r.Context(), name, req.Commands)
	if err != nil {
		log.Printf("[MISSION] topic=%s error=%q", name, err.Error())
		respondServiceError(w, err)
		return
	}

	s.publish(result)
	respondJSON(w, http.StatusOK, result)
}

// publish logs a compact line and pushes the result to subscribers
func (s *Server) publish(result *service.MissionResult) {
	status := "OK"
	if result.Outcome.Blocked() {
		status = "OBSTACLE"
	}
	log.Printf("[MISSION] id=%s topic=%s exec=%d/%d end=%s status=%s",
		result.ID, result.Topic, result.CommandsExecuted, result.RequestedCommands, result.Result, status)

	if s.hub != nil {
		s.hub.BroadcastMission(result)
	}
}

// Scenario Handlers

func (s *Server) handleListScenarios(w http.ResponseWriter, r *http.Request) {
	scenarios, err := s.service.ListScenarios(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, scenarios)
}

func (s *Server) handleGetScenario(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	scenario, err := s.service.LoadScenario(r.Context(), name)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, scenario)
}

// handleCreateScenario stores a scenario. The identifier is "id" when given,
// otherwise derived from the name.
func (s *Server) handleCreateScenario(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id,omitempty"`
		service.Scenario
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "Scenario name is required")
		return
	}

	id := req.ID
	if id == "" {
		id = ScenarioID(req.Name)
	}

	scenario := req.Scenario
	if err := s.service.SaveScenario(r.Context(), id, &scenario); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message":     "Scenario saved successfully",
		"scenario_id": id,
	})
}

// ScenarioID derives a file-safe identifier from a display name
func ScenarioID(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}
	return b.String()
}

// WebSocket Handler

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if s.hub == nil {
		http.Error(w, "websocket not available", http.StatusServiceUnavailable)
		return
	}

	topic := r.URL.Query().Get("topic")
	if topic == "" {
		topic = websocket.WildcardTopic
	}

	// Scenario topics must exist; adhoc and wildcard are always valid
	if topic != websocket.WildcardTopic && topic != service.AdhocTopic {
		if _, err := s.service.LoadScenario(r.Context(), topic); err != nil {
			http.Error(w, fmt.Sprintf("unknown topic %s", topic), http.StatusNotFound)
			return
		}
	}

	s.hub.ServeWS(w, r, topic)
}

// Health check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
