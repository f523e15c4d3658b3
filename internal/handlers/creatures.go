package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/jwebster45206/creature-barn/internal/batch"
	"github.com/jwebster45206/creature-barn/internal/storage"
	"github.com/jwebster45206/creature-barn/pkg/creature"
)

const creaturesPath = "/v1/creatures"

// ActorResponse summarizes the d20 combat actor built from a creature.
type ActorResponse struct {
	ID         string         `json:"id"`
	HP         int            `json:"hp"`
	MaxHP      int            `json:"max_hp"`
	AC         int            `json:"ac"`
	Attributes map[string]int `json:"attributes,omitempty"`
	Attacks    map[string]int `json:"attacks,omitempty"`
}

// CreatureHandler serves the stored creature collection:
//
//	POST   /v1/creatures             extract the body and store it
//	GET    /v1/creatures             list stored creatures
//	GET    /v1/creatures/{id}        one creature
//	GET    /v1/creatures/{id}/actor  its d20 combat actor
//	DELETE /v1/creatures/{id}        remove it
type CreatureHandler struct {
	storage      storage.Storage
	processor    *batch.Processor
	maxBodyBytes int64
	logger       *slog.Logger
}

func NewCreatureHandler(store storage.Storage, processor *batch.Processor, maxBodyBytes int64, logger *slog.Logger) *CreatureHandler {
	return &CreatureHandler{
		storage:      store,
		processor:    processor,
		maxBodyBytes: maxBodyBytes,
		logger:       logger,
	}
}

func (h *CreatureHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, creaturesPath), "/")
	if rest == "" {
		switch r.Method {
		case http.MethodPost:
			h.handleCreate(w, r)
		case http.MethodGet:
			h.handleList(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	id, sub, _ := strings.Cut(rest, "/")
	if id == "" || strings.Contains(sub, "/") || (sub != "" && sub != "actor") {
		http.NotFound(w, r)
		return
	}

	switch {
	case sub == "actor" && r.Method == http.MethodGet:
		h.handleActor(w, r, id)
	case sub == "" && r.Method == http.MethodGet:
		h.handleRead(w, r, id)
	case sub == "" && r.Method == http.MethodDelete:
		h.handleDelete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *CreatureHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	text, err := readBody(w, r, h.maxBodyBytes)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if strings.TrimSpace(text) == "" {
		http.Error(w, "Stat block text is required", http.StatusBadRequest)
		return
	}

	res := h.processor.Process(r.Context(), text)
	c := creature.FromRecord(res.ID, res.Record)
	if err := h.storage.SaveCreature(r.Context(), c); err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.logger.Info("Creature stored", "creature_id", c.ID, "name", c.Name)
	w.Header().Set("Location", creaturesPath+"/"+c.ID)
	writeJSON(w, h.logger, http.StatusCreated, c)
}

func (h *CreatureHandler) handleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.storage.ListCreatures(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, list)
}

func (h *CreatureHandler) handleRead(w http.ResponseWriter, r *http.Request, id string) {
	c, err := h.storage.GetCreature(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, c)
}

func (h *CreatureHandler) handleActor(w http.ResponseWriter, r *http.Request, id string) {
	c, err := h.storage.GetCreature(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	actor, err := c.Actor()
	if err != nil {
		h.logger.Warn("Failed to build actor", "creature_id", id, "error", err)
		http.Error(w, "Creature has no usable combat stats", http.StatusUnprocessableEntity)
		return
	}

	resp := ActorResponse{
		ID:         id,
		HP:         actor.HP(),
		MaxHP:      actor.MaxHP(),
		AC:         actor.AC(),
		Attributes: make(map[string]int),
		Attacks:    c.AttackBonuses(),
	}
	for key := range c.Abilities {
		if v, ok := actor.Attribute(key); ok {
			resp.Attributes[key] = v
		}
	}
	writeJSON(w, h.logger, http.StatusOK, resp)
}

func (h *CreatureHandler) handleDelete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.storage.DeleteCreature(r.Context(), id); err != nil {
		writeError(w, h.logger, err)
		return
	}
	h.logger.Info("Creature deleted", "creature_id", id)
	w.WriteHeader(http.StatusNoContent)
}
