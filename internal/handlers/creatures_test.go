package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jwebster45206/creature-barn/internal/batch"
	"github.com/jwebster45206/creature-barn/internal/storage"
	"github.com/jwebster45206/creature-barn/pkg/creature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCreatureHandler(store storage.Storage) *CreatureHandler {
	return NewCreatureHandler(store, batch.NewProcessor(1, batch.WithLogger(quietLogger())), 1<<20, quietLogger())
}

func serve(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestCreatureHandler_Create(t *testing.T) {
	store := storage.NewMockStorage()
	h := newCreatureHandler(store)

	rr := serve(h, http.MethodPost, "/v1/creatures", goblinText)
	require.Equal(t, http.StatusCreated, rr.Code)

	id := creature.IDFor(goblinText)
	assert.Equal(t, "/v1/creatures/"+id, rr.Header().Get("Location"))

	var got creature.Creature
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	assert.Equal(t, id, got.ID)
	assert.Equal(t, 16, got.AC)

	stored, err := store.GetCreature(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Goblin Warrior CR 1/2", stored.Name)
}

func TestCreatureHandler_CreateErrors(t *testing.T) {
	t.Run("blank body", func(t *testing.T) {
		rr := serve(newCreatureHandler(storage.NewMockStorage()), http.MethodPost, "/v1/creatures", "  \n")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("storage failure hides details", func(t *testing.T) {
		store := storage.NewMockStorage()
		store.SetSaveError(errors.New("disk full at /var/lib/barn"))
		rr := serve(newCreatureHandler(store), http.MethodPost, "/v1/creatures", goblinText)

		require.Equal(t, http.StatusInternalServerError, rr.Code)
		var resp ErrorResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, "internal", resp.Code)
		assert.NotContains(t, resp.Error, "/var/lib/barn")
	})
}

func TestCreatureHandler_ListReadDelete(t *testing.T) {
	store := storage.NewMockStorage()
	h := newCreatureHandler(store)
	c := creature.FromText(goblinText)
	require.NoError(t, store.SaveCreature(context.Background(), c))

	rr := serve(h, http.MethodGet, "/v1/creatures", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var list []storage.Summary
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&list))
	require.Len(t, list, 1)
	assert.Equal(t, c.ID, list[0].ID)

	rr = serve(h, http.MethodGet, "/v1/creatures/"+c.ID, "")
	require.Equal(t, http.StatusOK, rr.Code)
	var got creature.Creature
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	assert.Equal(t, c.Name, got.Name)

	rr = serve(h, http.MethodDelete, "/v1/creatures/"+c.ID, "")
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = serve(h, http.MethodGet, "/v1/creatures/"+c.ID, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = serve(h, http.MethodDelete, "/v1/creatures/"+c.ID, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCreatureHandler_EmptyList(t *testing.T) {
	rr := serve(newCreatureHandler(storage.NewMockStorage()), http.MethodGet, "/v1/creatures/", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, "[]", rr.Body.String())
}

func TestCreatureHandler_Actor(t *testing.T) {
	store := storage.NewMockStorage()
	c := creature.FromText(goblinText)
	require.NoError(t, store.SaveCreature(context.Background(), c))

	rr := serve(newCreatureHandler(store), http.MethodGet, "/v1/creatures/"+c.ID+"/actor", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp ActorResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, 6, resp.MaxHP)
	assert.Equal(t, 16, resp.AC)
	assert.Equal(t, 11, resp.Attributes["strength"])
	assert.Equal(t, 2, resp.Attacks["dogslicer"])
}

func TestCreatureHandler_Routing(t *testing.T) {
	h := newCreatureHandler(storage.NewMockStorage())
	tests := []struct {
		method string
		target string
		want   int
	}{
		{http.MethodPut, "/v1/creatures", http.StatusMethodNotAllowed},
		{http.MethodPost, "/v1/creatures/abc", http.StatusMethodNotAllowed},
		{http.MethodGet, "/v1/creatures/abc/other", http.StatusNotFound},
		{http.MethodGet, "/v1/creatures/abc/actor/x", http.StatusNotFound},
		{http.MethodDelete, "/v1/creatures/abc/actor", http.StatusMethodNotAllowed},
		{http.MethodGet, "/v1/creatures/abc/actor", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			assert.Equal(t, tt.want, serve(h, tt.method, tt.target, "").Code)
		})
	}
}
