package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/jwebster45206/creature-barn/internal/handlers"
	"github.com/jwebster45206/creature-barn/internal/storage"
	"github.com/jwebster45206/creature-barn/pkg/creature"
)

func testConnection(client *http.Client, baseURL string) bool {
	resp, err := client.Get(baseURL + "/health")
	if err != nil {
		return false
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()
	return resp.StatusCode == http.StatusOK
}

func listCreatures(client *http.Client, baseURL string) ([]storage.Summary, error) {
	var list []storage.Summary
	if err := getJSON(client, baseURL+"/v1/creatures", &list); err != nil {
		return nil, fmt.Errorf("failed to list creatures: %w", err)
	}
	return list, nil
}

func getCreature(client *http.Client, baseURL, id string) (*creature.Creature, error) {
	var c creature.Creature
	if err := getJSON(client, baseURL+"/v1/creatures/"+url.PathEscape(id), &c); err != nil {
		return nil, fmt.Errorf("failed to get creature: %w", err)
	}
	return &c, nil
}

func getActor(client *http.Client, baseURL, id string) (*handlers.ActorResponse, error) {
	var a handlers.ActorResponse
	if err := getJSON(client, baseURL+"/v1/creatures/"+url.PathEscape(id)+"/actor", &a); err != nil {
		return nil, fmt.Errorf("failed to get actor: %w", err)
	}
	return &a, nil
}

func createCreature(client *http.Client, baseURL, text string) (*creature.Creature, error) {
	resp, err := client.Post(baseURL+"/v1/creatures", "text/plain; charset=utf-8", strings.NewReader(text))
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	var c creature.Creature
	if err := decodeResponse(resp, http.StatusCreated, &c); err != nil {
		return nil, fmt.Errorf("failed to create creature: %w", err)
	}
	return &c, nil
}

func getJSON(client *http.Client, u string, v any) error {
	resp, err := client.Get(u)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()
	return decodeResponse(resp, http.StatusOK, v)
}

// decodeResponse unmarshals a successful body into v, or turns an API error
// body into an error.
func decodeResponse(resp *http.Response, want int, v any) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != want {
		var errorResp handlers.ErrorResponse
		if err := json.Unmarshal(body, &errorResp); err != nil || errorResp.Error == "" {
			return fmt.Errorf("API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
		}
		return fmt.Errorf("%s", errorResp.Error)
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
