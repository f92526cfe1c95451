// Package oracle provides transport for prior/value oracles that do not
// live in-process: a JSON-over-HTTP client implementing game.Oracle and a
// server harness exposing any local oracle, mirroring the external
// model-server split. The searcher treats transport failures like any other
// oracle failure and falls back to uniform priors.
package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"mathsearch/expr"
	"mathsearch/game"

	"github.com/rs/zerolog/log"
)

type evaluateRequest struct {
	Expression string        `json:"expression"`
	MoveCount  int           `json:"moveCount"`
	Actions    []game.Action `json:"actions"`
}

type evaluateResponse struct {
	Priors []float64 `json:"priors"`
	Value  float64   `json:"value"`
}

// Client queries a remote oracle over HTTP. Evaluate honors the caller's
// context, so a slow model server delays only the simulation that asked.
type Client struct {
	url    string
	client *http.Client
}

func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

func (c *Client) Evaluate(ctx context.Context, state game.State, actions []game.Action) (game.Prediction, error) {
	payload, err := json.Marshal(evaluateRequest{
		Expression: state.Root.String(),
		MoveCount:  state.MoveCount,
		Actions:    actions,
	})
	if err != nil {
		return game.Prediction{}, fmt.Errorf("failed to encode oracle request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return game.Prediction{}, fmt.Errorf("failed to build oracle request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return game.Prediction{}, fmt.Errorf("oracle request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return game.Prediction{}, fmt.Errorf("oracle returned status %d", resp.StatusCode)
	}

	var decoded evaluateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return game.Prediction{}, fmt.Errorf("failed to decode oracle response: %w", err)
	}
	return game.Prediction{Priors: decoded.Priors, Value: decoded.Value}, nil
}

// Handler serves a local oracle at /evaluate. The wire state carries the
// rendered expression; the handler re-parses it, so oracles behind the
// server see a state with the same tree but without episode history.
func Handler(local game.Oracle) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/evaluate", func(w http.ResponseWriter, r *http.Request) {
		var req evaluateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
			return
		}
		root, err := expr.Parse(req.Expression)
		if err != nil {
			http.Error(w, "bad expression: "+err.Error(), http.StatusBadRequest)
			return
		}

		prediction, err := local.Evaluate(r.Context(), game.NewState(root), req.Actions)
		if err != nil {
			http.Error(w, "evaluation failed: "+err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(evaluateResponse{
			Priors: prediction.Priors,
			Value:  prediction.Value,
		}); err != nil {
			http.Error(w, "failed to encode response: "+err.Error(), http.StatusInternalServerError)
		}
	})
	return mux
}

// Serve blocks serving the local oracle on addr.
func Serve(addr string, local game.Oracle) error {
	log.Info().Str("addr", addr).Msg("starting oracle server")
	return http.ListenAndServe(addr, Handler(local))
}
