package oracle

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"mathsearch/expr"
	"mathsearch/game"
	"mathsearch/searcher"
)

func TestClientServerRoundTrip(t *testing.T) {
	server := httptest.NewServer(Handler(game.HeuristicOracle{}))
	defer server.Close()

	client := NewClient(server.URL+"/evaluate", time.Second)
	state := game.NewState(expr.MustParse("2x + 4x"))
	actions := state.Actions()

	prediction, err := client.Evaluate(context.Background(), state, actions)
	require.NoError(t, err)
	require.Len(t, prediction.Priors, len(actions))

	// The server re-parses the rendered expression, so the remote answer
	// matches the in-process one.
	local, err := game.HeuristicOracle{}.Evaluate(context.Background(), state, actions)
	require.NoError(t, err)
	require.InDeltaSlice(t, local.Priors, prediction.Priors, 1e-9)
	require.InDelta(t, local.Value, prediction.Value, 1e-9)
}

func TestClientErrors(t *testing.T) {
	t.Run("non-200 status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "model loading", http.StatusServiceUnavailable)
		}))
		defer server.Close()

		client := NewClient(server.URL, time.Second)
		_, err := client.Evaluate(context.Background(), game.NewState(expr.Const(1)), nil)
		require.ErrorContains(t, err, "status 503")
	})

	t.Run("malformed body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte("not json"))
		}))
		defer server.Close()

		client := NewClient(server.URL, time.Second)
		_, err := client.Evaluate(context.Background(), game.NewState(expr.Const(1)), nil)
		require.ErrorContains(t, err, "decode")
	})

	t.Run("unreachable server", func(t *testing.T) {
		client := NewClient("http://127.0.0.1:1/evaluate", 100*time.Millisecond)
		_, err := client.Evaluate(context.Background(), game.NewState(expr.Const(1)), nil)
		require.Error(t, err)
	})
}

func TestHandlerRejectsBadInput(t *testing.T) {
	handler := Handler(game.UniformOracle{})

	t.Run("invalid json", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/evaluate", strings.NewReader("{"))
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unparseable expression", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/evaluate",
			strings.NewReader(`{"expression": "2x ++", "actions": []}`))
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

// TestSearchOverHTTP runs a whole search with the oracle behind the wire.
func TestSearchOverHTTP(t *testing.T) {
	server := httptest.NewServer(Handler(game.HeuristicOracle{}))
	defer server.Close()

	client := NewClient(server.URL+"/evaluate", time.Second)
	env := game.NewEnv(game.SingleConstant, 5)
	mcts := searcher.NewMCTS(env, client, 2, searcher.WithSimulations(60), searcher.WithMetrics())

	policy, searched := mcts.Simulate(context.Background(), env.InitialState(expr.MustParse("2 + 2")))
	require.Equal(t, "CA@1", policy.Best().String())
	require.Zero(t, searched.OracleFailures)
}
