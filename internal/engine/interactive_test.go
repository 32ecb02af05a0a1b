package engine

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sotalab/llm-bridge/internal/model"
)

// chatStub records the messages payload of every request and streams a
// fixed reply, failing requests whose latest user turn contains "fail".
func chatStub(t *testing.T, payloads *[][]model.Message) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Messages []model.Message `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		*payloads = append(*payloads, req.Messages)

		last := req.Messages[len(req.Messages)-1]
		if strings.Contains(last.Content, "fail") {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}

		fmt.Fprintln(w, `{"message":{"content":"Acknowledged."}}`)
		fmt.Fprintln(w, `{"done":true,"eval_count":3,"eval_duration":1000000000}`)
	}))
}

func TestRunInteractive_TurnExchange(t *testing.T) {
	var payloads [][]model.Message
	srv := chatStub(t, &payloads)
	defer srv.Close()

	in := strings.NewReader("hello there\nquit\n")
	var out strings.Builder

	err := RunInteractive(testConfig(), srv.URL, in, &out)
	require.NoError(t, err)

	require.Len(t, payloads, 1)
	require.Len(t, payloads[0], 2) // system + user
	assert.Equal(t, model.RoleSystem, payloads[0][0].Role)
	assert.Equal(t, "hello there", payloads[0][1].Content)

	assert.Contains(t, out.String(), "bot> Acknowledged.")
	assert.Contains(t, out.String(), "| 1 turns]")
	assert.Contains(t, out.String(), "[exiting chat]")
}

func TestRunInteractive_HistoryAccumulatesAcrossTurns(t *testing.T) {
	var payloads [][]model.Message
	srv := chatStub(t, &payloads)
	defer srv.Close()

	in := strings.NewReader("first\nsecond\nquit\n")
	var out strings.Builder

	require.NoError(t, RunInteractive(testConfig(), srv.URL, in, &out))

	require.Len(t, payloads, 2)
	// Second request carries the full first exchange.
	require.Len(t, payloads[1], 4) // system, user, assistant, user
	assert.Equal(t, "first", payloads[1][1].Content)
	assert.Equal(t, "Acknowledged.", payloads[1][2].Content)
	assert.Equal(t, "second", payloads[1][3].Content)
}

func TestRunInteractive_FailedExchangeIsRolledBack(t *testing.T) {
	var payloads [][]model.Message
	srv := chatStub(t, &payloads)
	defer srv.Close()

	in := strings.NewReader("please fail\nclean turn\nquit\n")
	var out strings.Builder

	require.NoError(t, RunInteractive(testConfig(), srv.URL, in, &out))

	require.Len(t, payloads, 2)
	// The failed user turn must not appear in the next request.
	require.Len(t, payloads[1], 2)
	assert.Equal(t, "clean turn", payloads[1][1].Content)
	assert.Contains(t, out.String(), "[error]")
}

func TestRunInteractive_ResetClearsHistory(t *testing.T) {
	var payloads [][]model.Message
	srv := chatStub(t, &payloads)
	defer srv.Close()

	in := strings.NewReader("first\nreset\nsecond\nquit\n")
	var out strings.Builder

	require.NoError(t, RunInteractive(testConfig(), srv.URL, in, &out))

	require.Len(t, payloads, 2)
	require.Len(t, payloads[1], 2) // history gone after reset
	assert.Equal(t, "second", payloads[1][1].Content)
	assert.Contains(t, out.String(), "[history cleared]")
}

func TestRunInteractive_EOFActsAsQuit(t *testing.T) {
	var payloads [][]model.Message
	srv := chatStub(t, &payloads)
	defer srv.Close()

	var out strings.Builder
	err := RunInteractive(testConfig(), srv.URL, strings.NewReader(""), &out)
	require.NoError(t, err)
	assert.Empty(t, payloads)
}

func TestRunInteractive_BlankLinesIgnored(t *testing.T) {
	var payloads [][]model.Message
	srv := chatStub(t, &payloads)
	defer srv.Close()

	var out strings.Builder
	require.NoError(t, RunInteractive(testConfig(), srv.URL, strings.NewReader("\n   \nquit\n"), &out))
	assert.Empty(t, payloads)
}
