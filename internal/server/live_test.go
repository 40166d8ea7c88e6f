package server

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jonathan/markup-validator/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialLive(t *testing.T, s *Server) *websocket.Conn {
	t.Helper()
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/live"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	_ = resp.Body.Close()
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	return conn
}

func TestLive_ValidatesEachFrame(t *testing.T) {
	conn := dialLive(t, newTestServer(t))

	frames := []struct {
		markup    string
		wantValid bool
	}{
		{markup: validDocument, wantValid: true},
		{markup: "<div><span>x</div>", wantValid: false},
	}

	for _, f := range frames {
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(f.markup)))

		var resp struct {
			Report struct {
				IsValid bool            `json:"is_valid"`
				Errors  []types.Finding `json:"errors"`
			} `json:"report"`
			Preview *struct {
				Title string `json:"title"`
			} `json:"preview"`
			Error string `json:"error"`
		}
		require.NoError(t, conn.ReadJSON(&resp))

		assert.Equal(t, f.wantValid, resp.Report.IsValid)
		assert.Empty(t, resp.Error)
		require.NotNil(t, resp.Preview)
	}
}

func TestLive_PreviewTitle(t *testing.T) {
	conn := dialLive(t, newTestServer(t))

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(validDocument)))

	var resp LiveResponse
	require.NoError(t, conn.ReadJSON(&resp))
	require.NotNil(t, resp.Preview)
	assert.Equal(t, "Hello", resp.Preview.Title)
}

func TestLive_RejectsBinaryFrames(t *testing.T) {
	conn := dialLive(t, newTestServer(t))

	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, []byte{0x01, 0x02}))

	var resp map[string]any
	require.NoError(t, conn.ReadJSON(&resp))
	assert.Equal(t, "expected a text frame containing markup", resp["error"])
	assert.NotContains(t, resp, "report")
}

func TestLive_RequiresUpgrade(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, "GET", "/live", "")

	assert.Equal(t, 400, w.Code)
}
