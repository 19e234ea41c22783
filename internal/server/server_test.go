package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danmuck/cecscope/internal/testutil/testlog"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

type frameReply struct {
	Frame struct {
		Src     string `json:"src"`
		Dst     string `json:"dst"`
		Summary string `json:"summary"`
	} `json:"frame"`
	Input string `json:"input"`
	Error string `json:"error"`
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	logger := testlog.Start(t)
	gin.SetMode(gin.TestMode)
	return New(Options{Name: "test-node", MaxFrameBytes: 8, MaxBatch: 2, Logger: &logger})
}

// newStreamServer logs nowhere; stream handlers can outlive the test.
func newStreamServer(t *testing.T) *Server {
	t.Helper()
	testlog.Start(t)
	gin.SetMode(gin.TestMode)
	nop := zerolog.Nop()
	return New(Options{Name: "test-node", MaxFrameBytes: 8, MaxBatch: 2, Logger: &nop})
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.HTTPRouter().ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w := doJSON(t, s, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" || body["node"] != "test-node" {
		t.Fatalf("unexpected health body: %v", body)
	}
}

func TestMetricsEndpointExposesDecoderCounters(t *testing.T) {
	s := newTestServer(t)
	doJSON(t, s, http.MethodGet, "/v1/decode/1036", nil)
	w := doJSON(t, s, http.MethodGet, "/metrics", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "cecscope_decoder_frames_total") {
		t.Fatalf("metrics output missing decoder counter")
	}
}

func TestDecodeSingleFrame(t *testing.T) {
	s := newTestServer(t)
	w := doJSON(t, s, http.MethodPost, "/v1/decode", map[string]string{"frame": "4f:82:10:00"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
	var reply frameReply
	if err := json.Unmarshal(w.Body.Bytes(), &reply); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if reply.Frame.Src != "Playback Device 1" || reply.Frame.Dst != "Broadcast" {
		t.Fatalf("unexpected addresses: %+v", reply.Frame)
	}
	if reply.Frame.Summary != "Active Source to 1.0.0.0" {
		t.Fatalf("unexpected summary: %q", reply.Frame.Summary)
	}
}

func TestDecodeByPath(t *testing.T) {
	s := newTestServer(t)
	w := doJSON(t, s, http.MethodGet, "/v1/decode/1036", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var reply frameReply
	if err := json.Unmarshal(w.Body.Bytes(), &reply); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if reply.Frame.Summary != "Standby" {
		t.Fatalf("unexpected summary: %q", reply.Frame.Summary)
	}
}

func TestDecodeRejectsBadInput(t *testing.T) {
	s := newTestServer(t)
	cases := []struct {
		name string
		body any
		want int
	}{
		{name: "empty", body: map[string]string{}, want: http.StatusBadRequest},
		{name: "bad hex", body: map[string]string{"frame": "zz"}, want: http.StatusBadRequest},
		{name: "too large", body: map[string]string{"frame": "10:47:41:42:43:44:45:46:47"}, want: http.StatusRequestEntityTooLarge},
		{name: "batch too large", body: map[string][]string{"frames": {"10", "10", "10"}}, want: http.StatusRequestEntityTooLarge},
	}
	for _, tc := range cases {
		w := doJSON(t, s, http.MethodPost, "/v1/decode", tc.body)
		if w.Code != tc.want {
			t.Fatalf("%s: status = %d, want %d (%s)", tc.name, w.Code, tc.want, w.Body.String())
		}
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/decode", strings.NewReader("{"))
	w := httptest.NewRecorder()
	s.HTTPRouter().ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("malformed json: status = %d", w.Code)
	}
}

func TestDecodeBatchReportsPerFrameErrors(t *testing.T) {
	s := newTestServer(t)
	w := doJSON(t, s, http.MethodPost, "/v1/decode", map[string][]string{"frames": {"0f", "nothex"}})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var reply struct {
		Frames []frameReply `json:"frames"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &reply); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(reply.Frames) != 2 {
		t.Fatalf("expected 2 results, got %d", len(reply.Frames))
	}
	if reply.Frames[0].Error != "" || reply.Frames[0].Frame.Summary != "Poll for Broadcast" {
		t.Fatalf("unexpected first result: %+v", reply.Frames[0])
	}
	if reply.Frames[1].Error == "" || reply.Frames[1].Input != "nothex" {
		t.Fatalf("expected an error for the second frame: %+v", reply.Frames[1])
	}
}

func TestStreamDecodesEachMessage(t *testing.T) {
	s := newStreamServer(t)
	ts := httptest.NewServer(s.HTTPRouter())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/v1/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	if err := conn.WriteMessage(websocket.TextMessage, []byte("10:36")); err != nil {
		t.Fatalf("write: %v", err)
	}
	var reply frameReply
	if err := conn.ReadJSON(&reply); err != nil {
		t.Fatalf("read: %v", err)
	}
	if reply.Error != "" || reply.Frame.Summary != "Standby" {
		t.Fatalf("unexpected reply: %+v", reply)
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte("")); err != nil {
		t.Fatalf("write: %v", err)
	}
	reply = frameReply{}
	if err := conn.ReadJSON(&reply); err != nil {
		t.Fatalf("read: %v", err)
	}
	if reply.Error == "" {
		t.Fatalf("expected an error reply for an empty line")
	}
}

func TestStreamRejectsForeignOrigin(t *testing.T) {
	s := newStreamServer(t)
	ts := httptest.NewServer(s.HTTPRouter())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/v1/stream"
	header := http.Header{"Origin": {"http://evil.example"}}
	if _, _, err := websocket.DefaultDialer.Dial(url, header); err == nil {
		t.Fatalf("expected the upgrade to be refused")
	}
}
