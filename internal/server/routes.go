package server

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/danmuck/cecscope/internal/capture"
	"github.com/danmuck/cecscope/internal/cec"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ErrNoFrames      = errors.New("server: no frames in request")
	ErrBatchTooLarge = errors.New("server: too many frames in request")
)

type decodeRequest struct {
	Frame  string   `json:"frame"`
	Frames []string `json:"frames"`
}

// decodeResult is one entry of a batch reply.
type decodeResult struct {
	Input string            `json:"input"`
	Frame *cec.DecodedFrame `json:"frame,omitempty"`
	Error string            `json:"error,omitempty"`
}

func (s *Server) registerRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"uptime":  time.Since(s.Appeared).String(),
			"node":    s.Name,
			"version": "0.1.0",
		})
	})

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := s.router.Group("/v1")
	v1.POST("/decode", s.handleDecode)
	v1.GET("/decode/:frame", func(c *gin.Context) {
		s.respondSingle(c, c.Param("frame"))
	})
	v1.GET("/stream", s.handleStream)
}

func (s *Server) handleDecode(c *gin.Context) {
	var req decodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if len(req.Frames) == 0 {
		if req.Frame == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": ErrNoFrames.Error()})
			return
		}
		s.respondSingle(c, req.Frame)
		return
	}

	if len(req.Frames) > s.opts.MaxBatch {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": fmt.Sprintf("%v: %d > %d", ErrBatchTooLarge, len(req.Frames), s.opts.MaxBatch),
		})
		return
	}
	results := make([]decodeResult, 0, len(req.Frames))
	for _, line := range req.Frames {
		res := decodeResult{Input: line}
		f, _, err := s.decodeLine(line)
		if err != nil {
			res.Error = err.Error()
		} else {
			res.Frame = f
		}
		results = append(results, res)
	}
	c.JSON(http.StatusOK, gin.H{"frames": results})
}

func (s *Server) respondSingle(c *gin.Context, line string) {
	f, status, err := s.decodeLine(line)
	if err != nil {
		c.JSON(status, gin.H{"input": line, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"frame": f})
}

// decodeLine parses one text frame and decodes it, returning the HTTP status
// that fits the failure.
func (s *Server) decodeLine(line string) (*cec.DecodedFrame, int, error) {
	data, err := capture.ParseLine(line)
	if errors.Is(err, capture.ErrSkipLine) {
		err = cec.ErrInvalidFrame
	}
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	if len(data) > s.opts.MaxFrameBytes {
		return nil, http.StatusRequestEntityTooLarge,
			fmt.Errorf("%w: %d > %d bytes", capture.ErrFrameTooLarge, len(data), s.opts.MaxFrameBytes)
	}
	f, err := s.decoder.Decode(data)
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	return f, http.StatusOK, nil
}

// handleStream decodes each text message of a websocket session and replies
// with the decoded frame, or an error object for lines that do not decode.
func (s *Server) handleStream(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Warn().Err(err).Str("node", s.Name).Msg("stream upgrade failed")
		return
	}
	defer conn.Close()
	conn.SetReadLimit(4096)

	for {
		mt, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Warn().Err(err).Str("node", s.Name).Msg("stream closed")
			}
			return
		}
		if mt != websocket.TextMessage {
			continue
		}
		line := string(msg)
		var reply any
		if f, _, err := s.decodeLine(line); err != nil {
			reply = decodeResult{Input: line, Error: err.Error()}
		} else {
			reply = decodeResult{Input: line, Frame: f}
		}
		if err := conn.WriteJSON(reply); err != nil {
			s.logger.Warn().Err(err).Str("node", s.Name).Msg("stream write failed")
			return
		}
	}
}
