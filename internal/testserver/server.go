// Package testserver hosts a gin router emulating the two batch endpoints
// batchclient dispatches against — SharePoint REST's POST {site}/_api/$batch
// and Graph's POST /beta/$batch — for integration-style tests that exercise
// the real internal/transport HTTP clients instead of fakes.
package testserver

import (
	"fmt"
	"io"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/batchwerk/spobatch/internal/logging"
	"github.com/batchwerk/spobatch/internal/netutil"
)

// RestResponder is invoked with the raw multipart/mixed body of an incoming
// REST $batch request and returns the status and body to answer with,
// standing in for whatever a real SharePoint tenant would compute.
type RestResponder func(body string) (status int, response string)

// GraphResponder is the Graph-family analogue of RestResponder, invoked
// with the raw JSON envelope body.
type GraphResponder func(body string) (status int, response string)

// Server is a scriptable fake backend for both batch families.
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	listener   net.Listener

	restResponder  RestResponder
	graphResponder GraphResponder
}

// New builds a Server with default responders that answer every request
// with an empty 200. Call SetRestResponder/SetGraphResponder to script
// specific test scenarios.
func New() *Server {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		router: router,
		restResponder: func(string) (int, string) {
			return http.StatusOK, "--batchresponse--\r\n"
		},
		graphResponder: func(string) (int, string) {
			return http.StatusOK, `{"responses":[]}`
		},
	}

	router.POST("/sites/:site/_api/$batch", s.handleRestBatch)
	router.POST("/beta/$batch", s.handleGraphBatch)

	return s
}

// SetRestResponder replaces the REST $batch responder.
func (s *Server) SetRestResponder(r RestResponder) { s.restResponder = r }

// SetGraphResponder replaces the Graph beta/$batch responder.
func (s *Server) SetGraphResponder(r GraphResponder) { s.graphResponder = r }

func (s *Server) handleRestBatch(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.String(http.StatusBadRequest, "failed to read body: %v", err)
		return
	}

	status, resp := s.restResponder(string(body))
	c.Header("Content-Type", "multipart/mixed; boundary=batchresponse")
	c.String(status, "%s", resp)
}

func (s *Server) handleGraphBatch(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.String(http.StatusBadRequest, "failed to read body: %v", err)
		return
	}

	status, resp := s.graphResponder(string(body))
	c.Data(status, "application/json", []byte(resp))
}

// Start binds an OS-assigned port and begins serving in the background,
// pre-binding via netutil to avoid the discover-then-bind race a plain
// httptest.Server sidesteps by binding synchronously in-process. Returns
// the base URL requests should target (e.g. "http://127.0.0.1:54321").
func (s *Server) Start() (string, error) {
	binder := netutil.NewPortBinder()
	listener, err := binder.BindTCP("127.0.0.1", 0)
	if err != nil {
		return "", fmt.Errorf("testserver: binding listener: %w", err)
	}
	port, err := binder.GetListenerPort(listener)
	if err != nil {
		listener.Close()
		return "", fmt.Errorf("testserver: reading bound port: %w", err)
	}

	s.listener = listener
	s.httpServer = &http.Server{Handler: s.router}

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			logging.Error("testserver: serve failed: %v", err)
		}
	}()

	return fmt.Sprintf("http://127.0.0.1:%d", port), nil
}

// Close shuts down the server and releases its listener.
func (s *Server) Close() error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Close()
}
