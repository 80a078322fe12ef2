// Package keyfetchtest runs an in-process stand-in for the backend's public key
// endpoint.
package keyfetchtest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gorilla/mux"

	"paramseal/internal/keyfetch"
)

// Server serves a configurable body at keyfetch.PublicKeyPath.
type Server struct {
	*httptest.Server

	mu          sync.Mutex
	body        string
	contentType string
	failures    int
	failStatus  int
	status      int
	hits        int
	requestIDs  []string
}

// NewServer starts a server answering with body and registers its shutdown
// with t.
func NewServer(t testing.TB, body string) *Server {
	t.Helper()

	s := &Server{body: body, contentType: "application/json", status: http.StatusOK}
	router := mux.NewRouter()
	router.HandleFunc(keyfetch.PublicKeyPath, s.publicKey).Methods(http.MethodGet)
	s.Server = httptest.NewServer(router)
	t.Cleanup(s.Close)
	return s
}

// JSONBody renders the object form of the key response.
func JSONBody(publicKey, keyID string) string {
	b, _ := json.Marshal(map[string]string{"public_key": publicKey, "key_id": keyID})
	return string(b)
}

// SetBody replaces the response body and its content type.
func (s *Server) SetBody(body, contentType string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.body, s.contentType = body, contentType
}

// SetStatus makes every following response use code.
func (s *Server) SetStatus(code int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = code
}

// FailNext answers the next n requests with code before serving normally again.
func (s *Server) FailNext(n, code int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures, s.failStatus = n, code
}

// Hits is the number of requests served so far.
func (s *Server) Hits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits
}

// RequestIDs returns the request ID header of every request, in order.
func (s *Server) RequestIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requestIDs...)
}

func (s *Server) publicKey(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.hits++
	s.requestIDs = append(s.requestIDs, r.Header.Get(keyfetch.RequestIDHeader))
	if s.failures > 0 {
		s.failures--
		code := s.failStatus
		s.mu.Unlock()
		http.Error(w, http.StatusText(code), code)
		return
	}
	body, contentType, status := s.body, s.contentType, s.status
	s.mu.Unlock()

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
