package http

import "net/http"

// Router exposes the router for httptest
func (s *Server) Router() http.Handler {
	return s.router
}

var ErrorStatus = errorStatus
