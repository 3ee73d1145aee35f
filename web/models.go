package web

import (
	"context"

	"scorecast/api/api"
)

// Config holds the configuration for the web server
type Config struct {
	Addr string
	API  *api.API
}

// Server is the HTTP server that handles webhook and read-only JSON requests
type Server struct {
	api *api.API

	// refresh is the pipeline kicked off by the results webhook. Split out so
	// tests can observe the async kick without a real feed
	refresh func(ctx context.Context) error
}

func newServer(apiPtr *api.API) *Server {
	return &Server{
		api:     apiPtr,
		refresh: apiPtr.RefreshData,
	}
}
