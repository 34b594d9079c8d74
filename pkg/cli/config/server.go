package config

import (
	"log/slog"

	"github.com/urfave/cli/v3"
)

// Server holds server configuration
type Server struct {
	Addr string
	CORS bool
}

// Flags returns CLI flags for Server configuration
func (s *Server) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Server address",
			Value:       "localhost:8080",
			Sources:     cli.EnvVars("CHECKIN_ADDR"),
			Destination: &s.Addr,
		},
		&cli.BoolFlag{
			Name:        "cors",
			Usage:       "Allow cross-origin requests from a separately hosted frontend",
			Sources:     cli.EnvVars("CHECKIN_CORS"),
			Destination: &s.CORS,
		},
	}
}

// LogValue returns structured log value
func (s Server) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("addr", s.Addr),
		slog.Bool("cors", s.CORS),
	)
}
