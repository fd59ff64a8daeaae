package config

import (
	"net/url"
	"strings"
)

// ServerType selects which backend environment the app points at
type ServerType string

const (
	ServerManual     ServerType = "manual"
	ServerTest       ServerType = "test"
	ServerStaging    ServerType = "staging"
	ServerProduction ServerType = "production"
)

const (
	DefaultManualHost = "localhost:8000"
	testHost          = "dev.prepcirca.com/api/v1"
)

// ParseServerType maps a SERVER_TYPE value. Empty means test, anything
// unrecognised means manual.
func ParseServerType(s string) ServerType {
	switch t := ServerType(strings.ToLower(strings.TrimSpace(s))); t {
	case "":
		return ServerTest
	case ServerTest, ServerStaging, ServerProduction:
		return t
	default:
		return ServerManual
	}
}

// Server is the resolved backend location
type Server struct {
	Type       ServerType
	ManualHost string
}

// AppServerScheme returns the scheme requests would use. A manual host keeps
// an http(s) scheme it was written with and otherwise falls back to http.
func (s Server) AppServerScheme() string {
	if s.Type != ServerManual {
		return "https"
	}
	u, err := url.Parse(s.manualHost())
	if err != nil || !strings.HasPrefix(u.Scheme, "http") {
		return "http"
	}
	return u.Scheme
}

// AppServerHost returns host[:port] and base path without a scheme.
// Staging and production hosts are not provisioned and read as empty.
func (s Server) AppServerHost() string {
	switch s.Type {
	case ServerManual:
		raw := s.manualHost()
		u, err := url.Parse(raw)
		if err != nil || u.Host == "" {
			return raw
		}
		return u.Host
	case ServerTest:
		return testHost
	default:
		return ""
	}
}

// URL joins scheme and host, empty when the host is not provisioned
func (s Server) URL() string {
	host := s.AppServerHost()
	if host == "" {
		return ""
	}
	return s.AppServerScheme() + "://" + host
}

func (s Server) manualHost() string {
	if s.ManualHost == "" {
		return DefaultManualHost
	}
	return s.ManualHost
}
