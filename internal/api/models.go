package api

import (
	"github.com/tcp_snm/codetrack/internal/service/auth_service"
	"github.com/tcp_snm/codetrack/internal/service/catalog_service"
	"github.com/tcp_snm/codetrack/internal/service/import_service"
	"github.com/tcp_snm/codetrack/internal/service/problemset_service"
	"github.com/tcp_snm/codetrack/internal/service/user_service"
)

// multipart uploads above this are rejected
const maxImportSize = 10 << 20

type Api struct {
	AuthServiceConfig       *auth_service.AuthService
	UserServiceConfig       *user_service.UserService
	CatalogServiceConfig    *catalog_service.CatalogService
	ImportServiceConfig     *import_service.ImportService
	ProblemsetServiceConfig *problemset_service.ProblemsetService
	// sets the Secure flag on the session cookie
	SecureCookies bool
}
