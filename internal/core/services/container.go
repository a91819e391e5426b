package services

import (
	portsrepo "github.com/kdverse/vidtube_backend/internal/core/ports/repositories"
	portssvc "github.com/kdverse/vidtube_backend/internal/core/ports/services"
	"github.com/kdverse/vidtube_backend/internal/platform/config"
)

// NewServiceContainer wires all services against the repository provider.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	tokenService := NewTokenService(cfg)
	return &portssvc.ServiceContainer{
		Auth:  NewAuthService(repos.UserRepo, tokenService, cfg.BcryptCost),
		Token: tokenService,
		User:  NewUserService(repos.UserRepo),
		Video: NewVideoService(repos.VideoRepo, repos.UserRepo),
	}
}
