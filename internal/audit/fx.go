package audit

import (
	"github.com/linguasign/certiq/internal/audit/repository"
	"github.com/linguasign/certiq/internal/audit/service"
	"go.uber.org/fx"
)

var Module = fx.Module("audit.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
