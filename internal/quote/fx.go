package quote

import (
	"github.com/linguasign/certiq/internal/delivery"
	"github.com/linguasign/certiq/internal/quote/service"
	"go.uber.org/fx"
)

var Module = fx.Module("quote.service",
	delivery.Module,
	fx.Provide(service.NewService),
)
