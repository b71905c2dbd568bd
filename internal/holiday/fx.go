package holiday

import (
	"github.com/linguasign/certiq/internal/holiday/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("holiday",
	fx.Provide(repository.Provide),
)
