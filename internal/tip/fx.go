package tip

import (
	"github.com/smallbiznis/tipfolio/internal/tip/repository"
	"github.com/smallbiznis/tipfolio/internal/tip/service"
	"go.uber.org/fx"
)

var Module = fx.Module("tip.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
