package usecase

import (
	"scroll-agent/internal/config"
	"scroll-agent/internal/ports"
	"scroll-agent/internal/scroll"
	"scroll-agent/internal/usecase/adapters"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Service struct {
	Scroll  adapters.ScrollService
	Browser adapters.BrowserService
}

type Params struct {
	fx.In

	Logger   *zap.Logger
	Config   *config.Config
	Browser  ports.BrowserManager
	Scroller *scroll.Scroller
}

func NewUsecase(params Params) *Service {
	factory := newServiceFactory(params)

	return &Service{
		Scroll:  factory.CreateScrollService(),
		Browser: factory.CreateBrowserService(),
	}
}
