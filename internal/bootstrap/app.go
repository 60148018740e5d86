package bootstrap

import (
	"time"

	"scroll-agent/internal/browser"
	"scroll-agent/internal/config"
	"scroll-agent/internal/console"
	"scroll-agent/internal/ports"
	"scroll-agent/internal/scroll"
	"scroll-agent/internal/usecase"

	"go.uber.org/fx"
)

func NewApp() *fx.App {
	return fx.New(
		fx.Provide(
			config.GetConfig,
			newLogger,
			newTraceProvider,

			fx.Annotate(browser.NewManager, fx.As(new(ports.BrowserManager), new(ports.Session))),

			scroll.NewScroller,
			usecase.NewUsecase,

			console.NewInterface,
		),

		fx.Invoke(
			runConsole,
		),

		fx.StartTimeout(10*time.Second),
	)
}
