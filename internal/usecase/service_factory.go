package usecase

import (
	"scroll-agent/internal/usecase/adapters"
)

type serviceFactory struct {
	deps Params
}

func newServiceFactory(deps Params) *serviceFactory {
	return &serviceFactory{
		deps: deps,
	}
}

func (f *serviceFactory) CreateScrollService() adapters.ScrollService {
	return NewScrollService(ScrollServiceParams{
		Browser:  f.deps.Browser,
		Scroller: f.deps.Scroller,
		Config:   f.deps.Config,
		Logger:   f.deps.Logger,
	})
}

func (f *serviceFactory) CreateBrowserService() adapters.BrowserService {
	return f.deps.Browser
}
