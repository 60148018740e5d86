package adapters

import (
	"context"

	"scroll-agent/internal/entity"
	"scroll-agent/internal/scroll"
)

type ScrollService interface {
	ScrollTo(ctx context.Context, selector string, opts scroll.Options) (*entity.ScrollRecord, error)
}

type BrowserService interface {
	Launch(ctx context.Context) error
	Close(ctx context.Context) error
	Navigate(ctx context.Context, url string) error
	ScrollableCandidates(ctx context.Context) ([]entity.ScrollableCandidate, error)
	IsReady() bool
}
