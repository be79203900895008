package service

import (
	"context"
	"fmt"
	"time"

	"catalog/navigator/internal/domain"
	"catalog/navigator/internal/domain/task"
	"catalog/navigator/internal/navigator"
	"catalog/navigator/internal/queue"
	"catalog/navigator/internal/repository"

	"golang.org/x/sync/errgroup"

	log "github.com/sirupsen/logrus"
)

// Service is the host side of the navigator: it opens sessions over the
// loaded catalog and persists what they commit
type Service struct {
	loader     *Loader
	repository repository.SelectionRepository
	publisher  queue.Publisher
	owner      string
	mount      navigator.Mount
	now        func() time.Time
}

// NewService wires the host. repository and publisher may be nil when
// persistence or event publishing is disabled.
func NewService(
	loader *Loader,
	repository repository.SelectionRepository,
	publisher queue.Publisher,
	owner string,
) *Service {
	if publisher == nil {
		publisher = queue.NopPublisher{}
	}
	return &Service{
		loader:     loader,
		repository: repository,
		publisher:  publisher,
		owner:      owner,
		now:        time.Now,
	}
}

// Open loads the catalog and starts a browsing session over it
func (s *Service) Open(ctx context.Context) (*navigator.Controller, error) {
	cat, err := s.loader.Load(ctx, s.mount.Begin())
	if err != nil {
		return nil, err
	}

	controller := navigator.NewController(cat, nil)
	controller.Open()
	if cat.IsEmpty() {
		log.Warn("⚠️ No categories found")
	}
	return controller, nil
}

// Unmount invalidates every load still in flight
func (s *Service) Unmount() {
	s.mount.Unmount()
}

// Commit selects node in the controller's session, then saves the selection
// and publishes it concurrently
func (s *Service) Commit(ctx context.Context, controller *navigator.Controller, node *domain.CategoryNode) (domain.Selection, error) {
	selection, err := controller.Select(node)
	if err != nil {
		return domain.Selection{}, err
	}

	g, ctx := errgroup.WithContext(ctx)

	if s.repository != nil {
		g.Go(func() error {
			if err := s.repository.SaveSelection(ctx, s.owner, selection); err != nil {
				log.Errorf("❌ Failed to save selection for %s: %v", s.owner, err)
				return err
			}
			return nil
		})
	}

	g.Go(func() error {
		_, err := s.publisher.Publish(ctx, task.NewSelectionCommittedTask(s.owner, selection, s.now()))
		if err != nil {
			log.Errorf("❌ Failed to publish selection for %s: %v", s.owner, err)
			return fmt.Errorf("failed to publish selection: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return selection, err
	}

	log.Infof("✅ Committed %q for %s", selection.Breadcrumb, s.owner)
	return selection, nil
}
