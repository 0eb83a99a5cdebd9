package services

import (
	"context"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/inkwell/backend/internal/infrastructure/blob"
	"github.com/inkwell/backend/repository"
)

const purgeTimeout = time.Minute

// Maintenance runs scheduled housekeeping: uploaded images whose post was
// deleted (or whose image was replaced) are purged from the blob store.
type Maintenance struct {
	cron       *cron.Cron
	blobs      *blob.Store
	posts      repository.PostRepository
	pathPrefix string
	logger     *zap.Logger
}

func NewMaintenance(blobs *blob.Store, posts repository.PostRepository, pathPrefix string, logger *zap.Logger) *Maintenance {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Maintenance{
		cron:       cron.New(),
		blobs:      blobs,
		posts:      posts,
		pathPrefix: pathPrefix,
		logger:     logger,
	}
}

// Start schedules the purge job. The schedule uses standard cron syntax.
func (m *Maintenance) Start(schedule string) error {
	if _, err := m.cron.AddFunc(schedule, m.purgeOrphanedImages); err != nil {
		return err
	}
	m.cron.Start()
	return nil
}

// Stop halts the scheduler and waits for a running job to finish.
func (m *Maintenance) Stop(ctx context.Context) {
	done := m.cron.Stop().Done()
	select {
	case <-done:
	case <-ctx.Done():
	}
}

func (m *Maintenance) purgeOrphanedImages() {
	ctx, cancel := context.WithTimeout(context.Background(), purgeTimeout)
	defer cancel()

	images, err := m.posts.ListImages(ctx)
	if err != nil {
		m.logger.Error("orphan purge: listing post images failed", zap.Error(err))
		return
	}

	referenced := make(map[string]struct{}, len(images))
	for _, image := range images {
		referenced[strings.TrimPrefix(image, m.pathPrefix)] = struct{}{}
	}

	names, err := m.blobs.Names()
	if err != nil {
		m.logger.Error("orphan purge: listing blobs failed", zap.Error(err))
		return
	}

	var purged int
	for _, name := range names {
		if _, ok := referenced[name]; ok {
			continue
		}
		if err := m.blobs.Delete(name); err != nil {
			m.logger.Warn("orphan purge: delete failed", zap.String("name", name), zap.Error(err))
			continue
		}
		purged++
	}

	if purged > 0 {
		m.logger.Info("orphaned images purged", zap.Int("count", purged))
	}
}
