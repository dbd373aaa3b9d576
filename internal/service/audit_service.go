package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-room-console/internal/models"
	"github.com/noah-isme/sma-room-console/pkg/jobs"
)

type auditRepository interface {
	Insert(ctx context.Context, entry *models.AuditLog) error
}

// AuditConfig tunes the background writer.
type AuditConfig struct {
	Enabled    bool
	Workers    int
	MaxRetries int
	RetryDelay time.Duration
}

// AuditService writes audit records through an in-memory job queue so request
// latency never includes the insert.
type AuditService struct {
	repo    auditRepository
	queue   *jobs.Queue[models.AuditLog]
	metrics *MetricsService
	logger  *zap.Logger
	enabled bool
	now     func() time.Time
}

func NewAuditService(repo auditRepository, metrics *MetricsService, cfg AuditConfig, logger *zap.Logger) *AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &AuditService{repo: repo, metrics: metrics, logger: logger, enabled: cfg.Enabled && repo != nil, now: time.Now}
	s.queue = jobs.NewQueue[models.AuditLog]("audit", s.handle, jobs.QueueConfig{
		Workers:    cfg.Workers,
		MaxRetries: cfg.MaxRetries,
		RetryDelay: cfg.RetryDelay,
		Logger:     logger,
	})
	return s
}

// Start launches the queue workers.
func (s *AuditService) Start(ctx context.Context) {
	if s == nil || !s.enabled {
		return
	}
	s.queue.Start(ctx)
}

// Stop cancels the workers; queued records not yet written are dropped.
func (s *AuditService) Stop() {
	if s == nil || !s.enabled {
		return
	}
	s.queue.Stop()
}

// Record enqueues entry. Failures are logged and counted, never returned.
func (s *AuditService) Record(entry models.AuditLog) {
	if s == nil || !s.enabled {
		return
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.now().UTC()
	}
	if _, err := s.queue.Enqueue(entry); err != nil {
		s.metrics.RecordAudit("dropped")
		s.logger.Warn("audit enqueue failed", zap.String("action", entry.Action), zap.String("resource", entry.Resource), zap.Error(err))
	}
}

func (s *AuditService) handle(ctx context.Context, job jobs.Job[models.AuditLog]) error {
	entry := job.Payload
	insertCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.repo.Insert(insertCtx, &entry); err != nil {
		s.metrics.RecordAudit("failed")
		return err
	}
	s.metrics.RecordAudit("written")
	return nil
}
