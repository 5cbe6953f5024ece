package services

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"

	"ptm-api/apperrors"
	"ptm-api/database"
	"ptm-api/models"
)

// StatisticsSource liefert das Statistik-JSON (Datei oder S3-Objekt).
type StatisticsSource interface {
	Fetch(ctx context.Context) ([]byte, error)
	Name() string
}

type FileSource struct {
	Path string
}

func (f FileSource) Fetch(context.Context) ([]byte, error) {
	return os.ReadFile(f.Path)
}

func (f FileSource) Name() string { return "file:" + f.Path }

// ObjectGetter ist der Teil von storage.Bucket, den BucketSource braucht.
type ObjectGetter interface {
	Get(ctx context.Context, key string) ([]byte, error)
}

type BucketSource struct {
	Bucket ObjectGetter
	Key    string
}

func (b BucketSource) Fetch(ctx context.Context) ([]byte, error) {
	return b.Bucket.Get(ctx, b.Key)
}

func (b BucketSource) Name() string { return "s3:" + b.Key }

// StatisticsService hält den zuletzt erfolgreich geladenen Snapshot.
type StatisticsService struct {
	Source StatisticsSource
	Logger *zap.Logger

	mu       sync.RWMutex
	data     []byte
	loadedAt time.Time
}

func NewStatisticsService(src StatisticsSource, logger *zap.Logger) *StatisticsService {
	return &StatisticsService{Source: src, Logger: logger}
}

// Reload lädt neu. Bei Fehlern bleibt der alte Snapshot erhalten.
func (s *StatisticsService) Reload(ctx context.Context) error {
	data, err := s.Source.Fetch(ctx)
	if err == nil && !json.Valid(data) {
		err = errors.New("statistics snapshot is not valid JSON")
	}
	if err != nil {
		statisticsReloadsCounter.WithLabelValues("error").Inc()
		s.Logger.Error("Statistics reload failed", zap.String("source", s.Source.Name()), zap.Error(err))
		return apperrors.Upstream("load statistics", err)
	}

	s.mu.Lock()
	s.data = data
	s.loadedAt = time.Now()
	s.mu.Unlock()

	statisticsReloadsCounter.WithLabelValues("ok").Inc()
	s.Logger.Info("Statistics reloaded", zap.String("source", s.Source.Name()), zap.Int("bytes", len(data)))
	return nil
}

// Current gibt den Snapshot zurück; ohne erfolgreichen Ladevorgang wird
// einmal synchron geladen.
func (s *StatisticsService) Current(ctx context.Context) ([]byte, error) {
	s.mu.RLock()
	data := s.data
	s.mu.RUnlock()
	if data != nil {
		return data, nil
	}
	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data, nil
}

// ComputeStatistics zählt Einträge und Events für den Snapshot.
func ComputeStatistics(ctx context.Context, q database.Querier, now time.Time) (*models.Statistics, error) {
	stats := &models.Statistics{
		GeneratedAt:    now.UTC().Format(time.RFC3339),
		EventsByPTM:    map[string]int64{},
		EventsBySource: map[string]int64{},
	}

	count := func(query string, dst *int64) error {
		_, err := database.QueryOne(ctx, q, query, nil, func(row database.Row) error {
			*dst, _ = row.Int64("n")
			return nil
		})
		return err
	}
	group := func(query, column string, dst map[string]int64) error {
		return q.Query(ctx, query, nil, func(row database.Row) error {
			k, ok := row.String(column)
			if !ok {
				return nil
			}
			dst[k], _ = row.Int64("n")
			return nil
		})
	}

	if err := count(database.EntryCountQuery, &stats.Entries); err != nil {
		return nil, err
	}
	if err := count(database.SubstrateCountQuery, &stats.Substrates); err != nil {
		return nil, err
	}
	if err := group(database.EventCountByPTMQuery, "event_name", stats.EventsByPTM); err != nil {
		return nil, err
	}
	if err := group(database.EventCountBySrcQuery, "source_label", stats.EventsBySource); err != nil {
		return nil, err
	}
	return stats, nil
}
