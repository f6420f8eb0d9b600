// Package gamerepo owns the controls singleton and the video asset pool.
package gamerepo

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"goalbet/internal/apperr"
	"goalbet/internal/binstore"
	"goalbet/internal/config"
	"goalbet/internal/domain"
)

type Repository struct {
	store binstore.Store
	bins  config.Bins

	controlsMu sync.Mutex
	videosMu   sync.Mutex
}

func New(store binstore.Store, bins config.Bins) *Repository {
	return &Repository{store: store, bins: bins}
}

type controlsDoc struct {
	Controls domain.Controls `json:"controls"`
}

type videosDoc struct {
	Videos domain.VideoPool `json:"videos"`
}

func (r *Repository) readDoc(ctx context.Context, binID string, out any) error {
	raw, err := r.store.ReadBin(ctx, binID)
	if err != nil {
		zap.L().Error("failed to read collection", zap.String("bin", binID), zap.Error(err))
		return apperr.Storagef("database error")
	}
	if err := json.Unmarshal(raw, out); err != nil {
		zap.L().Error("failed to decode collection", zap.String("bin", binID), zap.Error(err))
		return apperr.Storagef("database error")
	}
	return nil
}

func (r *Repository) writeDoc(ctx context.Context, binID string, doc any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		zap.L().Error("failed to encode collection", zap.String("bin", binID), zap.Error(err))
		return apperr.Storagef("database error")
	}
	if err := r.store.WriteBin(ctx, binID, raw); err != nil {
		zap.L().Error("failed to write collection", zap.String("bin", binID), zap.Error(err))
		return apperr.Storagef("database error")
	}
	return nil
}

func (r *Repository) Controls(ctx context.Context) (domain.Controls, error) {
	var doc controlsDoc
	if err := r.readDoc(ctx, r.bins.Controls, &doc); err != nil {
		return domain.Controls{}, err
	}
	return doc.Controls, nil
}

func (r *Repository) MutateControls(ctx context.Context, fn func(controls domain.Controls) (domain.Controls, error)) error {
	r.controlsMu.Lock()
	defer r.controlsMu.Unlock()

	var doc controlsDoc
	if err := r.readDoc(ctx, r.bins.Controls, &doc); err != nil {
		return err
	}
	updated, err := fn(doc.Controls)
	if err != nil {
		return err
	}
	return r.writeDoc(ctx, r.bins.Controls, controlsDoc{Controls: updated})
}

func (r *Repository) Videos(ctx context.Context) (domain.VideoPool, error) {
	var doc videosDoc
	if err := r.readDoc(ctx, r.bins.Videos, &doc); err != nil {
		return domain.VideoPool{}, err
	}
	return doc.Videos, nil
}

func (r *Repository) MutateVideos(ctx context.Context, fn func(pool domain.VideoPool) (domain.VideoPool, error)) error {
	r.videosMu.Lock()
	defer r.videosMu.Unlock()

	var doc videosDoc
	if err := r.readDoc(ctx, r.bins.Videos, &doc); err != nil {
		return err
	}
	updated, err := fn(doc.Videos)
	if err != nil {
		return err
	}
	return r.writeDoc(ctx, r.bins.Videos, videosDoc{Videos: updated})
}
