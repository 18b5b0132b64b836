package service

import (
	"context"
	"fmt"

	"github.com/redstonehub/laurel/internal/domain/aggregate"
	"github.com/redstonehub/laurel/internal/domain/model"
	"github.com/redstonehub/laurel/internal/domain/types"
	"github.com/redstonehub/laurel/internal/domain/validation"
	"github.com/redstonehub/laurel/pkg/logger"
	"github.com/redstonehub/laurel/pkg/metrics"
)

// WbcOutcome is the result of a Weekly Best Content write: the written
// record, or the rejection reason with nothing written.
type WbcOutcome struct {
	OK     bool             `json:"ok"`
	Record *model.WbcRecord `json:"record,omitempty"`
	Reason string           `json:"reason,omitempty"`
}

// CreateWbc validates p and creates the weekly record.
func (s *Service) CreateWbc(ctx context.Context, p model.WbcPayload) (WbcOutcome, error) {
	p = p.Trimmed()
	if err := s.validator.Wbc(p); err != nil {
		return s.rejectWbc(ctx, "create", err)
	}
	rec, err := s.store.CreateWbc(ctx, p)
	if err != nil {
		return WbcOutcome{}, err
	}
	s.afterWrite(ctx, model.KindWbc, "create", model.Filters{Month: p.Month, Year: p.Year})
	return WbcOutcome{OK: true, Record: &rec}, nil
}

// UpdateWbc validates p and replaces the weekly record.
func (s *Service) UpdateWbc(ctx context.Context, id model.RecordID, p model.WbcPayload) (WbcOutcome, error) {
	p = p.Trimmed()
	if err := s.validator.Wbc(p); err != nil {
		return s.rejectWbc(ctx, "update", err)
	}
	rec, err := s.store.UpdateWbc(ctx, id, p)
	if err != nil {
		return WbcOutcome{}, err
	}
	s.afterWrite(ctx, model.KindWbc, "update", model.Filters{Month: p.Month, Year: p.Year})
	return WbcOutcome{OK: true, Record: &rec}, nil
}

// DeleteWbc removes a weekly record.
func (s *Service) DeleteWbc(ctx context.Context, id model.RecordID) error {
	if err := s.store.Delete(ctx, model.KindWbc, id); err != nil {
		return err
	}
	s.afterWrite(ctx, model.KindWbc, "delete", model.Filters{})
	return nil
}

// WbcMonths returns every month with its weeks, most recent month first.
func (s *Service) WbcMonths(ctx context.Context) ([]types.WbcMonth, error) {
	all, err := s.allWbc(ctx)
	if err != nil {
		return nil, err
	}
	return aggregate.WbcMonths(all, s.previewSize), nil
}

// WbcEntry resolves a deep link by id, or by month and week label or
// date range.
func (s *Service) WbcEntry(ctx context.Context, id model.RecordID, month, week string) (types.WbcEntry, error) {
	all, err := s.allWbc(ctx)
	if err != nil {
		return types.WbcEntry{}, err
	}
	entry, ok := aggregate.WbcEntry(all, id, month, week)
	if !ok {
		return types.WbcEntry{}, fmt.Errorf("%w: id=%q month=%q week=%q", ErrRecordNotFound, id, month, week)
	}
	return entry, nil
}

func (s *Service) allWbc(ctx context.Context) ([]model.WbcRecord, error) {
	return cached(ctx, s, s.wbc, model.Filters{}, s.store.ListWbc)
}

func (s *Service) rejectWbc(ctx context.Context, op string, cause error) (WbcOutcome, error) {
	reason, ok := validation.Reason(cause)
	if !ok {
		return WbcOutcome{}, cause
	}
	metrics.RecordValidationRejection(string(model.KindWbc), "payload")
	s.logger.Info(ctx, "wbc write rejected",
		logger.String("op", op),
		logger.String("reason", reason),
	)
	return WbcOutcome{Reason: reason}, nil
}
