package service

import (
	"context"
	"fmt"

	"github.com/redstonehub/laurel/internal/domain/aggregate"
	"github.com/redstonehub/laurel/internal/domain/category"
	"github.com/redstonehub/laurel/internal/domain/model"
	"github.com/redstonehub/laurel/internal/domain/placement"
	"github.com/redstonehub/laurel/internal/domain/types"
	"github.com/redstonehub/laurel/pkg/logger"
	"github.com/redstonehub/laurel/pkg/metrics"
)

// Outcome is the result of a gated Hall of Fame write plus the workflow
// notes shown to the admin.
type Outcome struct {
	placement.Result
	AutoPlacement    bool   `json:"auto_placement,omitempty"`
	CategoryAdvanced bool   `json:"category_advanced,omitempty"`
	NextCategory     string `json:"next_category,omitempty"`
}

// CreateHof validates p, resolves its placement against the current
// (month, category) group, creates the record and advances the admin
// category once the group is full.
func (s *Service) CreateHof(ctx context.Context, p model.HofPayload) (Outcome, error) {
	p = p.Trimmed()
	if err := s.validator.Hof(p); err != nil {
		return s.rejectHof(ctx, "create", err)
	}

	group, err := s.hofGroup(ctx, p.Month, p.Year, p.Category)
	if err != nil {
		return Outcome{}, err
	}
	resolved, auto, err := placement.ResolveCreate(p.Placement, group)
	if err != nil {
		return s.rejectHof(ctx, "create", err)
	}
	p.Placement = resolved

	rec, err := s.store.CreateHof(ctx, p)
	if err != nil {
		return Outcome{}, err
	}
	s.afterWrite(ctx, model.KindHof, "create", model.Filters{})

	out := Outcome{Result: placement.Accept(rec), AutoPlacement: auto}
	if auto {
		metrics.RecordAutoPlacement()
	}

	fresh, err := s.hofGroup(ctx, p.Month, p.Year, p.Category)
	if err != nil {
		// The record exists; only the rotation is skipped.
		s.logger.Warn(ctx, "group refetch failed after create", logger.Error(err))
		return out, nil
	}
	current := s.canonicalCategory(p.Category)
	next, advanced := s.rotation.Advance(current, len(fresh))
	if !advanced {
		return out, nil
	}
	saved := model.AdminFilters{Category: next, Month: p.Month, Year: p.Year}
	if err := s.prefs.Save(ctx, model.KindHof, saved); err != nil {
		s.logger.Error(ctx, "failed to persist rotated category", logger.Error(err))
	}
	metrics.RecordCategoryRotation()
	s.logger.Info(ctx, "category auto-switched",
		logger.String("from", current),
		logger.String("to", next),
		logger.Int("groupSize", len(fresh)),
	)
	out.CategoryAdvanced = true
	out.NextCategory = next
	return out, nil
}

// UpdateHof replaces a record. An explicit first place is rejected when
// another record of the group holds it; edits never auto-assign.
func (s *Service) UpdateHof(ctx context.Context, id model.RecordID, p model.HofPayload) (Outcome, error) {
	p = p.Trimmed()
	if err := s.validator.Hof(p); err != nil {
		return s.rejectHof(ctx, "update", err)
	}

	group, err := s.hofGroup(ctx, p.Month, p.Year, p.Category)
	if err != nil {
		return Outcome{}, err
	}
	if err := placement.ValidateEdit(p.Placement, group, id); err != nil {
		return s.rejectHof(ctx, "update", err)
	}

	rec, err := s.store.UpdateHof(ctx, id, p)
	if err != nil {
		return Outcome{}, err
	}
	s.afterWrite(ctx, model.KindHof, "update", model.Filters{})
	return Outcome{Result: placement.Accept(rec)}, nil
}

// UpdatePlacement changes only the placement of an existing record.
func (s *Service) UpdatePlacement(ctx context.Context, id model.RecordID, p *int) (placement.Result, error) {
	if err := s.validator.Placement(p); err != nil {
		out, rerr := s.rejectHof(ctx, "placement", err)
		return out.Result, rerr
	}
	all, err := fetch(ctx, s, s.hof, model.Filters{}, s.store.ListHof)
	if err != nil {
		return placement.Result{}, err
	}
	target, ok := placement.FindByID(all, id)
	if !ok {
		return placement.Result{}, fmt.Errorf("%w: %s", ErrRecordNotFound, id)
	}

	group := placement.GroupOf(all, target.Month, target.Year, target.Category)
	if err := placement.ValidateEdit(p, group, id); err != nil {
		out, rerr := s.rejectHof(ctx, "placement", err)
		return out.Result, rerr
	}

	rec, err := s.store.UpdatePlacement(ctx, id, p)
	if err != nil {
		return placement.Result{}, err
	}
	s.afterWrite(ctx, model.KindHof, "placement", model.Filters{})
	return placement.Accept(rec), nil
}

// DeleteHof removes a record.
func (s *Service) DeleteHof(ctx context.Context, id model.RecordID) error {
	if err := s.store.Delete(ctx, model.KindHof, id); err != nil {
		return err
	}
	s.afterWrite(ctx, model.KindHof, "delete", model.Filters{})
	return nil
}

// HofListing builds the public listing for a month, category and search.
func (s *Service) HofListing(ctx context.Context, month, slug, search string) (types.Listing, error) {
	all, err := s.allHof(ctx)
	if err != nil {
		return types.Listing{}, err
	}
	return aggregate.Listing(all, aggregate.ListingQuery{
		Month:  month,
		Slug:   category.ParseSlug(slug),
		Search: search,
	}), nil
}

// HofMonths returns one tile per month, most recent first.
func (s *Service) HofMonths(ctx context.Context) ([]types.MonthTile, error) {
	all, err := s.allHof(ctx)
	if err != nil {
		return nil, err
	}
	return aggregate.MonthTiles(all, s.previewSize), nil
}

// HofPerson returns every award of the person with key.
func (s *Service) HofPerson(ctx context.Context, key string) (types.PersonProfile, error) {
	all, err := s.allHof(ctx)
	if err != nil {
		return types.PersonProfile{}, err
	}
	profile, ok := aggregate.PersonProfile(all, key)
	if !ok {
		return types.PersonProfile{}, fmt.Errorf("%w: %q", ErrPersonNotFound, key)
	}
	return profile, nil
}

func (s *Service) allHof(ctx context.Context) ([]model.HofRecord, error) {
	return cached(ctx, s, s.hof, model.Filters{}, s.store.ListHof)
}

// hofGroup derives the (month, category) group from a fresh unfiltered
// snapshot. Store filters match category text exactly, so records whose
// text differs but normalizes to the same slug would be missed.
func (s *Service) hofGroup(ctx context.Context, month string, year int, categoryText string) ([]model.HofRecord, error) {
	records, err := fetch(ctx, s, s.hof, model.Filters{}, s.store.ListHof)
	if err != nil {
		return nil, err
	}
	return placement.GroupOf(records, month, year, categoryText), nil
}

func (s *Service) rejectHof(ctx context.Context, op string, cause error) (Outcome, error) {
	res, err := placement.FromError(cause)
	if err != nil {
		return Outcome{}, err
	}
	rule := "payload"
	if res.Reason == placement.ReasonFirstTaken {
		rule = "placement"
	}
	metrics.RecordValidationRejection(string(model.KindHof), rule)
	s.logger.Info(ctx, "hof write rejected",
		logger.String("op", op),
		logger.String("reason", res.Reason),
	)
	return Outcome{Result: res}, nil
}

// canonicalCategory maps free category text onto the rotation order by
// slug, so "Meme content" rotates like "Meme Content".
func (s *Service) canonicalCategory(text string) string {
	if s.rotation.Contains(text) {
		return text
	}
	slug := category.Normalize(text)
	for _, c := range s.rotation.Order {
		if category.Normalize(c) == slug {
			return c
		}
	}
	return text
}
