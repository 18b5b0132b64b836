package service

import (
	"context"
	"strings"

	"github.com/redstonehub/laurel/internal/domain/calendar"
	"github.com/redstonehub/laurel/internal/domain/model"
	"github.com/redstonehub/laurel/internal/domain/winner"
)

// AdminFilters returns the persisted admin selection for kind with unset
// fields defaulted: the first category of the order (HoF only) and the
// current month and year.
func (s *Service) AdminFilters(ctx context.Context, kind model.Kind) (model.AdminFilters, error) {
	saved, _, err := s.prefs.Load(ctx, kind)
	if err != nil {
		return model.AdminFilters{}, err
	}
	return s.withDefaults(kind, saved), nil
}

// SaveAdminFilters persists the admin selection for kind.
func (s *Service) SaveAdminFilters(ctx context.Context, kind model.Kind, f model.AdminFilters) (model.AdminFilters, error) {
	f.Category = strings.TrimSpace(f.Category)
	f.Month = strings.TrimSpace(f.Month)
	f = s.withDefaults(kind, f)
	if err := s.prefs.Save(ctx, kind, f); err != nil {
		return model.AdminFilters{}, err
	}
	return f, nil
}

func (s *Service) withDefaults(kind model.Kind, f model.AdminFilters) model.AdminFilters {
	month, year := calendar.Current(s.now())
	if f.Month == "" {
		f.Month = month
	}
	if f.Year == 0 {
		f.Year = year
	}
	switch kind {
	case model.KindHof:
		if f.Category == "" {
			f.Category = s.rotation.First()
		}
	case model.KindWbc:
		f.Category = ""
	}
	return f
}

// AdminHofEntries returns the group selected by the persisted HoF filters.
func (s *Service) AdminHofEntries(ctx context.Context) (model.AdminFilters, []model.HofRecord, error) {
	f, err := s.AdminFilters(ctx, model.KindHof)
	if err != nil {
		return f, nil, err
	}
	group, err := s.hofGroup(ctx, f.Month, f.Year, f.Category)
	if err != nil {
		return f, nil, err
	}
	return f, winner.OrderListing(group), nil
}

// AdminWbcEntries returns the weekly records of the persisted WBC month.
func (s *Service) AdminWbcEntries(ctx context.Context) (model.AdminFilters, []model.WbcRecord, error) {
	f, err := s.AdminFilters(ctx, model.KindWbc)
	if err != nil {
		return f, nil, err
	}
	records, err := fetch(ctx, s, s.wbc, f.Filters(), s.store.ListWbc)
	if err != nil {
		return f, nil, err
	}
	month := make([]model.WbcRecord, 0, len(records))
	for _, r := range records {
		if calendar.SameMonth(r.Month, f.Month, f.Year) {
			month = append(month, r)
		}
	}
	return f, winner.OrderWeeks(month), nil
}

// LookupProfile fetches the pre-fill data for a Discord handle. A miss
// returns nil without error.
func (s *Service) LookupProfile(ctx context.Context, kind model.Kind, discord string) (*model.Profile, error) {
	discord = strings.TrimSpace(discord)
	if discord == "" {
		return nil, nil
	}
	return s.store.LookupProfile(ctx, kind, discord)
}

// PrefillHof fills the empty name, avatar and X handle of p from the
// profile stored for its Discord handle.
func (s *Service) PrefillHof(ctx context.Context, p model.HofPayload) (model.HofPayload, error) {
	prof, err := s.LookupProfile(ctx, model.KindHof, p.Discord)
	if err != nil || prof == nil {
		return p, err
	}
	p.Name = firstSet(p.Name, prof.Name)
	p.Avatar = firstSet(p.Avatar, prof.Avatar)
	p.XHandle = firstSet(p.XHandle, prof.XHandle)
	return p, nil
}

// PrefillWbc is PrefillHof for weekly payloads.
func (s *Service) PrefillWbc(ctx context.Context, p model.WbcPayload) (model.WbcPayload, error) {
	prof, err := s.LookupProfile(ctx, model.KindWbc, p.Discord)
	if err != nil || prof == nil {
		return p, err
	}
	p.Name = firstSet(p.Name, prof.Name)
	p.Avatar = firstSet(p.Avatar, prof.Avatar)
	p.XHandle = firstSet(p.XHandle, prof.XHandle)
	return p, nil
}

func firstSet(current, fallback string) string {
	if strings.TrimSpace(current) != "" {
		return current
	}
	return fallback
}
