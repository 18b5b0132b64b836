package seeding

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/redstonehub/laurel/internal/domain/category"
	"github.com/redstonehub/laurel/internal/domain/model"
	"github.com/redstonehub/laurel/internal/domain/types"
	"github.com/redstonehub/laurel/pkg/logger"
)

// Verify checks the submission answers and the public views against the
// award invariants. It returns one message per violation; err is set only
// when a view could not be fetched.
func Verify(ctx context.Context, client *Client, cfg Config, results []hofResult) ([]string, error) {
	logger.Get().Info(ctx, "verifying results")
	var violations []string
	report := func(format string, args ...any) {
		violations = append(violations, fmt.Sprintf(format, args...))
	}

	verifySubmissions(results, report)
	verifyRotation(cfg, results, report)

	var listing types.Listing
	if err := getOK(ctx, client, "/hof?month="+url.QueryEscape(cfg.Label()), &listing); err != nil {
		return nil, err
	}
	verifyFirstPlaces(cfg, listing, report)

	var tiles []types.MonthTile
	if err := getOK(ctx, client, "/hof/months", &tiles); err != nil {
		return nil, err
	}
	found := false
	for _, t := range tiles {
		if len(t.Preview) > cfg.PreviewSize {
			report("hof month %q previews %d winners, cap is %d", t.Month, len(t.Preview), cfg.PreviewSize)
		}
		found = found || t.Month == cfg.Label()
	}
	if !found {
		report("hof months do not list %q", cfg.Label())
	}

	if cfg.Weeks > 0 {
		var months []types.WbcMonth
		if err := getOK(ctx, client, "/wbc/months", &months); err != nil {
			return nil, err
		}
		verifyWeeks(cfg, months, report)
	}

	if cfg.PerCategory >= cfg.Threshold {
		var filters model.AdminFilters
		if err := getOK(ctx, client, "/admin/hof/filters", &filters); err != nil {
			return nil, err
		}
		want := category.DefaultOrder[len(category.DefaultOrder)-1]
		if filters.Category != want {
			report("admin category is %q after every group filled, want %q", filters.Category, want)
		}
	}

	logger.Get().Info(ctx, "verification finished", logger.Int("violations", len(violations)))
	return violations, nil
}

// verifySubmissions expects every opening submission to be auto-placed
// first, every explicit placement to be accepted and every conflicting
// first place to be rejected with a reason.
func verifySubmissions(results []hofResult, report func(string, ...any)) {
	for _, r := range results {
		switch {
		case r.Status == http.StatusConflict:
			report("submission %s was treated as a duplicate", r.Submission.Key)
		case r.Submission.Conflict:
			if r.Status != http.StatusUnprocessableEntity || r.Outcome.Reason == "" {
				report("conflicting first place in group %d was not rejected (status %d)", r.Group, r.Status)
			}
		case r.Status != http.StatusCreated:
			report("submission %s in group %d failed with status %d", r.Submission.Key, r.Group, r.Status)
		case r.Submission.Payload.Placement == nil:
			if !r.Outcome.AutoPlacement || r.Outcome.Record == nil || !r.Outcome.Record.HasPlacement(1) {
				report("opening submission of group %d did not take first place", r.Group)
			}
		}
	}
}

// verifyRotation expects every filled group except the last to advance the
// admin category to the next one in order. Unfilled groups never advance.
func verifyRotation(cfg Config, results []hofResult, report func(string, ...any)) {
	order := category.DefaultOrder
	advancedTo := make(map[int]string)
	for _, r := range results {
		if r.Outcome.CategoryAdvanced {
			advancedTo[r.Group] = r.Outcome.NextCategory
		}
	}
	filled := cfg.PerCategory >= cfg.Threshold
	for gi := range order {
		next, advanced := advancedTo[gi]
		switch {
		case !filled && advanced:
			report("group %d advanced to %q below the threshold", gi, next)
		case filled && gi < len(order)-1 && next != order[gi+1]:
			report("group %d advanced to %q, want %q", gi, next, order[gi+1])
		case gi == len(order)-1 && advanced:
			report("last group advanced to %q", next)
		}
	}
}

// verifyFirstPlaces expects exactly one first place per category.
func verifyFirstPlaces(cfg Config, listing types.Listing, report func(string, ...any)) {
	firsts := make(map[category.Slug]int)
	for _, item := range listing.Items {
		if item.FirstPlace {
			firsts[category.Slug(item.Slug)]++
		}
	}
	for _, cat := range category.DefaultOrder {
		slug := category.Normalize(cat)
		if n := firsts[slug]; n != 1 {
			report("category %q in %q has %d first places", slug, cfg.Label(), n)
		}
	}
}

// verifyWeeks expects every generated week listed once and previews capped.
func verifyWeeks(cfg Config, months []types.WbcMonth, report func(string, ...any)) {
	want := min(cfg.Weeks, len(weekStarts))
	found := false
	for _, m := range months {
		if len(m.Preview) > cfg.PreviewSize {
			report("wbc month %q previews %d weeks, cap is %d", m.Month, len(m.Preview), cfg.PreviewSize)
		}
		if m.Month != cfg.Label() {
			continue
		}
		found = true
		if len(m.Weeks) < want {
			report("wbc month %q lists %d weeks, want at least %d", m.Month, len(m.Weeks), want)
		}
	}
	if !found {
		report("wbc months do not list %q", cfg.Label())
	}
}

func getOK(ctx context.Context, client *Client, path string, out any) error {
	status, err := client.Get(ctx, path, out)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("%w: GET %s returned %d", ErrUnexpectedStatus, path, status)
	}
	return nil
}
