package seeding

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/redstonehub/laurel/internal/domain/category"
	"github.com/redstonehub/laurel/internal/domain/model"
	"github.com/redstonehub/laurel/pkg/logger"
)

// creatorPool bounds the distinct people so some win more than once.
const creatorPool = 5

var weekStarts = []int{1, 8, 15, 22, 29}

// Generate builds the submission plan for cfg. Each category group opens
// with a submission without placement, which the service auto-assigns
// first place, and closes with a conflicting first place it must reject.
func Generate(ctx context.Context, cfg Config) Plan {
	var plan Plan
	label := cfg.Label()
	n := 0
	for _, cat := range category.DefaultOrder {
		group := make([]HofSubmission, 0, cfg.PerCategory+1)
		for i := 0; i < cfg.PerCategory; i++ {
			p := hofPayload(n, label, cfg.Year, cat)
			if i > 0 {
				placement := i + 1
				p.Placement = &placement
			}
			group = append(group, HofSubmission{Key: uuid.NewString(), Payload: p})
			n++
		}
		conflict := hofPayload(n, label, cfg.Year, cat)
		first := 1
		conflict.Placement = &first
		group = append(group, HofSubmission{Key: uuid.NewString(), Payload: conflict, Conflict: true})
		n++
		plan.Hof = append(plan.Hof, group)
	}

	short := cfg.Month
	if len(short) > 3 {
		short = short[:3]
	}
	for i := 0; i < cfg.Weeks; i++ {
		start := weekStarts[i%len(weekStarts)]
		plan.Wbc = append(plan.Wbc, WbcSubmission{
			Key: uuid.NewString(),
			Payload: model.WbcPayload{
				Name:      creatorName(i),
				Month:     label,
				Year:      cfg.Year,
				DateRange: fmt.Sprintf("%s %d - %s %d", short, start, short, start+6),
				Link:      fmt.Sprintf("https://x.com/seed/status/w%d", i),
				Discord:   creatorHandle(i),
			},
		})
	}

	logger.Get().Info(ctx, "generated submissions",
		logger.Int("hofGroups", len(plan.Hof)),
		logger.Int("hofSubmissions", n),
		logger.Int("wbcSubmissions", len(plan.Wbc)))
	return plan
}

func hofPayload(n int, label string, year int, cat string) model.HofPayload {
	return model.HofPayload{
		Name:     creatorName(n),
		Discord:  creatorHandle(n),
		Link:     fmt.Sprintf("https://x.com/seed/status/h%d", n),
		Category: cat,
		Month:    label,
		Year:     year,
	}
}

func creatorName(n int) string { return fmt.Sprintf("Seed Creator %d", n%creatorPool+1) }

func creatorHandle(n int) string { return fmt.Sprintf("seedcreator%d", n%creatorPool+1) }
