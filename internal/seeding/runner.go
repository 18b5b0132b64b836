package seeding

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/redstonehub/laurel/internal/adapters/http/api"
	"github.com/redstonehub/laurel/internal/domain/model"
	"github.com/redstonehub/laurel/pkg/logger"
)

const tokenTTL = time.Hour

// hofOutcome mirrors the admin create response for Hall of Fame records.
type hofOutcome struct {
	OK               bool             `json:"ok"`
	Record           *model.HofRecord `json:"record"`
	Reason           string           `json:"reason"`
	AutoPlacement    bool             `json:"auto_placement"`
	CategoryAdvanced bool             `json:"category_advanced"`
	NextCategory     string           `json:"next_category"`
}

type wbcOutcome struct {
	OK     bool             `json:"ok"`
	Record *model.WbcRecord `json:"record"`
	Reason string           `json:"reason"`
}

// hofResult is one answered Hall of Fame submission.
type hofResult struct {
	Group      int
	Submission HofSubmission
	Status     int
	Outcome    hofOutcome
}

// counters are updated from concurrent submissions.
type counters struct {
	hofSubmitted, hofCreated, hofRejected atomic.Int64
	wbcSubmitted, wbcCreated              atomic.Int64
	duplicates, failed, advances          atomic.Int64
}

func (c *counters) fill(s *Stats) {
	s.HofSubmitted = int(c.hofSubmitted.Load())
	s.HofCreated = int(c.hofCreated.Load())
	s.HofRejected = int(c.hofRejected.Load())
	s.WbcSubmitted = int(c.wbcSubmitted.Load())
	s.WbcCreated = int(c.wbcCreated.Load())
	s.Duplicates = int(c.duplicates.Load())
	s.Failed = int(c.failed.Load())
	s.Advances = int(c.advances.Load())
}

// Run seeds the service at cfg.BaseURL and verifies the resulting state.
func Run(ctx context.Context, cfg Config) (*Stats, error) {
	cfg = withDefaults(cfg)
	stats := &Stats{StartTime: time.Now()}
	log := logger.Get().Named("seed")

	log.Info(ctx, "starting seeding run",
		logger.String("baseURL", cfg.BaseURL),
		logger.String("month", cfg.Label()),
		logger.Int("perCategory", cfg.PerCategory),
		logger.Int("weeks", cfg.Weeks),
		logger.Int("workers", cfg.Workers))

	token := ""
	if cfg.AdminSecret != "" {
		t, err := api.SignAdminToken(cfg.AdminSecret, "seed", tokenTTL)
		if err != nil {
			return nil, fmt.Errorf("failed to sign admin token: %w", err)
		}
		token = t
	}
	client := NewClient(cfg.BaseURL, token, cfg.Timeout)

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, client); err != nil {
		return nil, err
	}

	// Step 2: Generate submissions
	plan := Generate(ctx, cfg)

	// Step 3: Submit concurrently
	var c counters
	hofResults, err := submitHof(ctx, client, cfg, plan, &c)
	if err != nil {
		return nil, fmt.Errorf("hof submission failed: %w", err)
	}
	if err := submitWbc(ctx, client, cfg, plan, &c); err != nil {
		return nil, fmt.Errorf("wbc submission failed: %w", err)
	}
	c.fill(stats)

	// Step 4: Verify results
	violations, err := Verify(ctx, client, cfg, hofResults)
	if err != nil {
		return stats, fmt.Errorf("verification could not complete: %w", err)
	}

	// Step 5: Save submissions
	if cfg.OutputFile != "" {
		if err := savePlan(ctx, cfg.OutputFile, plan); err != nil {
			log.Warn(ctx, "failed to save submissions", logger.Error(err))
		}
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, stats)

	if len(violations) > 0 {
		for _, v := range violations {
			log.Error(ctx, "invariant violated", logger.String("violation", v))
		}
		return stats, fmt.Errorf("%w: %d violations", ErrVerification, len(violations))
	}
	log.Info(ctx, "seeding run completed successfully")
	return stats, nil
}

func withDefaults(cfg Config) Config {
	if cfg.Month == "" {
		now := time.Now()
		cfg.Month, cfg.Year = now.Month().String(), now.Year()
	}
	if cfg.PerCategory <= 0 {
		cfg.PerCategory = DefaultPerCategory
	}
	if cfg.Weeks < 0 {
		cfg.Weeks = 0
	}
	if cfg.Threshold <= 0 {
		cfg.Threshold = DefaultThreshold
	}
	if cfg.PreviewSize <= 0 {
		cfg.PreviewSize = DefaultPreviewSize
	}
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return cfg
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, client *Client) error {
	status, err := client.Get(ctx, "/healthz", nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnhealthy, status)
	}
	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// submitHof walks the category groups in admin order. Within a group the
// opening submission goes first so it can take the automatic first place,
// the explicit placements follow concurrently, and the conflicting first
// place goes last.
func submitHof(ctx context.Context, client *Client, cfg Config, plan Plan, c *counters) ([]hofResult, error) {
	var (
		mu      sync.Mutex
		results []hofResult
	)
	send := func(ctx context.Context, group int, sub HofSubmission) error {
		res, err := submitHofOne(ctx, client, group, sub, c)
		if err != nil {
			return err
		}
		if cfg.Verbose {
			logger.Get().Debug(ctx, "hof submission answered",
				logger.String("key", sub.Key),
				logger.Int("status", res.Status))
		}
		mu.Lock()
		results = append(results, res)
		mu.Unlock()
		return nil
	}

	for gi, group := range plan.Hof {
		if len(group) == 0 {
			continue
		}
		last := len(group) - 1
		if err := send(ctx, gi, group[0]); err != nil {
			return nil, err
		}

		if last == 0 {
			continue
		}

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(cfg.Workers)
		for _, sub := range group[1:last] {
			g.Go(func() error { return send(gctx, gi, sub) })
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}

		if err := send(ctx, gi, group[last]); err != nil {
			return nil, err
		}
	}
	return results, nil
}

func submitHofOne(ctx context.Context, client *Client, group int, sub HofSubmission, c *counters) (hofResult, error) {
	c.hofSubmitted.Add(1)
	var out hofOutcome
	status, err := client.Post(ctx, "/admin/hof", sub.Key, sub.Payload, &out)
	if err != nil {
		c.failed.Add(1)
		return hofResult{}, err
	}
	switch status {
	case http.StatusCreated:
		c.hofCreated.Add(1)
		if out.CategoryAdvanced {
			c.advances.Add(1)
		}
	case http.StatusUnprocessableEntity:
		c.hofRejected.Add(1)
	case http.StatusConflict:
		c.duplicates.Add(1)
	default:
		c.failed.Add(1)
		return hofResult{}, fmt.Errorf("%w: POST /admin/hof returned %d", ErrUnexpectedStatus, status)
	}
	return hofResult{Group: group, Submission: sub, Status: status, Outcome: out}, nil
}

// submitWbc posts the weekly submissions concurrently.
func submitWbc(ctx context.Context, client *Client, cfg Config, plan Plan, c *counters) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for _, sub := range plan.Wbc {
		g.Go(func() error {
			c.wbcSubmitted.Add(1)
			var out wbcOutcome
			status, err := client.Post(gctx, "/admin/wbc", sub.Key, sub.Payload, &out)
			if err != nil {
				c.failed.Add(1)
				return err
			}
			switch status {
			case http.StatusCreated:
				c.wbcCreated.Add(1)
			case http.StatusConflict:
				c.duplicates.Add(1)
			default:
				c.failed.Add(1)
				return fmt.Errorf("%w: POST /admin/wbc returned %d (%s)", ErrUnexpectedStatus, status, out.Reason)
			}
			return nil
		})
	}
	return g.Wait()
}

// savePlan writes the generated submissions to filename as JSON.
func savePlan(ctx context.Context, filename string, plan Plan) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal submissions: %w", err)
	}
	if err := os.WriteFile(filename, data, filePermission); err != nil {
		return fmt.Errorf("failed to write submissions: %w", err)
	}
	logger.Get().Info(ctx, "submissions saved to file", logger.String("filename", filename))
	return nil
}

// displayFinalStats logs the run statistics.
func displayFinalStats(ctx context.Context, stats *Stats) {
	logger.Get().Info(ctx, "final statistics",
		logger.Int("hofSubmitted", stats.HofSubmitted),
		logger.Int("hofCreated", stats.HofCreated),
		logger.Int("hofRejected", stats.HofRejected),
		logger.Int("wbcSubmitted", stats.WbcSubmitted),
		logger.Int("wbcCreated", stats.WbcCreated),
		logger.Int("duplicates", stats.Duplicates),
		logger.Int("failed", stats.Failed),
		logger.Int("advances", stats.Advances),
		logger.String("duration", stats.Duration.String()))
}
