package config

import (
	"fmt"
	"strings"

	"bizmatch-engine/internal/match"
	"bizmatch-engine/internal/page"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy plus anything a user should
// fix. Warnings never block a save.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	trimList := func(xs []string) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.TrimSpace(x)
			if x == "" {
				continue
			}
			key := strings.ToLower(x)
			if seen[key] {
				continue
			}
			seen[key] = true
			ys = append(ys, x)
		}
		return ys
	}

	out.Catalog.Files = trimList(out.Catalog.Files)
	out.Results.Sort = strings.TrimSpace(out.Results.Sort)

	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}

	switch out.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		res.addErr("log.level must be one of debug, info, warn, error")
	}

	if len(out.Catalog.Files) == 0 {
		res.addWarn("catalog.files is empty; the engine will start with no listings.")
	}

	if out.Results.PageSize <= 0 {
		res.addErr("results.page_size must be > 0")
	} else if out.Results.PageSize > 100 {
		res.addWarn("results.page_size is very large (%d); pages stop being pages.", out.Results.PageSize)
	}
	if out.Results.Sort != "" {
		if _, err := page.ParseSortKey(out.Results.Sort); err != nil {
			res.addErr("results.sort: %v", err)
		}
	}

	switch out.Interactions.Backend {
	case "", "sqlite", "memory":
	case "redis":
		if strings.TrimSpace(out.Interactions.RedisAddr) == "" {
			res.addErr("interactions.redis_addr is required when backend=redis")
		}
	default:
		res.addErr("interactions.backend must be one of sqlite, redis, memory")
	}
	if out.Interactions.Backend == "memory" {
		res.addWarn("interactions.backend=memory does not survive restarts; favorites will be lost.")
	}

	checkWeight := func(name string, w int) {
		if w < 0 {
			res.addErr("scoring.%s must be >= 0", name)
		}
	}
	checkWeight("base", out.Scoring.Base)
	checkWeight("price_in_range", out.Scoring.PriceInRange)
	checkWeight("category_match", out.Scoring.CategoryMatch)
	checkWeight("location_match", out.Scoring.LocationMatch)
	checkWeight("express", out.Scoring.Express)
	checkWeight("revenue_in_range", out.Scoring.RevenueInRange)
	checkWeight("established", out.Scoring.Established)
	if out.Scoring == (match.Weights{}) {
		out.Scoring = match.DefaultWeights()
	}
	if sum := out.Scoring.Base + out.Scoring.PriceInRange + out.Scoring.CategoryMatch +
		out.Scoring.LocationMatch + out.Scoring.Express + out.Scoring.RevenueInRange +
		out.Scoring.Established; sum > 150 {
		res.addWarn("scoring weights sum to %d; scores will saturate at 100 early.", sum)
	}

	return out, res
}
