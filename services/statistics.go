package services

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"venus-recipe/apperrors"
	"venus-recipe/cache"
	"venus-recipe/models"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/singleflight"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// meatSeafoodKey names the combined view in the process cache
const meatSeafoodKey = "meat_seafood"

// StatisticsAggregator sums ingredient usage per campus for a generation.
// Every catalog campus appears in a result, with a zero placeholder row when
// it used nothing of the category.
type StatisticsAggregator struct {
	source   StatisticsSource
	campuses CampusLookup
	cache    cache.Store
	ttl      time.Duration
	group    singleflight.Group
	log      *slog.Logger

	// versions counts invalidations per generation. A computation started
	// before an invalidation must not write its rows to the cache.
	mu       sync.Mutex
	versions map[uint]uint64
}

func NewStatisticsAggregator(source StatisticsSource, campuses CampusLookup, c cache.Store, ttl time.Duration, log *slog.Logger) *StatisticsAggregator {
	return &StatisticsAggregator{
		source:   source,
		campuses: campuses,
		cache:    c,
		ttl:      ttl,
		log:      log,
		versions: make(map[uint]uint64),
	}
}

func (a *StatisticsAggregator) version(generationID uint) uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.versions[generationID]
}

// cacheRows caches rows unless the generation was invalidated since version was read
func (a *StatisticsAggregator) cacheRows(ctx context.Context, generationID uint, version uint64, key string, rows []models.IngredientUsage) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.versions[generationID] != version {
		a.log.DebugContext(ctx, "Stale statistics not cached", "key", key)
		return
	}
	if err := a.cache.Set(ctx, key, rows, a.ttl); err != nil {
		a.log.WarnContext(ctx, "Statistics cache write failed", "key", key, "error", err)
	}
}

// memoize serves key from the process cache, computing it at most once at a
// time across concurrent callers.
func (a *StatisticsAggregator) memoize(ctx context.Context, generationID uint, key string, compute func() ([]models.IngredientUsage, error)) ([]models.IngredientUsage, error) {
	var cached []models.IngredientUsage
	if ok, err := a.cache.Get(ctx, key, &cached); err != nil {
		a.log.WarnContext(ctx, "Statistics cache read failed", "key", key, "error", err)
	} else if ok {
		return cached, nil
	}

	v, err, _ := a.group.Do(key, func() (interface{}, error) {
		version := a.version(generationID)
		rows, err := compute()
		if err != nil {
			return nil, err
		}
		a.cacheRows(ctx, generationID, version, key, rows)
		return rows, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.IngredientUsage), nil
}

// Aggregate returns one row per campus and ingredient of the category
func (a *StatisticsAggregator) Aggregate(ctx context.Context, generationID uint, category models.IngredientCategory) ([]models.IngredientUsage, error) {
	return a.memoize(ctx, generationID, cache.StatisticsKey(generationID, string(category)), func() ([]models.IngredientUsage, error) {
		return a.aggregate(ctx, generationID, category)
	})
}

func (a *StatisticsAggregator) aggregate(ctx context.Context, generationID uint, category models.IngredientCategory) ([]models.IngredientUsage, error) {
	if _, err := a.source.GetGeneration(ctx, generationID); err != nil {
		return nil, err
	}
	rows, err := a.source.IngredientUsage(ctx, generationID, category)
	if err != nil {
		return nil, err
	}
	campuses, err := a.campuses.ListCampuses(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[uint]bool, len(campuses))
	for _, r := range rows {
		seen[r.CampusID] = true
	}
	out := make([]models.IngredientUsage, 0, len(rows)+len(campuses))
	out = append(out, rows...)
	for _, c := range campuses {
		if !seen[c.ID] {
			out = append(out, placeholder(c, category))
		}
	}
	sortUsage(out)
	return out, nil
}

func placeholder(c models.Campus, category models.IngredientCategory) models.IngredientUsage {
	return models.IngredientUsage{
		CampusID:       c.ID,
		CampusName:     c.Name,
		IngredientName: models.NoUsageIngredient,
		Category:       category,
		Unit:           "g",
	}
}

// sortUsage orders by campus name in Chinese collation, then by quantity descending
func sortUsage(rows []models.IngredientUsage) {
	col := collate.New(language.Chinese)
	sort.SliceStable(rows, func(i, j int) bool {
		if c := col.CompareString(rows[i].CampusName, rows[j].CampusName); c != 0 {
			return c < 0
		}
		if rows[i].CampusID != rows[j].CampusID {
			return rows[i].CampusID < rows[j].CampusID
		}
		if rows[i].TotalQuantity != rows[j].TotalQuantity {
			return rows[i].TotalQuantity > rows[j].TotalQuantity
		}
		return rows[i].IngredientName < rows[j].IngredientName
	})
}

func (a *StatisticsAggregator) Grains(ctx context.Context, generationID uint) ([]models.IngredientUsage, error) {
	return a.Aggregate(ctx, generationID, models.CategoryGrains)
}

func (a *StatisticsAggregator) Fruits(ctx context.Context, generationID uint) ([]models.IngredientUsage, error) {
	return a.Aggregate(ctx, generationID, models.CategoryFruits)
}

// MeatSeafood merges both categories. A campus keeps a placeholder only when
// it has no real row in either category, and then exactly one.
func (a *StatisticsAggregator) MeatSeafood(ctx context.Context, generationID uint) ([]models.IngredientUsage, error) {
	return a.memoize(ctx, generationID, cache.StatisticsKey(generationID, meatSeafoodKey), func() ([]models.IngredientUsage, error) {
		meat, err := a.Aggregate(ctx, generationID, models.CategoryMeat)
		if err != nil {
			return nil, err
		}
		seafood, err := a.Aggregate(ctx, generationID, models.CategorySeafood)
		if err != nil {
			return nil, err
		}

		all := append(append([]models.IngredientUsage{}, meat...), seafood...)
		hasReal := make(map[uint]bool)
		for _, r := range all {
			if !r.IsPlaceholder() {
				hasReal[r.CampusID] = true
			}
		}

		out := make([]models.IngredientUsage, 0, len(all))
		placed := make(map[uint]bool)
		for _, r := range all {
			if !r.IsPlaceholder() {
				out = append(out, r)
				continue
			}
			if hasReal[r.CampusID] || placed[r.CampusID] {
				continue
			}
			placed[r.CampusID] = true
			out = append(out, r)
		}
		sortUsage(out)
		return out, nil
	})
}

// Precompute writes one cache row per campus for every tracked category
func (a *StatisticsAggregator) Precompute(ctx context.Context, generationID uint) error {
	now := time.Now()
	for _, category := range models.TrackedCategories {
		rows, err := a.Aggregate(ctx, generationID, category)
		if err != nil {
			return err
		}

		var entries []models.StatisticsCacheEntry
		index := make(map[uint]int)
		for _, r := range rows {
			i, ok := index[r.CampusID]
			if !ok {
				unit := r.Unit
				if unit == "" {
					unit = "g"
				}
				index[r.CampusID] = len(entries)
				entries = append(entries, models.StatisticsCacheEntry{
					GenerationID:       generationID,
					IngredientCategory: category,
					CampusID:           r.CampusID,
					Unit:               unit,
					CalculatedAt:       now,
				})
				i = len(entries) - 1
			}
			entries[i].TotalQuantity += r.TotalQuantity
		}

		if err := a.source.UpsertStatistics(ctx, entries); err != nil {
			return err
		}
	}
	a.log.DebugContext(ctx, "Statistics precomputed", "generation_id", generationID)
	return nil
}

// Invalidate drops every cached figure of a generation and recomputes them
func (a *StatisticsAggregator) Invalidate(ctx context.Context, generationID uint) error {
	a.mu.Lock()
	a.versions[generationID]++
	a.mu.Unlock()
	for _, category := range models.TrackedCategories {
		a.group.Forget(cache.StatisticsKey(generationID, string(category)))
	}
	a.group.Forget(cache.StatisticsKey(generationID, meatSeafoodKey))

	if err := a.source.ClearStatistics(ctx, generationID); err != nil {
		return err
	}
	n, err := a.cache.DeleteByPattern(ctx, cache.StatisticsPattern(generationID))
	if err != nil {
		return apperrors.NewInternalError(err).WithContext("generation_id", generationID)
	}
	a.log.DebugContext(ctx, "Statistics invalidated", "generation_id", generationID, "cache_keys", n)
	return a.Precompute(ctx, generationID)
}

// DefaultGeneration picks the newest completed generation with cached
// statistics. It reports false when there is none.
func (a *StatisticsAggregator) DefaultGeneration(ctx context.Context) (uint, bool, error) {
	g, err := a.source.LatestGenerationWithStatistics(ctx)
	if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return g.ID, true, nil
}

// Summary reports per-category grand totals from the statistics cache table
func (a *StatisticsAggregator) Summary(ctx context.Context, generationID uint) ([]models.CategorySummary, error) {
	if _, err := a.source.GetGeneration(ctx, generationID); err != nil {
		return nil, err
	}
	rows, err := a.source.StatisticsSummary(ctx, generationID)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].Display = humanize.CommafWithDigits(rows[i].GrandTotal, 2) + " " + rows[i].Unit
	}
	if rows == nil {
		rows = []models.CategorySummary{}
	}
	return rows, nil
}
