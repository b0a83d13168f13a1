package taxrate

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/towet/payroll-processing-sys/internal/shared/contextutil"
	"github.com/towet/payroll-processing-sys/internal/shared/money"
	taxrateerrors "github.com/towet/payroll-processing-sys/internal/taxrate/errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const (
	BracketCacheKeyPrefix = "tax_rates:"
	BracketCacheTTL       = time.Hour

	// bracketLoadTimeout bounds the shared query, which outlives any one caller.
	bracketLoadTimeout = 5 * time.Second
)

func BracketCacheKey(taxType string) string {
	return BracketCacheKeyPrefix + taxType
}

type Service interface {
	// Resolve never fails: lookup problems are logged and yield a zero amount.
	Resolve(ctx context.Context, income money.Money, taxType string, year int) Resolution
	Preview(ctx context.Context, income money.Money, year int) (Preview, error)
	List(ctx context.Context, taxType string) ([]TaxRate, error)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     singleflight.Group
	now    func() time.Time
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("taxrate.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("taxrate.service")
	}
	return &service{
		repo:   repo,
		rdb:    rdb,
		now:    time.Now,
		logger: l,
	}
}

func (s *service) Resolve(ctx context.Context, income money.Money, taxType string, year int) Resolution {
	log := contextutil.GetLogger(ctx, s.logger)
	res := Resolution{TaxType: taxType, Source: SourceError}

	brackets, err := s.brackets(ctx, taxType)
	if err != nil {
		log.Error("tax bracket lookup failed",
			zap.String("tax_type", taxType),
			zap.Int("tax_year", year),
			zap.Error(err),
		)
		return res
	}

	bracket, err := pickBracket(brackets, income)
	if err != nil {
		log.Error("tax bracket lookup failed",
			zap.String("tax_type", taxType),
			zap.Int64("income_cents", income.Cents()),
			zap.Error(err),
		)
		return res
	}

	if bracket == nil {
		fraction := FallbackFractions[taxType]
		res.Rate = fraction * 100
		res.Amount = income.MulFloat(fraction)
		res.Source = SourceFallback
		return res
	}

	res.Rate = bracket.Rate
	res.Amount = income.Percent(bracket.Rate)
	res.Source = SourceBracket
	return res
}

func (s *service) Preview(ctx context.Context, income money.Money, year int) (Preview, error) {
	if income <= 0 {
		s.logger.Warn("tax preview rejected", zap.Int64("income_cents", income.Cents()))
		return Preview{}, taxrateerrors.ErrInvalidIncome
	}
	if year == 0 {
		year = s.now().Year()
	}

	results := make([]Resolution, len(Types))
	g, gctx := errgroup.WithContext(ctx)
	for i, taxType := range Types {
		i, taxType := i, taxType
		g.Go(func() error {
			results[i] = s.Resolve(gctx, income, taxType, year)
			return nil
		})
	}
	_ = g.Wait()

	p := Preview{
		Income:  income,
		TaxYear: year,
		Federal: results[0],
		State:   results[1],
		Local:   results[2],
	}
	p.Total = p.Federal.Amount + p.State.Amount + p.Local.Amount
	return p, nil
}

func (s *service) List(ctx context.Context, taxType string) ([]TaxRate, error) {
	if taxType == "" {
		rates, err := s.repo.ListAll(ctx)
		if err != nil {
			s.logger.Error("list tax rates failed", zap.Error(err))
		}
		return rates, err
	}
	if !IsValidType(taxType) {
		return nil, taxrateerrors.ErrInvalidTaxType
	}
	return s.brackets(ctx, taxType)
}

// brackets reads the per-type table through Redis. Cache failures fall back
// to the database; concurrent misses share one query, detached from the
// cancellation of whichever caller started it.
func (s *service) brackets(ctx context.Context, taxType string) ([]TaxRate, error) {
	key := BracketCacheKey(taxType)

	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, key).Result()
		switch {
		case err == nil:
			var rates []TaxRate
			if json.Unmarshal([]byte(cached), &rates) == nil {
				return rates, nil
			}
		case !errors.Is(err, redis.Nil):
			s.logger.Warn("tax bracket cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), bracketLoadTimeout)
		defer cancel()

		rates, err := s.repo.ListByType(loadCtx, taxType)
		if err != nil {
			return nil, err
		}

		if s.rdb != nil {
			if data, err := json.Marshal(rates); err == nil {
				if err := s.rdb.Set(loadCtx, key, data, BracketCacheTTL).Err(); err != nil {
					s.logger.Warn("tax bracket cache write failed", zap.String("key", key), zap.Error(err))
				}
			}
		}
		return rates, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]TaxRate), nil
}

// pickBracket returns the single bracket containing income, nil when none
// does, and ErrAmbiguousBracket when several do.
func pickBracket(brackets []TaxRate, income money.Money) (*TaxRate, error) {
	var hit *TaxRate
	for i := range brackets {
		if !brackets[i].Contains(income) {
			continue
		}
		if hit != nil {
			return nil, taxrateerrors.ErrAmbiguousBracket
		}
		hit = &brackets[i]
	}
	return hit, nil
}
