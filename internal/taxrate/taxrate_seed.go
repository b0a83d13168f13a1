package taxrate

import (
	"context"
	"fmt"
	"os"

	"github.com/towet/payroll-processing-sys/internal/shared/money"
	taxrateerrors "github.com/towet/payroll-processing-sys/internal/taxrate/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type SeedFile struct {
	Years []SeedYear `yaml:"years"`
}

type SeedYear struct {
	TaxYear  int           `yaml:"tax_year"`
	Brackets []SeedBracket `yaml:"brackets"`
}

type SeedBracket struct {
	TaxType    string  `yaml:"tax_type"`
	StateCode  string  `yaml:"state_code,omitempty"`
	Locality   string  `yaml:"locality,omitempty"`
	IncomeFrom float64 `yaml:"income_from"`
	IncomeTo   float64 `yaml:"income_to"`
	Rate       float64 `yaml:"rate"`
}

func ParseSeed(data []byte) (SeedFile, error) {
	var f SeedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return SeedFile{}, taxrateerrors.ErrInvalidSeed.WithCause(err)
	}

	for _, y := range f.Years {
		if y.TaxYear <= 0 {
			return SeedFile{}, taxrateerrors.ErrInvalidSeed.WithCause(fmt.Errorf("tax_year %d", y.TaxYear))
		}
		for i, b := range y.Brackets {
			switch {
			case !IsValidType(b.TaxType):
				return SeedFile{}, taxrateerrors.ErrInvalidSeed.WithCause(fmt.Errorf("year %d bracket %d: unknown tax_type %q", y.TaxYear, i, b.TaxType))
			case b.IncomeFrom > b.IncomeTo:
				return SeedFile{}, taxrateerrors.ErrInvalidSeed.WithCause(fmt.Errorf("year %d bracket %d: income_from above income_to", y.TaxYear, i))
			case b.Rate < 0 || b.Rate > 100:
				return SeedFile{}, taxrateerrors.ErrInvalidSeed.WithCause(fmt.Errorf("year %d bracket %d: rate %v out of range", y.TaxYear, i, b.Rate))
			}
		}
	}
	return f, nil
}

func (y SeedYear) Rates() []TaxRate {
	rates := make([]TaxRate, 0, len(y.Brackets))
	for _, b := range y.Brackets {
		rates = append(rates, TaxRate{
			ID:         uuid.New(),
			TaxType:    b.TaxType,
			StateCode:  optional(b.StateCode),
			Locality:   optional(b.Locality),
			TaxYear:    y.TaxYear,
			IncomeFrom: money.FromFloat(b.IncomeFrom),
			IncomeTo:   money.FromFloat(b.IncomeTo),
			Rate:       b.Rate,
		})
	}
	return rates
}

type Seeder struct {
	repo   Repository
	rdb    *redis.Client
	logger *zap.Logger
}

func NewSeeder(repo Repository, rdb *redis.Client, logger *zap.Logger) *Seeder {
	return &Seeder{repo: repo, rdb: rdb, logger: logger.Named("taxrate.seed")}
}

// SeedFromFile replaces the brackets of every year present in the file and
// drops the cached tables.
func (s *Seeder) SeedFromFile(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	f, err := ParseSeed(data)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, y := range f.Years {
		rates := y.Rates()
		if err := s.repo.ReplaceYear(ctx, y.TaxYear, rates); err != nil {
			s.logger.Error("seed tax year failed", zap.Int("tax_year", y.TaxYear), zap.Error(err))
			return total, err
		}
		total += len(rates)
		s.logger.Info("seeded tax year", zap.Int("tax_year", y.TaxYear), zap.Int("brackets", len(rates)))
	}

	if s.rdb != nil {
		keys := make([]string, len(Types))
		for i, t := range Types {
			keys[i] = BracketCacheKey(t)
		}
		if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
			s.logger.Warn("tax bracket cache invalidation failed", zap.Error(err))
		}
	}

	return total, nil
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
