package taxrate_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/towet/payroll-processing-sys/internal/shared/money"
	"github.com/towet/payroll-processing-sys/internal/taxrate"
	taxrateerrors "github.com/towet/payroll-processing-sys/internal/taxrate/errors"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

type fakeRepo struct {
	ListByTypeFn  func(ctx context.Context, taxType string) ([]taxrate.TaxRate, error)
	ListAllFn     func(ctx context.Context) ([]taxrate.TaxRate, error)
	ReplaceYearFn func(ctx context.Context, year int, rates []taxrate.TaxRate) error
}

func (f *fakeRepo) ListByType(ctx context.Context, taxType string) ([]taxrate.TaxRate, error) {
	return f.ListByTypeFn(ctx, taxType)
}
func (f *fakeRepo) ListAll(ctx context.Context) ([]taxrate.TaxRate, error) {
	return f.ListAllFn(ctx)
}
func (f *fakeRepo) ReplaceYear(ctx context.Context, year int, rates []taxrate.TaxRate) error {
	return f.ReplaceYearFn(ctx, year, rates)
}

func bracket(taxType string, from, to, rate float64) taxrate.TaxRate {
	return taxrate.TaxRate{
		TaxType:    taxType,
		TaxYear:    2024,
		IncomeFrom: money.FromFloat(from),
		IncomeTo:   money.FromFloat(to),
		Rate:       rate,
	}
}

func TestResolve_Fallback(t *testing.T) {
	repo := &fakeRepo{
		ListByTypeFn: func(ctx context.Context, taxType string) ([]taxrate.TaxRate, error) {
			return nil, nil
		},
	}
	svc := taxrate.NewService(repo, nil)
	ctx := context.Background()
	income := money.FromFloat(10000)

	fed := svc.Resolve(ctx, income, taxrate.TypeFederal, 2024)
	assert.Equal(t, money.FromFloat(2200), fed.Amount)
	assert.Equal(t, taxrate.SourceFallback, fed.Source)

	st := svc.Resolve(ctx, income, taxrate.TypeState, 2024)
	assert.Equal(t, money.FromFloat(500), st.Amount)

	loc := svc.Resolve(ctx, income, taxrate.TypeLocal, 2024)
	assert.Equal(t, money.FromFloat(100), loc.Amount)
}

func TestResolve_BracketHit(t *testing.T) {
	repo := &fakeRepo{
		ListByTypeFn: func(ctx context.Context, taxType string) ([]taxrate.TaxRate, error) {
			return []taxrate.TaxRate{
				bracket(taxrate.TypeFederal, 0, 30000, 5),
				bracket(taxrate.TypeFederal, 30000.01, 50000, 10),
			}, nil
		},
	}
	svc := taxrate.NewService(repo, nil)

	res := svc.Resolve(context.Background(), money.FromFloat(40000), taxrate.TypeFederal, 2024)

	assert.Equal(t, money.FromFloat(4000), res.Amount)
	assert.Equal(t, 10.0, res.Rate)
	assert.Equal(t, taxrate.SourceBracket, res.Source)
}

func TestResolve_BoundsAreInclusive(t *testing.T) {
	repo := &fakeRepo{
		ListByTypeFn: func(ctx context.Context, taxType string) ([]taxrate.TaxRate, error) {
			return []taxrate.TaxRate{bracket(taxrate.TypeState, 1000, 2000, 3)}, nil
		},
	}
	svc := taxrate.NewService(repo, nil)
	ctx := context.Background()

	assert.Equal(t, taxrate.SourceBracket, svc.Resolve(ctx, money.FromFloat(1000), taxrate.TypeState, 2024).Source)
	assert.Equal(t, taxrate.SourceBracket, svc.Resolve(ctx, money.FromFloat(2000), taxrate.TypeState, 2024).Source)
	assert.Equal(t, taxrate.SourceFallback, svc.Resolve(ctx, money.FromFloat(2000.01), taxrate.TypeState, 2024).Source)
}

func TestResolve_YearIsIgnored(t *testing.T) {
	repo := &fakeRepo{
		ListByTypeFn: func(ctx context.Context, taxType string) ([]taxrate.TaxRate, error) {
			b := bracket(taxrate.TypeFederal, 0, 50000, 10)
			b.TaxYear = 2019
			return []taxrate.TaxRate{b}, nil
		},
	}
	svc := taxrate.NewService(repo, nil)

	res := svc.Resolve(context.Background(), money.FromFloat(40000), taxrate.TypeFederal, 2024)

	assert.Equal(t, taxrate.SourceBracket, res.Source)
}

func TestResolve_FailuresContributeZero(t *testing.T) {
	ctx := context.Background()

	t.Run("backend error", func(t *testing.T) {
		repo := &fakeRepo{
			ListByTypeFn: func(ctx context.Context, taxType string) ([]taxrate.TaxRate, error) {
				return nil, errors.New("connection refused")
			},
		}
		res := taxrate.NewService(repo, nil).Resolve(ctx, money.FromFloat(40000), taxrate.TypeFederal, 2024)

		assert.Equal(t, money.Money(0), res.Amount)
		assert.Equal(t, taxrate.SourceError, res.Source)
	})

	t.Run("ambiguous brackets", func(t *testing.T) {
		repo := &fakeRepo{
			ListByTypeFn: func(ctx context.Context, taxType string) ([]taxrate.TaxRate, error) {
				return []taxrate.TaxRate{
					bracket(taxrate.TypeFederal, 0, 50000, 10),
					bracket(taxrate.TypeFederal, 30000, 60000, 12),
				}, nil
			},
		}
		res := taxrate.NewService(repo, nil).Resolve(ctx, money.FromFloat(40000), taxrate.TypeFederal, 2024)

		assert.Equal(t, money.Money(0), res.Amount)
		assert.Equal(t, taxrate.SourceError, res.Source)
	})
}

func TestPreview(t *testing.T) {
	var calls atomic.Int32
	repo := &fakeRepo{
		ListByTypeFn: func(ctx context.Context, taxType string) ([]taxrate.TaxRate, error) {
			calls.Add(1)
			switch taxType {
			case taxrate.TypeFederal:
				return []taxrate.TaxRate{bracket(taxType, 0, 50000, 10)}, nil
			case taxrate.TypeState:
				return nil, errors.New("timeout")
			default:
				return nil, nil
			}
		},
	}
	svc := taxrate.NewService(repo, nil)

	p, err := svc.Preview(context.Background(), money.FromFloat(40000), 2024)

	assert.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, money.FromFloat(4000), p.Federal.Amount)
	assert.Equal(t, money.Money(0), p.State.Amount)
	assert.Equal(t, money.FromFloat(400), p.Local.Amount)
	assert.Equal(t, money.FromFloat(4400), p.Total)
}

func TestPreview_RejectsNonPositiveIncome(t *testing.T) {
	svc := taxrate.NewService(&fakeRepo{}, nil)

	_, err := svc.Preview(context.Background(), 0, 2024)
	assert.ErrorIs(t, err, taxrateerrors.ErrInvalidIncome)

	_, err = svc.Preview(context.Background(), money.FromFloat(-5), 2024)
	assert.ErrorIs(t, err, taxrateerrors.ErrInvalidIncome)
}

func TestResolve_UsesRedisCache(t *testing.T) {
	ctx := context.Background()

	t.Run("hit", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		repo := &fakeRepo{
			ListByTypeFn: func(ctx context.Context, taxType string) ([]taxrate.TaxRate, error) {
				t.Fatal("repository must not be queried on a cache hit")
				return nil, nil
			},
		}
		raw, _ := json.Marshal([]taxrate.TaxRate{bracket(taxrate.TypeLocal, 0, 100000, 1)})
		mock.ExpectGet(taxrate.BracketCacheKey(taxrate.TypeLocal)).SetVal(string(raw))

		res := taxrate.NewService(repo, rdb).Resolve(ctx, money.FromFloat(5000), taxrate.TypeLocal, 2024)

		assert.Equal(t, money.FromFloat(50), res.Amount)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("miss stores the table", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		rates := []taxrate.TaxRate{bracket(taxrate.TypeLocal, 0, 100000, 1)}
		repo := &fakeRepo{
			ListByTypeFn: func(ctx context.Context, taxType string) ([]taxrate.TaxRate, error) {
				return rates, nil
			},
		}
		raw, _ := json.Marshal(rates)
		key := taxrate.BracketCacheKey(taxrate.TypeLocal)
		mock.ExpectGet(key).RedisNil()
		mock.ExpectSet(key, raw, taxrate.BracketCacheTTL).SetVal("OK")

		res := taxrate.NewService(repo, rdb).Resolve(ctx, money.FromFloat(5000), taxrate.TypeLocal, 2024)

		assert.Equal(t, taxrate.SourceBracket, res.Source)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("cache down degrades to database", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		key := taxrate.BracketCacheKey(taxrate.TypeFederal)
		mock.ExpectGet(key).SetErr(errors.New("redis unavailable"))
		mock.ExpectSet(key, []byte("null"), taxrate.BracketCacheTTL).SetErr(errors.New("redis unavailable"))
		repo := &fakeRepo{
			ListByTypeFn: func(ctx context.Context, taxType string) ([]taxrate.TaxRate, error) {
				return nil, nil
			},
		}

		res := taxrate.NewService(repo, rdb).Resolve(ctx, money.FromFloat(100), taxrate.TypeFederal, 2024)

		assert.Equal(t, taxrate.SourceFallback, res.Source)
		assert.Equal(t, money.FromFloat(22), res.Amount)
	})
}

func TestResolve_SharedLoadSurvivesCallerCancel(t *testing.T) {
	repo := &fakeRepo{
		ListByTypeFn: func(ctx context.Context, taxType string) ([]taxrate.TaxRate, error) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline)
			return []taxrate.TaxRate{bracket(taxrate.TypeFederal, 0, 50000, 10)}, nil
		},
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := taxrate.NewService(repo, nil).Resolve(ctx, money.FromFloat(1000), taxrate.TypeFederal, 2024)

	assert.Equal(t, taxrate.SourceBracket, res.Source)
	assert.Equal(t, money.FromFloat(100), res.Amount)
}

func TestList_RejectsUnknownType(t *testing.T) {
	_, err := taxrate.NewService(&fakeRepo{}, nil).List(context.Background(), "county")
	assert.ErrorIs(t, err, taxrateerrors.ErrInvalidTaxType)
}
