package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Reyzen1/aicrypto-data-analysis/internal/domain/models"
	"github.com/Reyzen1/aicrypto-data-analysis/pkg/cache"
)

type stubSource struct {
	calls int
	err   error
	coins []models.Asset
}

func (s *stubSource) CoinList(context.Context) ([]models.Asset, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.coins, nil
}

func (s *stubSource) MarketChart(context.Context, string, string, int) (*models.MarketChart, error) {
	return nil, errors.New("not implemented")
}

func TestAssetsMemoized(t *testing.T) {
	src := &stubSource{coins: []models.Asset{
		{ID: "bitcoin", Symbol: "btc", Name: "Bitcoin"},
		{ID: "ethereum", Symbol: "eth", Name: "Ethereum"},
	}}
	mem := cache.NewMemoryCache()
	defer mem.Close()

	l := NewLoader(src, mem, time.Hour, nil, nil)
	ctx := context.Background()

	first, err := l.Assets(ctx)
	if err != nil {
		t.Fatalf("Assets: %v", err)
	}
	second, err := l.Assets(ctx)
	if err != nil {
		t.Fatalf("Assets (cached): %v", err)
	}

	if src.calls != 1 {
		t.Fatalf("expected 1 upstream call, got %d", src.calls)
	}
	if len(first) != 2 || len(second) != 2 || second[0].ID != "bitcoin" {
		t.Fatalf("unexpected catalogs: %v / %v", first, second)
	}
}

func TestAssetsUnavailable(t *testing.T) {
	src := &stubSource{err: errors.New("dns failure")}
	mem := cache.NewMemoryCache()
	defer mem.Close()

	l := NewLoader(src, mem, time.Hour, nil, nil)

	_, err := l.Assets(context.Background())
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("error %v, want ErrUnavailable", err)
	}

	// Recovery: the failure was not memoized.
	src.err = nil
	src.coins = []models.Asset{{ID: "bitcoin", Symbol: "btc", Name: "Bitcoin"}}
	coins, err := l.Assets(context.Background())
	if err != nil {
		t.Fatalf("Assets after recovery: %v", err)
	}
	if len(coins) != 1 {
		t.Fatalf("got %d coins", len(coins))
	}
}

func TestAssetsTTLExpiry(t *testing.T) {
	src := &stubSource{coins: []models.Asset{{ID: "bitcoin", Symbol: "btc", Name: "Bitcoin"}}}
	mem := cache.NewMemoryCache()
	defer mem.Close()

	l := NewLoader(src, mem, time.Millisecond, nil, nil)
	ctx := context.Background()

	if _, err := l.Assets(ctx); err != nil {
		t.Fatalf("Assets: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, err := l.Assets(ctx); err != nil {
		t.Fatalf("Assets after expiry: %v", err)
	}
	if src.calls != 2 {
		t.Fatalf("expected refetch after TTL, calls=%d", src.calls)
	}
}
