package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/lowball-ledger/internal/config"
	"github.com/redis/go-redis/v9"
)

var (
	ErrPriceUnavailable = errors.New("no price available for item")
)

// PriceService serves current lowest-BIN prices for items. Prices live in
// redis under bin:<item name>; cache misses fall through to the configured
// market HTTP endpoint and are written back with a TTL.
type PriceService struct {
	redis  *redis.Client
	client *http.Client
	cfg    config.MarketConfig
}

// NewPriceService creates a new PriceService
func NewPriceService(redisClient *redis.Client, cfg config.MarketConfig) *PriceService {
	return &PriceService{
		redis:  redisClient,
		client: &http.Client{Timeout: 10 * time.Second},
		cfg:    cfg,
	}
}

func priceKey(itemName string) string {
	return "bin:" + strings.ToLower(strings.TrimSpace(itemName))
}

// GetLowestBin returns the current lowest BIN for an item, consulting redis
// first and the market endpoint on a miss.
func (s *PriceService) GetLowestBin(ctx context.Context, itemName string) (int64, error) {
	val, err := s.redis.Get(ctx, priceKey(itemName)).Result()
	if err == nil {
		price, parseErr := strconv.ParseInt(val, 10, 64)
		if parseErr == nil {
			return price, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		log.Printf("[PriceService] redis lookup failed for %q: %v", itemName, err)
	}

	price, err := s.fetchLowestBin(ctx, itemName)
	if err != nil {
		return 0, err
	}

	s.SetLowestBin(ctx, itemName, price)
	return price, nil
}

// SetLowestBin caches a price with the configured TTL
func (s *PriceService) SetLowestBin(ctx context.Context, itemName string, price int64) {
	ttl := time.Duration(s.cfg.CacheTTLMinutes) * time.Minute
	if err := s.redis.Set(ctx, priceKey(itemName), price, ttl).Err(); err != nil {
		log.Printf("[PriceService] failed to cache price for %q: %v", itemName, err)
	}
}

// RefreshItems re-fetches and caches prices for the given item names.
// Returns how many items were refreshed successfully.
func (s *PriceService) RefreshItems(ctx context.Context, itemNames []string) int {
	refreshed := 0
	for _, name := range itemNames {
		price, err := s.fetchLowestBin(ctx, name)
		if err != nil {
			log.Printf("[PriceService] refresh failed for %q: %v", name, err)
			continue
		}
		s.SetLowestBin(ctx, name, price)
		refreshed++
	}
	return refreshed
}

type marketPriceResponse struct {
	ItemName  string `json:"item_name"`
	LowestBin int64  `json:"lowest_bin"`
}

func (s *PriceService) fetchLowestBin(ctx context.Context, itemName string) (int64, error) {
	if s.cfg.EndpointURL == "" {
		return 0, ErrPriceUnavailable
	}

	reqURL := s.cfg.EndpointURL + "?item=" + url.QueryEscape(itemName)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("market endpoint returned status %d", resp.StatusCode)
	}

	var body marketPriceResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, err
	}
	if body.LowestBin <= 0 {
		return 0, ErrPriceUnavailable
	}
	return body.LowestBin, nil
}
