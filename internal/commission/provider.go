package commission

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/STCADSVERTISING/shopee-aff-web/internal/domain"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

const (
	chunkSize      = 40
	chunkPause     = 600 * time.Millisecond
	requestTimeout = 25 * time.Second
)

const offerListQuery = `
query OfferList($itemIds: [String!]!) {
  offerList(itemIds: $itemIds) {
    itemId
    commissionRate
  }
}
`

// AffiliateClient performs signed, chunked batch lookups against the affiliate
// GraphQL API. It is best-effort throughout: a failing chunk is skipped, never
// surfaced to the caller.
type AffiliateClient struct {
	rest    *resty.Client
	limiter *rate.Limiter
}

// chunkResult records the outcome of one chunk so skips stay observable
// without wiring logging into the merge logic.
type chunkResult struct {
	rates   map[string]float64
	skipped bool
	reason  string
}

type offerListResponse struct {
	Data struct {
		OfferList []struct {
			ItemID         any `json:"itemId"`
			CommissionRate any `json:"commissionRate"`
		} `json:"offerList"`
	} `json:"data"`
}

func NewAffiliateClient() *AffiliateClient {
	return &AffiliateClient{
		rest: resty.New().
			SetTimeout(requestTimeout).
			SetHeader("Content-Type", "application/json").
			SetHeader("Accept", "application/json"),
		limiter: rate.NewLimiter(rate.Every(chunkPause), 1),
	}
}

// signature signs appID‖timestamp with HMAC-SHA256 keyed by the shared secret.
func signature(appID, secret string, ts int64) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(fmt.Sprintf("%s%d", appID, ts)))
	return hex.EncodeToString(mac.Sum(nil))
}

// BatchLookup resolves commission rates for ids in chunks of up to 40. The
// signing timestamp is captured once and reused across the whole batch. Ids
// from failed chunks are simply absent from the result.
func (ac *AffiliateClient) BatchLookup(ctx context.Context, ids []string, cfg domain.ProviderConfig) map[string]float64 {
	result := make(map[string]float64)
	if !cfg.Enabled || cfg.Endpoint == "" || cfg.AppID == "" || cfg.Secret == "" {
		return result
	}

	ts := time.Now().Unix()
	sig := signature(cfg.AppID, cfg.Secret, ts)

	for start := 0; start < len(ids); start += chunkSize {
		chunk := ids[start:min(start+chunkSize, len(ids))]

		if err := ac.limiter.Wait(ctx); err != nil {
			break
		}

		res := ac.fetchChunk(ctx, chunk, cfg, ts, sig)
		if res.skipped {
			if ctx.Err() != nil {
				break
			}
			slog.Warn("commission chunk skipped", "ids", len(chunk), "reason", res.reason)
			continue
		}
		for id, r := range res.rates {
			result[id] = r
		}
	}
	return result
}

func (ac *AffiliateClient) fetchChunk(ctx context.Context, chunk []string, cfg domain.ProviderConfig, ts int64, sig string) chunkResult {
	payload := map[string]any{
		"query":     offerListQuery,
		"variables": map[string]any{"itemIds": chunk},
	}

	resp, err := ac.rest.R().
		SetContext(ctx).
		SetHeader("x-app-id", cfg.AppID).
		SetHeader("x-timestamp", fmt.Sprintf("%d", ts)).
		SetHeader("x-signature", sig).
		SetBody(payload).
		Post(cfg.Endpoint)
	if err != nil {
		return chunkResult{skipped: true, reason: err.Error()}
	}
	if resp.StatusCode() != 200 {
		return chunkResult{skipped: true, reason: fmt.Sprintf("status %d", resp.StatusCode())}
	}

	// UseNumber keeps numeric item ids exact; float64 would mangle ids >= 2^53
	dec := json.NewDecoder(bytes.NewReader(resp.Body()))
	dec.UseNumber()
	var body offerListResponse
	if err := dec.Decode(&body); err != nil {
		return chunkResult{skipped: true, reason: "malformed response body"}
	}

	requested := make(map[string]bool, len(chunk))
	for _, id := range chunk {
		requested[id] = true
	}

	rates := make(map[string]float64)
	for _, row := range body.Data.OfferList {
		id, ok := coerceID(row.ItemID)
		if !ok || !requested[id] {
			continue
		}
		r, ok := coerceRate(row.CommissionRate)
		if !ok {
			continue
		}
		rates[id] = r
	}
	return chunkResult{rates: rates}
}

func coerceID(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, t != ""
	case json.Number:
		return t.String(), true
	default:
		return "", false
	}
}

// coerceRate treats an explicit null as 0.0; anything non-numeric fails.
func coerceRate(v any) (float64, bool) {
	switch t := v.(type) {
	case nil:
		return 0.0, true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(t, 64)
		return f, err == nil
	default:
		return 0, false
	}
}
