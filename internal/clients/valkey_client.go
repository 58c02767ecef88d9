package clients

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/spacesedan/reviewsense/config"
	"github.com/valkey-io/valkey-go"
)

var (
	valkeyInstance *ValkeyClient
	valkeyOnce     sync.Once
	valkeyErr      error
)

const valkeyRetries = 3

// ValkeyClient caches generated key points. It satisfies review.Cache.
type ValkeyClient struct {
	Client valkey.Client
	cfg    config.ValkeyConfig
	mu     sync.Mutex
}

// InitValkey connects once and returns the shared client.
func InitValkey(cfg config.ValkeyConfig) (*ValkeyClient, error) {
	valkeyOnce.Do(func() {
		client, err := connectValkey(cfg)
		if err != nil {
			valkeyErr = err
			return
		}
		valkeyInstance = &ValkeyClient{Client: client, cfg: cfg}
	})
	return valkeyInstance, valkeyErr
}

func connectValkey(cfg config.ValkeyConfig) (valkey.Client, error) {
	opts := valkey.ClientOption{
		InitAddress:      cfg.InitAddress,
		Password:         cfg.Password,
		ConnWriteTimeout: 5 * time.Second,
		SelectDB:         0,
	}
	if cfg.TLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	client, err := valkey.NewClient(opts)
	if err != nil {
		return nil, fmt.Errorf("[ValkeyClient] failed to create Valkey: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("[ValkeyClient] failed to ping Valkey: %w", err)
	}

	slog.Info("[ValkeyClient] Successfully connected to valkey",
		slog.String("address", strings.Join(cfg.InitAddress, ",")))
	return client, nil
}

func (vc *ValkeyClient) recreateClient() {
	vc.mu.Lock()
	defer vc.mu.Unlock()

	slog.Warn("[ValkeyClient] Attempting to recreate Valkey client...")
	client, err := connectValkey(vc.cfg)
	if err != nil {
		slog.Error("[ValkeyClient] Recreate failed", slog.String("error", err.Error()))
		return
	}
	vc.Client.Close()
	vc.Client = client
}

func (vc *ValkeyClient) client() valkey.Client {
	vc.mu.Lock()
	defer vc.mu.Unlock()
	return vc.Client
}

func (vc *ValkeyClient) Close() {
	vc.client().Close()
}

// Ping reports whether the server answers.
func (vc *ValkeyClient) Ping(ctx context.Context) error {
	c := vc.client()
	return c.Do(ctx, c.B().Ping().Build()).Error()
}

// Get returns the cached value for key. A missing key is not an error.
func (vc *ValkeyClient) Get(ctx context.Context, key string) (string, bool, error) {
	res := vc.DoWithRetry(ctx, func(c valkey.Client) valkey.Completed {
		return c.B().Get().Key(key).Build()
	}, valkeyRetries)

	value, err := res.ToString()
	if valkey.IsValkeyNil(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("valkey get %s: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key for ttl, rounded down to whole seconds.
func (vc *ValkeyClient) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	seconds := int64(ttl / time.Second)
	if seconds < 1 {
		seconds = 1
	}

	res := vc.DoWithRetry(ctx, func(c valkey.Client) valkey.Completed {
		return c.B().Set().Key(key).Value(value).ExSeconds(seconds).Build()
	}, valkeyRetries)
	if err := res.Error(); err != nil {
		return fmt.Errorf("valkey set %s: %w", key, err)
	}

	slog.Debug("[ValkeyClient] Cached key points", slog.String("key", key))
	return nil
}

// DeletePrefix removes every key that starts with prefix and returns how many
// were deleted.
func (vc *ValkeyClient) DeletePrefix(ctx context.Context, prefix string) (int, error) {
	c := vc.client()
	var cursor uint64
	deleted := 0
	for {
		entry, err := c.Do(ctx, c.B().Scan().Cursor(cursor).Match(prefix+"*").Count(100).Build()).AsScanEntry()
		if err != nil {
			return deleted, fmt.Errorf("valkey scan %s: %w", prefix, err)
		}
		if len(entry.Elements) > 0 {
			cmds := make([]valkey.Completed, 0, len(entry.Elements))
			for _, key := range entry.Elements {
				cmds = append(cmds, c.B().Del().Key(key).Build())
			}
			for _, res := range vc.DoMultiWithRetry(ctx, cmds, valkeyRetries) {
				if err := res.Error(); err != nil {
					return deleted, fmt.Errorf("valkey del: %w", err)
				}
				deleted++
			}
		}
		if entry.Cursor == 0 {
			return deleted, nil
		}
		cursor = entry.Cursor
	}
}

func (vc *ValkeyClient) DoMultiWithRetry(ctx context.Context, completed []valkey.Completed, retries int) []valkey.ValkeyResult {
	var results []valkey.ValkeyResult

	for i := 0; i < retries; i++ {
		results = vc.client().DoMulti(ctx, completed...)
		hasErr := false
		for _, r := range results {
			if r.Error() != nil {
				hasErr = true
				slog.Warn("[ValkeyClient] Do Multi failed",
					slog.Int("attempt", i+1),
					slog.String("error", r.Error().Error()))
				if isConnectionError(r.Error()) {
					vc.recreateClient()
				}
				break
			}
		}
		if !hasErr || ctx.Err() != nil {
			break
		}
		time.Sleep(250 * time.Millisecond)
	}

	return results
}

// DoWithRetry rebuilds the command for each attempt. A completed
// command must not be reused once the client is recreated.
func (vc *ValkeyClient) DoWithRetry(ctx context.Context, build func(valkey.Client) valkey.Completed, retries int) valkey.ValkeyResult {
	var result valkey.ValkeyResult
	for i := 0; i < retries; i++ {
		c := vc.client()
		result = c.Do(ctx, build(c))
		err := result.Error()
		if err == nil || valkey.IsValkeyNil(err) {
			break
		}

		slog.Warn("[ValkeyClient] Do failed",
			slog.Int("attempt", i+1),
			slog.String("error", err.Error()))
		if isConnectionError(err) {
			vc.recreateClient()
		}
		if ctx.Err() != nil {
			break
		}
		time.Sleep(250 * time.Millisecond)
	}

	return result
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "EOF") ||
		strings.Contains(msg, "i/o timeout")
}
