// Package devicecache remembers which peer addresses a scan session
// has already seen, the way the teacher's main loop checks Redis
// before treating an advertising report as a newly discovered device.
package devicecache

import (
	"context"
	"fmt"
	"time"

	"github.com/kofalt/go-memoize"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/ridgeline-systems/blehci/hci"
)

var log = logrus.WithField("component", "devicecache")

// keyPrefix namespaces this package's keys within a shared Redis
// instance, mirroring the teacher's own "gotooth:<address>" scheme.
const keyPrefix = "blehci"

// Cache tracks peers observed during BLE scanning. A Redis string key per
// address holds its last-seen local name with a TTL so a peer silent for
// a full scan window is treated as newly discovered again; an
// in-process memoizer caches the (comparatively expensive) address
// classification the session layer would otherwise repeat for every
// advertising report from the same still-resolving address.
type Cache struct {
	redis    *redis.Client
	classify *memoize.Memoizer
	ttl      time.Duration
}

// New builds a Cache against a Redis server at addr, with seenTTL
// governing how long an address is remembered as already seen.
func New(addr string, seenTTL time.Duration) *Cache {
	return &Cache{
		redis:    redis.NewClient(&redis.Options{Addr: addr}),
		classify: memoize.NewMemoizer(5*time.Minute, 10*time.Minute),
		ttl:      seenTTL,
	}
}

func (c *Cache) key(addr string) string {
	return fmt.Sprintf("%s:%s", keyPrefix, addr)
}

// Seen reports whether addr (a display-formatted peer address) has
// already been recorded as discovered within the TTL window, without
// marking it seen. addr is a plain string rather than hci.DeviceAddress
// because advertising reports carry a ConnectionPeerAddress, which may
// resolve to either a public or a random address; callers format
// whichever they have before calling in.
func (c *Cache) Seen(ctx context.Context, addr string) (bool, error) {
	_, err := c.redis.Get(ctx, c.key(addr)).Result()
	switch {
	case err == redis.Nil:
		return false, nil
	case err != nil:
		return false, fmt.Errorf("devicecache: check %s: %w", addr, err)
	default:
		return true, nil
	}
}

// MarkSeen records addr as discovered, storing localName (which may be
// empty) as the cached value, expiring after the Cache's seenTTL.
func (c *Cache) MarkSeen(ctx context.Context, addr string, localName string) error {
	if err := c.redis.Set(ctx, c.key(addr), localName, c.ttl).Err(); err != nil {
		return fmt.Errorf("devicecache: mark %s seen: %w", addr, err)
	}
	return nil
}

// ClassifyRandomAddress resolves octets into their RandomAddress
// subtype (static, resolvable private, non-resolvable private),
// memoizing the result per address for the lifetime of the memoizer's
// expiration window. Advertising reports from an actively-scanning
// peer repeat the same address many times a second, so this avoids
// redoing the bit-pattern classification on every report.
func (c *Cache) ClassifyRandomAddress(octets [6]byte) (hci.RandomAddress, error) {
	key := fmt.Sprintf("%x", octets)
	result, err, cached := c.classify.Memoize(key, func() (interface{}, error) {
		return hci.NewRandomAddressFromOctets(octets)
	})
	if err != nil {
		return hci.RandomAddress{}, err
	}
	addr := result.(hci.RandomAddress)
	log.WithFields(logrus.Fields{"address": addr.String(), "cached": cached}).Debug("classified random address")
	return addr, nil
}

// Close releases the Redis client's connections.
func (c *Cache) Close() error {
	return c.redis.Close()
}
