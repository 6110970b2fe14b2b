package util

import (
	"net"
	"os"
	"sync/atomic"
	"time"

	"github.com/oschwald/geoip2-golang"
	cache "github.com/patrickmn/go-cache"
)

// IPLocation is the resolved city and country of an address.
type IPLocation struct {
	City    string
	Country string
}

// String renders the location as "City/Country", or whichever part is known.
func (l IPLocation) String() string {
	switch {
	case l.City != "" && l.Country != "":
		return l.City + "/" + l.Country
	case l.Country != "":
		return l.Country
	}
	return l.City
}

var (
	geoipDB        *geoip2.Reader
	geoipCache     *cache.Cache
	geoipCacheHits int64
	geoipCacheMiss int64
)

// InitGeoIP opens a GeoIP2/GeoLite2 .mmdb file and an in-memory lookup cache.
// An empty dbPath falls back to GEOIP_DB_PATH; if both are empty lookups are
// disabled and nil is returned.
func InitGeoIP(dbPath string) error {
	if dbPath == "" {
		dbPath = os.Getenv("GEOIP_DB_PATH")
	}
	if dbPath == "" {
		return nil
	}

	r, err := geoip2.Open(dbPath)
	if err != nil {
		return err
	}
	geoipDB = r
	// Cache entries for 24h, purge every hour
	geoipCache = cache.New(24*time.Hour, 1*time.Hour)
	return nil
}

// CloseGeoIP closes the GeoIP DB if opened.
func CloseGeoIP() {
	if geoipDB != nil {
		_ = geoipDB.Close()
		geoipDB = nil
	}
	geoipCache = nil
}

// GetIPLocation resolves ip through the cache and then the local database.
// Private, loopback and unparsable addresses resolve to an empty location.
func GetIPLocation(ip string) IPLocation {
	addr := net.ParseIP(ip)
	if addr == nil || addr.IsLoopback() || addr.IsPrivate() || addr.IsUnspecified() || addr.IsLinkLocalUnicast() {
		return IPLocation{}
	}

	if geoipCache != nil {
		if v, ok := geoipCache.Get(ip); ok {
			atomic.AddInt64(&geoipCacheHits, 1)
			if loc, ok := v.(IPLocation); ok {
				return loc
			}
		}
	}
	atomic.AddInt64(&geoipCacheMiss, 1)

	if geoipDB == nil {
		return IPLocation{}
	}

	rec, err := geoipDB.City(addr)
	if err != nil {
		return IPLocation{}
	}

	loc := IPLocation{
		City:    rec.City.Names["en"],
		Country: rec.Country.Names["en"],
	}
	if loc.Country == "" {
		loc.Country = rec.Country.IsoCode
	}

	if geoipCache != nil {
		geoipCache.Set(ip, loc, cache.DefaultExpiration)
	}
	return loc
}

// GetGeoIPCacheMetrics returns the cache hits and misses and current cache size.
func GetGeoIPCacheMetrics() (hits int64, misses int64, size int) {
	hits = atomic.LoadInt64(&geoipCacheHits)
	misses = atomic.LoadInt64(&geoipCacheMiss)
	if geoipCache != nil {
		return hits, misses, geoipCache.ItemCount()
	}
	return hits, misses, 0
}
