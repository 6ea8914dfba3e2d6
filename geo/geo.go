// Package geo resolves the caller's apparent region so that failures on
// region-locked clips can be explained with a location hint.
package geo

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/metafates/gache"
	"github.com/virta-dl/virta/filesystem"
	"github.com/virta-dl/virta/network"
	"github.com/virta-dl/virta/util"
	"github.com/virta-dl/virta/where"
)

// lookupURL returns the caller's country code based on the requesting IP.
const lookupURL = "https://api.country.is"

// regionCacher caches the lookup result so that repeated runs do not hit the
// geolocation service on every failed clip.
var regionCacher = gache.New[string](&gache.Options{
	Path:       where.GeoCache(),
	Lifetime:   time.Hour * 24,
	FileSystem: &filesystem.GacheFs{},
})

// Locator answers region membership questions against a remote IP
// geolocation service, caching the answer on disk.
type Locator struct{}

// NewLocator returns a geolocator backed by the public lookup service.
func NewLocator() *Locator {
	return &Locator{}
}

// LocatedIn reports whether the caller appears to be inside the region.
// Lookup failures count as inside: a missing answer must never produce a
// misleading "you are elsewhere" hint.
func (l *Locator) LocatedIn(region string) bool {
	current, err := l.region()
	if err != nil || current == "" {
		return true
	}

	return strings.EqualFold(current, region)
}

func (l *Locator) region() (string, error) {
	cached, expired, err := regionCacher.Get()
	if err == nil && !expired && cached != "" {
		return cached, nil
	}

	resp, err := network.Client.Get(lookupURL)
	if err != nil {
		return "", err
	}
	defer util.Ignore(resp.Body.Close)

	var answer struct {
		Country string `json:"country"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&answer); err != nil {
		return "", err
	}

	if resp.StatusCode == http.StatusOK && answer.Country != "" {
		_ = regionCacher.Set(answer.Country)
	}

	return answer.Country, nil
}
