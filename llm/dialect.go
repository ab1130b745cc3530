package llm

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/kbukum/voicelist/httpclient"
)

// Dialect translates CompletionRequest and CompletionResponse to one
// vendor's wire format. The adapter owns transport, auth placement and
// resilience; a dialect only knows URLs and JSON shapes.
type Dialect interface {
	Name() string
	// BaseURL and Model are fallbacks for an empty Config.
	BaseURL() string
	Model() string
	// Endpoint is the path, relative to BaseURL, that completes with model.
	Endpoint(model string) string
	Authorize(apiKey string) *httpclient.AuthConfig
	// Encode returns a value that marshals to the vendor request body.
	Encode(req CompletionRequest) (any, error)
	Decode(body []byte) (*CompletionResponse, error)
}

var dialects = struct {
	sync.RWMutex
	byName map[string]Dialect
}{byName: map[string]Dialect{}}

// RegisterDialect is called from the init of each dialect package. A later
// registration under the same name wins.
func RegisterDialect(name string, d Dialect) {
	dialects.Lock()
	dialects.byName[name] = d
	dialects.Unlock()
}

func GetDialect(name string) (Dialect, error) {
	dialects.RLock()
	d, ok := dialects.byName[name]
	dialects.RUnlock()
	if !ok {
		return nil, fmt.Errorf("llm: dialect %q is not registered (registered: %v)", name, Dialects())
	}
	return d, nil
}

// Dialects lists registered names in order.
func Dialects() []string {
	dialects.RLock()
	defer dialects.RUnlock()
	return slices.Sorted(maps.Keys(dialects.byName))
}
