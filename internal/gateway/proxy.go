package gateway

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Sethuso/product-management-system/internal/config"
	"github.com/Sethuso/product-management-system/internal/utils"
)

// backend is one reverse-proxy target matched by path prefix. The table is
// built once at startup and read-only afterwards.
type backend struct {
	prefix string
	proxy  *httputil.ReverseProxy
}

// Proxy routes requests to the owning backend service by path prefix.
type Proxy struct {
	backends []backend
}

// NewProxy builds the prefix routing table from the configured peer URLs.
func NewProxy(peers config.PeerConfig) (*Proxy, error) {
	table := []struct {
		prefix string
		rawURL string
	}{
		{"/com/api/products", peers.ProductURL},
		{"/com/api/categories", peers.ProductURL},
		{"/com/api/category-service", peers.ProductURL},
		{"/com/api/price-service", peers.PricingURL},
		{"/com/api/inventory-service", peers.InventoryURL},
		{"/com/api/user-service", peers.UserURL},
		{"/login", peers.UserURL},
		{"/validate", peers.UserURL},
		{"/assign-role", peers.UserURL},
	}

	p := &Proxy{}
	for _, entry := range table {
		target, err := url.Parse(entry.rawURL)
		if err != nil {
			return nil, fmt.Errorf("invalid backend URL %q: %w", entry.rawURL, err)
		}
		rp := httputil.NewSingleHostReverseProxy(target)
		rp.ErrorHandler = backendErrorHandler(entry.prefix)
		p.backends = append(p.backends, backend{prefix: entry.prefix, proxy: rp})
	}
	return p, nil
}

// backendErrorHandler reports an unreachable backend with the standard
// envelope instead of the default bare 502.
func backendErrorHandler(prefix string) func(http.ResponseWriter, *http.Request, error) {
	return func(w http.ResponseWriter, r *http.Request, err error) {
		log.Error().Err(err).Str("prefix", prefix).Str("path", r.URL.Path).Msg("backend unreachable")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprintf(w, `{"success":false,"message":"Backend service is currently unavailable","traceId":%q,"httpStatus":503}`,
			r.Header.Get("X-Trace-Id"))
	}
}

// Handler forwards the request to the backend owning its path prefix.
func (p *Proxy) Handler(c *gin.Context) {
	path := c.Request.URL.Path
	for _, b := range p.backends {
		if strings.HasPrefix(path, b.prefix) {
			b.proxy.ServeHTTP(c.Writer, c.Request)
			return
		}
	}
	utils.Error(c, http.StatusNotFound, "No route for path")
}
