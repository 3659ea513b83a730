package dispatcher

import (
	"crypto/tls"
	"sync/atomic"
	"time"

	"github.com/valyala/fasthttp"
)

// HTTPPool round-robins over a set of warm fasthttp clients so that
// punishment requests never wait on a cold TLS handshake.
type HTTPPool struct {
	clients []*fasthttp.Client
	size    uint32
	index   uint32
}

func NewHTTPPool(size int) *HTTPPool {
	if size < 1 {
		size = 1
	}

	tlsConfig := &tls.Config{
		MinVersion:         tls.VersionTLS12,
		ClientSessionCache: tls.NewLRUClientSessionCache(64),
	}

	clients := make([]*fasthttp.Client, size)
	for i := 0; i < size; i++ {
		clients[i] = &fasthttp.Client{
			MaxConnsPerHost:           64,
			MaxIdleConnDuration:       180 * time.Second,
			ReadTimeout:               2 * time.Second,
			WriteTimeout:              2 * time.Second,
			MaxIdemponentCallAttempts: 1,
			DialDualStack:             true,
			TLSConfig:                 tlsConfig,
			NoDefaultUserAgentHeader:  true,
		}
	}

	return &HTTPPool{
		clients: clients,
		size:    uint32(size),
	}
}

func (hp *HTTPPool) GetClient() *fasthttp.Client {
	i := atomic.AddUint32(&hp.index, 1)
	return hp.clients[i%hp.size]
}

// Warmup primes the first client's connection to the Discord API so the
// first real punishment does not pay connection setup.
func (hp *HTTPPool) Warmup() {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(apiBase + "/gateway")
	req.Header.SetMethod("GET")

	for i := 0; i < 2; i++ {
		if err := hp.clients[0].DoTimeout(req, resp, 2*time.Second); err == nil {
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
}
