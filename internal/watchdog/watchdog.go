package watchdog

import (
	"fmt"
	"sync/atomic"
	"time"

	"go-guardian/internal/logging"

	"github.com/valyala/fasthttp"
)

// Watchdog serves a keep-alive HTTP endpoint for hosting platforms that
// recycle idle processes, and reports gateway health on it. Healthy means
// the heartbeat callback produced a latency recently.
type Watchdog struct {
	latency   func() time.Duration
	lastCheck int64
	healthy   uint32
	running   uint32
}

func New(latency func() time.Duration) *Watchdog {
	return &Watchdog{latency: latency, healthy: 1}
}

// Start begins health polling and the keep-alive listener. Both are
// best-effort; a failed listen is logged and the guard runs on without it.
func (w *Watchdog) Start(addr string, interval time.Duration) {
	atomic.StoreUint32(&w.running, 1)
	go w.monitorLoop(interval)
	go func() {
		if err := fasthttp.ListenAndServe(addr, w.handle); err != nil {
			logging.Warn("Keep-alive listener failed on %s: %v", addr, err)
		}
	}()
}

func (w *Watchdog) Stop() {
	atomic.StoreUint32(&w.running, 0)
}

func (w *Watchdog) monitorLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for atomic.LoadUint32(&w.running) == 1 {
		<-ticker.C

		latency := w.latency()
		atomic.StoreInt64(&w.lastCheck, time.Now().UnixNano())
		if latency <= 0 || latency > 30*time.Second {
			atomic.StoreUint32(&w.healthy, 0)
			logging.Error("Watchdog: gateway unhealthy (heartbeat latency %v)", latency)
		} else {
			atomic.StoreUint32(&w.healthy, 1)
		}
	}
}

// IsHealthy reports the last observed gateway state.
func (w *Watchdog) IsHealthy() bool {
	return atomic.LoadUint32(&w.healthy) == 1
}

func (w *Watchdog) handle(ctx *fasthttp.RequestCtx) {
	if string(ctx.Path()) != "/health" {
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		return
	}

	if w.IsHealthy() {
		ctx.SetStatusCode(fasthttp.StatusOK)
		fmt.Fprint(ctx, "ok")
		return
	}
	ctx.SetStatusCode(fasthttp.StatusServiceUnavailable)
	fmt.Fprint(ctx, "gateway unhealthy")
}
