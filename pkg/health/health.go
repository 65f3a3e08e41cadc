// Package health exposes liveness and readiness probes for a running
// simulation. Checks are registered by name and evaluated on each readiness
// request.
package health

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/opd-ai/go-hexbounce/pkg/simulation"
)

// Status values reported by the probes
const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

// checkTimeout bounds a single readiness request
const checkTimeout = 5 * time.Second

// HealthCheck defines the interface for individual health checks.
type HealthCheck interface {
	// Name returns the unique name of this health check
	Name() string
	// Check returns an error if the component is unhealthy
	Check(ctx context.Context) error
}

// HealthStatus represents the overall health status of the application.
type HealthStatus struct {
	Status string                     `json:"status"`
	Checks map[string]ComponentHealth `json:"checks"`
}

// ComponentHealth represents the health status of an individual component.
type ComponentHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// HealthChecker manages and executes health checks.
type HealthChecker struct {
	checks map[string]HealthCheck
	mu     sync.RWMutex
}

// NewHealthChecker creates a new health checker instance.
func NewHealthChecker() *HealthChecker {
	return &HealthChecker{
		checks: make(map[string]HealthCheck),
	}
}

// AddCheck registers a check, replacing any check with the same name.
func (hc *HealthChecker) AddCheck(check HealthCheck) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	hc.checks[check.Name()] = check
}

// RemoveCheck removes a health check by name.
func (hc *HealthChecker) RemoveCheck(name string) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	delete(hc.checks, name)
}

// CheckHealth runs every registered check in name order. The overall status
// is healthy only if all checks pass.
func (hc *HealthChecker) CheckHealth(ctx context.Context) HealthStatus {
	hc.mu.RLock()
	names := make([]string, 0, len(hc.checks))
	for name := range hc.checks {
		names = append(names, name)
	}
	checks := make([]HealthCheck, 0, len(names))
	sort.Strings(names)
	for _, name := range names {
		checks = append(checks, hc.checks[name])
	}
	hc.mu.RUnlock()

	status := HealthStatus{
		Status: StatusHealthy,
		Checks: make(map[string]ComponentHealth, len(checks)),
	}
	for _, check := range checks {
		if err := check.Check(ctx); err != nil {
			status.Status = StatusUnhealthy
			status.Checks[check.Name()] = ComponentHealth{Status: StatusUnhealthy, Message: err.Error()}
			continue
		}
		status.Checks[check.Name()] = ComponentHealth{Status: StatusHealthy}
	}
	return status
}

// LivenessHandler answers 200 while the process can serve requests.
func (hc *HealthChecker) LivenessHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

// ReadinessHandler runs all checks and answers 200 when healthy, 503
// otherwise.
func (hc *HealthChecker) ReadinessHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
	defer cancel()

	health := hc.CheckHealth(ctx)
	code := http.StatusOK
	if health.Status != StatusHealthy {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, health)
}

// Handler returns a mux serving /health and /ready.
func (hc *HealthChecker) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", hc.LivenessHandler)
	mux.HandleFunc("/ready", hc.ReadinessHandler)
	return mux
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}

// LoopHealthCheck fails when the simulation loop is not running or has not
// advanced within the stall window while unpaused.
type LoopHealthCheck struct {
	sim   *simulation.Simulation
	stall time.Duration
	now   func() time.Time

	mu       sync.Mutex
	lastTick uint64
	lastSeen time.Time
}

// NewLoopHealthCheck creates a loop check for sim.
func NewLoopHealthCheck(sim *simulation.Simulation, stall time.Duration) *LoopHealthCheck {
	return &LoopHealthCheck{sim: sim, stall: stall, now: time.Now}
}

// Name returns the name of this health check.
func (l *LoopHealthCheck) Name() string {
	return "simulation_loop"
}

// Check verifies that ticks keep advancing.
func (l *LoopHealthCheck) Check(ctx context.Context) error {
	if !l.sim.Running() {
		return errors.New("simulation loop is not running")
	}

	state := l.sim.Snapshot()
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.lastSeen.IsZero() || state.Tick != l.lastTick || state.Paused {
		l.lastTick = state.Tick
		l.lastSeen = now
		return nil
	}
	if idle := now.Sub(l.lastSeen); idle > l.stall {
		return fmt.Errorf("no tick for %s (stuck at %d)", idle.Round(time.Millisecond), state.Tick)
	}
	return nil
}

// ContainmentHealthCheck fails when the body state is not finite or its
// center has left the hexagon's circumcircle.
type ContainmentHealthCheck struct {
	sim *simulation.Simulation
}

// NewContainmentHealthCheck creates a containment check for sim.
func NewContainmentHealthCheck(sim *simulation.Simulation) *ContainmentHealthCheck {
	return &ContainmentHealthCheck{sim: sim}
}

// Name returns the name of this health check.
func (c *ContainmentHealthCheck) Name() string {
	return "containment"
}

// Check verifies the body is finite and inside the boundary.
func (c *ContainmentHealthCheck) Check(ctx context.Context) error {
	state := c.sim.Snapshot()
	b := state.Body
	for _, v := range []float64{b.Position.X, b.Position.Y, b.Velocity.X, b.Velocity.Y} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("body state is not finite: %+v", b)
		}
	}
	if d := b.Position.Distance(state.Pose.Center()); d > state.Pose.Radius {
		return fmt.Errorf("body escaped: %.2f from center, boundary radius %.2f", d, state.Pose.Radius)
	}
	return nil
}

// MemoryHealthCheck implements HealthCheck for memory usage monitoring.
type MemoryHealthCheck struct {
	maxMemoryMB    int64
	getMemoryUsage func() int64
}

// NewMemoryHealthCheck creates a health check for memory usage. A nil
// getMemoryUsage reads the Go runtime heap.
func NewMemoryHealthCheck(maxMemoryMB int64, getMemoryUsage func() int64) *MemoryHealthCheck {
	if getMemoryUsage == nil {
		getMemoryUsage = heapAllocMB
	}
	return &MemoryHealthCheck{
		maxMemoryMB:    maxMemoryMB,
		getMemoryUsage: getMemoryUsage,
	}
}

func heapAllocMB() int64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return int64(m.Alloc / 1024 / 1024)
}

// Name returns the name of this health check.
func (m *MemoryHealthCheck) Name() string {
	return "memory"
}

// Check verifies that memory usage is within acceptable limits.
func (m *MemoryHealthCheck) Check(ctx context.Context) error {
	currentMB := m.getMemoryUsage()
	if currentMB > m.maxMemoryMB {
		return fmt.Errorf("memory usage %dMB exceeds limit %dMB", currentMB, m.maxMemoryMB)
	}
	return nil
}
