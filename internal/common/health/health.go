package health

import (
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
)

// Status represents the health status of a component
type Status string

const (
	StatusUp   Status = "UP"
	StatusDown Status = "DOWN"
)

// Check represents a single health check
type Check struct {
	Name   string         `json:"name"`
	Status Status         `json:"status"`
	Data   map[string]any `json:"data,omitempty"`
}

// Response represents the health endpoint response
type Response struct {
	Status Status  `json:"status"`
	Checks []Check `json:"checks,omitempty"`
}

// CheckFunc is a function that performs a health check
type CheckFunc func() Check

// Checker manages health checks for the application
type Checker struct {
	mu              sync.RWMutex
	livenessChecks  []CheckFunc
	readinessChecks []CheckFunc
}

// NewChecker creates a new health checker
func NewChecker() *Checker {
	return &Checker{
		livenessChecks:  make([]CheckFunc, 0),
		readinessChecks: make([]CheckFunc, 0),
	}
}

// AddLivenessCheck adds a liveness check
func (c *Checker) AddLivenessCheck(check CheckFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.livenessChecks = append(c.livenessChecks, check)
}

// AddReadinessCheck adds a readiness check
func (c *Checker) AddReadinessCheck(check CheckFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.readinessChecks = append(c.readinessChecks, check)
}

// runChecks runs a set of health checks and returns the aggregated response
func (c *Checker) runChecks(checks []CheckFunc) Response {
	c.mu.RLock()
	defer c.mu.RUnlock()

	response := Response{
		Status: StatusUp,
		Checks: make([]Check, 0, len(checks)),
	}

	for _, checkFunc := range checks {
		check := checkFunc()
		response.Checks = append(response.Checks, check)
		if check.Status == StatusDown {
			response.Status = StatusDown
		}
	}

	return response
}

// GetLiveness returns the liveness status
func (c *Checker) GetLiveness() Response {
	return c.runChecks(c.livenessChecks)
}

// GetReadiness returns the readiness status
func (c *Checker) GetReadiness() Response {
	return c.runChecks(c.readinessChecks)
}

// HandleLive handles the liveness endpoint. With no liveness checks
// registered, a running server is UP.
func (c *Checker) HandleLive(w http.ResponseWriter, r *http.Request) {
	c.writeResponse(w, c.GetLiveness())
}

// HandleReady handles the readiness endpoint
func (c *Checker) HandleReady(w http.ResponseWriter, r *http.Request) {
	c.writeResponse(w, c.GetReadiness())
}

func (c *Checker) writeResponse(w http.ResponseWriter, response Response) {
	w.Header().Set("Content-Type", "application/json")

	if response.Status == StatusDown {
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}

	json.NewEncoder(w).Encode(response)
}

// MongoDBCheck creates a health check for MongoDB
func MongoDBCheck(pingFunc func() error) CheckFunc {
	return func() Check {
		if err := pingFunc(); err != nil {
			return Check{
				Name:   "MongoDB",
				Status: StatusDown,
				Data: map[string]any{
					"error": err.Error(),
				},
			}
		}
		return Check{
			Name:   "MongoDB",
			Status: StatusUp,
		}
	}
}

// IndexGate reports readiness of the startup index creation. The binary
// flips it once the unique indexes backing the role invariants exist;
// serving writes before that would let duplicate names or a second root
// role slip through.
type IndexGate struct {
	ready atomic.Bool
}

// MarkReady records that index creation completed.
func (g *IndexGate) MarkReady() {
	g.ready.Store(true)
}

// Check returns the readiness check for the gate.
func (g *IndexGate) Check() CheckFunc {
	return func() Check {
		if !g.ready.Load() {
			return Check{
				Name:   "Indexes",
				Status: StatusDown,
				Data: map[string]any{
					"reason": "unique indexes not yet created",
				},
			}
		}
		return Check{
			Name:   "Indexes",
			Status: StatusUp,
		}
	}
}
