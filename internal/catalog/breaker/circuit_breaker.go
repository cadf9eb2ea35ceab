package breaker

import (
	"log/slog"
	"sync"
	"time"
)

type CircuitState int

const (
	CircuitClosed CircuitState = iota
	CircuitOpen
	CircuitHalfOpen
)

func (s CircuitState) String() string {
	switch s {
	case CircuitClosed:
		return "closed"
	case CircuitOpen:
		return "open"
	case CircuitHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

type Config struct {
	FailureThreshold int           // Consecutive failures before opening
	SuccessThreshold int           // Successes in half-open before closing; also caps concurrent half-open calls
	OpenTimeout      time.Duration // Time spent open before probing
	RequestTimeout   time.Duration // Deadline applied to each guarded call
	VolumeThreshold  int           // Minimum requests before the breaker may open
	Name             string
	Logger           *slog.Logger
}

type CircuitBreaker struct {
	mu               sync.RWMutex
	state            CircuitState
	failureCount     int
	successCount     int
	requestCount     int
	halfOpenInFlight int
	lastFailure      time.Time
	lastSuccess      time.Time
	lastStateChange  time.Time
	config           Config
	now              func() time.Time
}

func NewCircuitBreaker(config Config) *CircuitBreaker {
	if config.FailureThreshold == 0 {
		config.FailureThreshold = 5
	}
	if config.SuccessThreshold == 0 {
		config.SuccessThreshold = 2
	}
	if config.OpenTimeout == 0 {
		config.OpenTimeout = 30 * time.Second
	}
	if config.RequestTimeout == 0 {
		config.RequestTimeout = 5 * time.Second
	}
	if config.VolumeThreshold == 0 {
		config.VolumeThreshold = 10
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	return &CircuitBreaker{
		state:  CircuitClosed,
		config: config,
		now:    time.Now,
	}
}

func (cb *CircuitBreaker) transition(to CircuitState) {
	from := cb.state
	cb.state = to
	cb.failureCount = 0
	cb.successCount = 0
	cb.halfOpenInFlight = 0
	cb.lastStateChange = cb.now()
	cb.config.Logger.Info("circuit_breaker_state_change",
		slog.String("breaker", cb.config.Name),
		slog.String("from_state", from.String()),
		slog.String("to_state", to.String()),
		slog.Int("request_count", cb.requestCount),
	)
}

func (cb *CircuitBreaker) State() CircuitState {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return cb.state
}

// AllowRequest reports whether a call may go through, moving an expired open
// breaker to half-open. Half-open admits only as many calls as are still needed to
// close; every admitted call must end with RecordSuccess, RecordFailure or Release.
func (cb *CircuitBreaker) AllowRequest() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case CircuitOpen:
		if cb.now().Sub(cb.lastStateChange) < cb.config.OpenTimeout {
			return false
		}
		cb.transition(CircuitHalfOpen)
		cb.halfOpenInFlight = 1
		return true
	case CircuitHalfOpen:
		if cb.halfOpenInFlight+cb.successCount >= cb.config.SuccessThreshold {
			return false
		}
		cb.halfOpenInFlight++
		return true
	default:
		return true
	}
}

// Release gives back a half-open slot for a call that ended without a verdict on
// the backend.
func (cb *CircuitBreaker) Release() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.releaseSlot()
}

func (cb *CircuitBreaker) releaseSlot() {
	if cb.state == CircuitHalfOpen && cb.halfOpenInFlight > 0 {
		cb.halfOpenInFlight--
	}
}

func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.requestCount++
	cb.lastSuccess = cb.now()

	switch cb.state {
	case CircuitHalfOpen:
		cb.releaseSlot()
		cb.successCount++
		if cb.successCount >= cb.config.SuccessThreshold {
			cb.transition(CircuitClosed)
		}
	case CircuitClosed:
		cb.failureCount = 0
	}
}

func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.requestCount++
	cb.lastFailure = cb.now()

	switch cb.state {
	case CircuitHalfOpen:
		cb.transition(CircuitOpen)
	case CircuitClosed:
		cb.failureCount++
		if cb.failureCount >= cb.config.FailureThreshold && cb.requestCount >= cb.config.VolumeThreshold {
			cb.transition(CircuitOpen)
		}
	}
}

func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.requestCount = 0
	cb.transition(CircuitClosed)
}

func (cb *CircuitBreaker) Stats() map[string]interface{} {
	cb.mu.RLock()
	defer cb.mu.RUnlock()

	return map[string]interface{}{
		"state":             cb.state.String(),
		"failure_count":     cb.failureCount,
		"success_count":     cb.successCount,
		"request_count":     cb.requestCount,
		"half_open_calls":   cb.halfOpenInFlight,
		"last_failure":      cb.lastFailure,
		"last_success":      cb.lastSuccess,
		"last_state_change": cb.lastStateChange,
	}
}
