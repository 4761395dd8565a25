// Package clock implements Cristian's algorithm with one-sided
// correction to estimate the map server's ClientTick counter from
// round-trip keep-alive samples.
package clock

import (
	"sync"
	"time"
)

// fallbackTick is returned when the synchronizer's critical section
// panics, the Go stand-in for a poisoned mutex.
const fallbackTick uint32 = 100

// Synchronizer tracks a running estimate of the server's 32-bit
// ClientTick counter. Zero value is ready to use: BuildRequestTick
// before the first AbsorbResponse simply replays the last known
// estimate (zero).
type Synchronizer struct {
	mu sync.Mutex

	requestSent      time.Time
	responseReceived time.Time
	clientTick       float64
}

// New returns a Synchronizer with no samples yet.
func New() *Synchronizer {
	return &Synchronizer{}
}

// BuildRequestTick projects the current estimate forward by the time
// elapsed since the last response and records now as the request
// timestamp, for stamping an outbound RequestServerTick packet.
func (s *Synchronizer) BuildRequestTick(now time.Time) (tick uint32) {
	defer func() {
		if recover() != nil {
			tick = fallbackTick
		}
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	elapsed := float64(0)
	if !s.responseReceived.IsZero() {
		elapsed = now.Sub(s.responseReceived).Seconds() * 1000
	}
	s.requestSent = now
	return uint32(s.clientTick + elapsed)
}

// AbsorbResponse folds a ServerTick reply into the running estimate,
// applying half the observed round-trip time to account for the
// server having stamped its tick at receive time.
func (s *Synchronizer) AbsorbResponse(serverTick uint32, receivedAt time.Time) (tick uint32) {
	defer func() {
		if recover() != nil {
			tick = fallbackTick
		}
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	rtt := receivedAt.Sub(s.requestSent)
	s.responseReceived = receivedAt
	s.clientTick = float64(serverTick) + rtt.Seconds()*1000/2
	return uint32(s.clientTick)
}

// CurrentTick returns the running estimate, truncated, for outbound
// packets that need a tick stamp but do not round-trip through
// AbsorbResponse.
func (s *Synchronizer) CurrentTick() (tick uint32) {
	defer func() {
		if recover() != nil {
			tick = fallbackTick
		}
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	return uint32(s.clientTick)
}

// EstimateAt projects the running estimate forward to now without
// recording a new request, for the façade's read-only GetClientTick
// query.
func (s *Synchronizer) EstimateAt(now time.Time) (tick uint32) {
	defer func() {
		if recover() != nil {
			tick = fallbackTick
		}
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	elapsed := float64(0)
	if !s.responseReceived.IsZero() {
		elapsed = now.Sub(s.responseReceived).Seconds() * 1000
	}
	return uint32(s.clientTick + elapsed)
}
