package storage

import (
	"sync"
	"time"

	"blogsyte/internal/models"
)

// OtpStore keeps pending OTP challenges and unconfirmed registrations in
// memory, keyed by email. Both tables live and die together: a process
// restart discards everything and affected users simply restart signup.
//
// The maps are guarded by a single RWMutex because the sweep ticker runs on
// its own goroutine alongside request handlers.
type OtpStore struct {
	mu         sync.RWMutex
	challenges map[string]*models.OtpChallenge
	pending    map[string]*models.PendingRegistration
}

func NewOtpStore() *OtpStore {
	return &OtpStore{
		challenges: make(map[string]*models.OtpChallenge),
		pending:    make(map[string]*models.PendingRegistration),
	}
}

// PutChallenge replaces any existing challenge for email. No merge: a
// re-issue always starts over with attempts=0.
func (s *OtpStore) PutChallenge(email string, ch *models.OtpChallenge) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.challenges[email] = ch
}

func (s *OtpStore) PutPending(email string, p *models.PendingRegistration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[email] = p
}

// GetChallenge returns a copy of the stored challenge, so callers never
// alias an entry that IncrementAttempts mutates under the lock.
func (s *OtpStore) GetChallenge(email string) (models.OtpChallenge, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ch, ok := s.challenges[email]
	if !ok {
		return models.OtpChallenge{}, false
	}
	return *ch, true
}

func (s *OtpStore) GetPending(email string) (models.PendingRegistration, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.pending[email]
	if !ok {
		return models.PendingRegistration{}, false
	}
	return *p, true
}

// IncrementAttempts bumps the failed-attempt counter for email and returns
// the new value. Returns 0, false when no challenge exists.
func (s *OtpStore) IncrementAttempts(email string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch, ok := s.challenges[email]
	if !ok {
		return 0, false
	}
	ch.Attempts++
	return ch.Attempts, true
}

// Delete removes the challenge and the pending registration for email.
func (s *OtpStore) Delete(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.challenges, email)
	delete(s.pending, email)
}

// Sweep removes entries older than maxAge from both tables and reports how
// many were dropped. It is memory reclamation only: Verify checks age itself
// and stays authoritative on expiry.
func (s *OtpStore) Sweep(now time.Time, maxAge time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for email, ch := range s.challenges {
		if now.Sub(ch.IssuedAt) > maxAge {
			delete(s.challenges, email)
			removed++
		}
	}
	for email, p := range s.pending {
		if now.Sub(p.CreatedAt) > maxAge {
			delete(s.pending, email)
			removed++
		}
	}
	return removed
}

// Len reports the number of stored challenges.
func (s *OtpStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.challenges)
}
