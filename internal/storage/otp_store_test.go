package storage

import (
	"testing"
	"time"

	"blogsyte/internal/models"
)

func TestPutChallengeReplaces(t *testing.T) {
	s := NewOtpStore()
	now := time.Now()

	s.PutChallenge("a@x.com", &models.OtpChallenge{Code: "111111", IssuedAt: now, Attempts: 2})
	s.PutChallenge("a@x.com", &models.OtpChallenge{Code: "222222", IssuedAt: now, Attempts: 0})

	ch, ok := s.GetChallenge("a@x.com")
	if !ok {
		t.Fatal("expected challenge to exist")
	}
	if ch.Code != "222222" {
		t.Errorf("expected replacement code, got %s", ch.Code)
	}
	if ch.Attempts != 0 {
		t.Errorf("expected attempts reset to 0, got %d", ch.Attempts)
	}
	if s.Len() != 1 {
		t.Errorf("expected exactly one challenge, got %d", s.Len())
	}
}

func TestDeleteRemovesBothEntries(t *testing.T) {
	s := NewOtpStore()
	now := time.Now()

	s.PutChallenge("a@x.com", &models.OtpChallenge{Code: "111111", IssuedAt: now})
	s.PutPending("a@x.com", &models.PendingRegistration{Email: "a@x.com", CreatedAt: now})

	s.Delete("a@x.com")

	if _, ok := s.GetChallenge("a@x.com"); ok {
		t.Error("challenge should be gone")
	}
	if _, ok := s.GetPending("a@x.com"); ok {
		t.Error("pending registration should be gone")
	}
}

func TestGetChallengeReturnsCopy(t *testing.T) {
	s := NewOtpStore()
	s.PutChallenge("a@x.com", &models.OtpChallenge{Code: "111111", IssuedAt: time.Now()})

	ch, ok := s.GetChallenge("a@x.com")
	if !ok {
		t.Fatal("expected challenge to exist")
	}
	ch.Attempts = 99
	ch.Code = "tampered"

	fresh, _ := s.GetChallenge("a@x.com")
	if fresh.Attempts != 0 || fresh.Code != "111111" {
		t.Errorf("mutating the returned copy must not touch the store, got %+v", fresh)
	}
}

func TestIncrementAttempts(t *testing.T) {
	s := NewOtpStore()
	s.PutChallenge("a@x.com", &models.OtpChallenge{Code: "111111", IssuedAt: time.Now()})

	for want := 1; want <= 3; want++ {
		got, ok := s.IncrementAttempts("a@x.com")
		if !ok || got != want {
			t.Fatalf("attempt %d: got (%d, %v)", want, got, ok)
		}
	}

	if _, ok := s.IncrementAttempts("missing@x.com"); ok {
		t.Error("increment on missing email should report false")
	}
}

func TestSweepRemovesOnlyExpired(t *testing.T) {
	s := NewOtpStore()
	now := time.Now()

	s.PutChallenge("old@x.com", &models.OtpChallenge{Code: "111111", IssuedAt: now.Add(-6 * time.Minute)})
	s.PutPending("old@x.com", &models.PendingRegistration{Email: "old@x.com", CreatedAt: now.Add(-6 * time.Minute)})
	s.PutChallenge("fresh@x.com", &models.OtpChallenge{Code: "222222", IssuedAt: now.Add(-1 * time.Minute)})

	removed := s.Sweep(now, 5*time.Minute)
	if removed != 2 {
		t.Errorf("expected 2 removed entries, got %d", removed)
	}
	if _, ok := s.GetChallenge("old@x.com"); ok {
		t.Error("expired challenge should be swept")
	}
	if _, ok := s.GetPending("old@x.com"); ok {
		t.Error("expired pending registration should be swept")
	}
	if _, ok := s.GetChallenge("fresh@x.com"); !ok {
		t.Error("fresh challenge should survive the sweep")
	}
}
