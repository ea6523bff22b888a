package session

import (
	"sync"
	"testing"

	"leadbot_backend/internal/bot/domain"
)

func TestDoCreatesSessionOnFirstContact(t *testing.T) {
	store := NewStore()

	store.Do("+5215512345678", func(sess *domain.Session) Outcome {
		if sess.Flow != domain.FlowNone || sess.Step != domain.StepMenu {
			t.Errorf("fresh session not at menu: flow=%q step=%q", sess.Flow, sess.Step)
		}
		sess.Fields[domain.FieldName] = "Juan Perez"
		return Keep
	})

	store.Do("+5215512345678", func(sess *domain.Session) Outcome {
		if sess.Fields[domain.FieldName] != "Juan Perez" {
			t.Error("session state not kept between events")
		}
		return Keep
	})

	if store.Len() != 1 {
		t.Errorf("expected 1 live session, got %d", store.Len())
	}
}

func TestDoDestroyRemovesSession(t *testing.T) {
	store := NewStore()

	store.Do("+5215512345678", func(sess *domain.Session) Outcome {
		sess.Flow = domain.FlowQualification
		return Destroy
	})

	if store.Len() != 0 {
		t.Fatalf("expected 0 live sessions, got %d", store.Len())
	}

	store.Do("+5215512345678", func(sess *domain.Session) Outcome {
		if sess.Flow != domain.FlowNone {
			t.Error("destroyed session leaked state into the next one")
		}
		return Keep
	})
}

func TestDoSerializesPerIdentity(t *testing.T) {
	store := NewStore()
	const events = 200

	var wg sync.WaitGroup
	for i := 0; i < events; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.Do("+5215512345678", func(sess *domain.Session) Outcome {
				// Non-atomic counter update; lost updates would show here.
				sess.Photos = append(sess.Photos, "x")
				return Keep
			})
		}()
	}
	wg.Wait()

	store.Do("+5215512345678", func(sess *domain.Session) Outcome {
		if len(sess.Photos) != events {
			t.Errorf("lost updates: got %d, want %d", len(sess.Photos), events)
		}
		return Destroy
	})
}

func TestDoIndependentIdentities(t *testing.T) {
	store := NewStore()

	store.Do("+5215512345678", func(sess *domain.Session) Outcome {
		sess.Fields[domain.FieldKind] = "Auto"
		return Keep
	})
	store.Do("+5215587654321", func(sess *domain.Session) Outcome {
		if _, ok := sess.Fields[domain.FieldKind]; ok {
			t.Error("state bled across identities")
		}
		return Keep
	})

	if store.Len() != 2 {
		t.Errorf("expected 2 live sessions, got %d", store.Len())
	}
}
