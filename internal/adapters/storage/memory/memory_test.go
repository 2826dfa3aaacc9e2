package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"petcare-tracker/internal/domain/care"
	"petcare-tracker/internal/domain/pets"
	"petcare-tracker/internal/domain/reminders"
	"petcare-tracker/internal/domain/settings"
)

func TestPetRepo_ListOrderedByCreation(t *testing.T) {
	ctx := context.Background()
	repo := NewPetRepo()
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	_ = repo.Create(ctx, pets.Pet{ID: "b", Name: "B", CreatedAt: base.Add(time.Hour)})
	_ = repo.Create(ctx, pets.Pet{ID: "a", Name: "A", CreatedAt: base})

	if err := repo.Create(ctx, pets.Pet{ID: "a"}); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	list, _ := repo.List(ctx)
	if len(list) != 2 || list[0].ID != "a" || list[1].ID != "b" {
		t.Fatalf("unexpected order: %#v", list)
	}
	if err := repo.Update(ctx, pets.Pet{ID: "ghost"}); !errors.Is(err, pets.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCareRepo_DeleteByPet(t *testing.T) {
	ctx := context.Background()
	repo := NewCareRepo()

	_ = repo.Create(ctx, care.Item{ID: "1", PetID: "p1"})
	_ = repo.Create(ctx, care.Item{ID: "2", PetID: "p1"})
	_ = repo.Create(ctx, care.Item{ID: "3", PetID: "p2"})

	n, err := repo.DeleteByPet(ctx, "p1")
	if err != nil || n != 2 {
		t.Fatalf("DeleteByPet: n=%d err=%v", n, err)
	}
	list, _ := repo.List(ctx)
	if len(list) != 1 || list[0].ID != "3" {
		t.Fatalf("unexpected remaining: %#v", list)
	}
	if err := repo.Delete(ctx, "1"); !errors.Is(err, care.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestReminderRepo_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewReminderRepo()

	r := reminders.Reminder{ID: "r1", PetID: "p1", Enabled: true, NotificationID: "h"}
	_ = repo.Create(ctx, r)

	r.Enabled = false
	r.NotificationID = ""
	if err := repo.Update(ctx, r); err != nil {
		t.Fatalf("Update: %v", err)
	}
	list, _ := repo.List(ctx)
	if list[0].Enabled || list[0].NotificationID != "" {
		t.Fatalf("expected update stored, got %#v", list[0])
	}

	if err := repo.Delete(ctx, "r1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Delete(ctx, "r1"); !errors.Is(err, reminders.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSettingsRepo(t *testing.T) {
	ctx := context.Background()
	repo := NewSettingsRepo()

	if _, err := repo.GetUpcomingCareDays(ctx); !errors.Is(err, settings.ErrNotFound) {
		t.Fatalf("expected ErrNotFound before save, got %v", err)
	}
	_ = repo.SaveUpcomingCareDays(ctx, 30)
	if got, _ := repo.GetUpcomingCareDays(ctx); got != 30 {
		t.Fatalf("expected 30, got %d", got)
	}

	if got, err := repo.GetCouponRedeemed(ctx); err != nil || got {
		t.Fatalf("expected not redeemed, got %v (%v)", got, err)
	}
	_ = repo.SaveCouponRedeemed(ctx, true)
	if got, _ := repo.GetCouponRedeemed(ctx); !got {
		t.Fatalf("expected redeemed")
	}
}
