package tracker

import (
	"context"
	"errors"
	"testing"
	"time"

	"petcare-tracker/internal/domain/care"
	"petcare-tracker/internal/domain/pets"
	"petcare-tracker/internal/domain/reminders"
)

func TestCanAdd(t *testing.T) {
	cases := []struct {
		count, limit int
		premium      bool
		want         bool
	}{
		{0, 2, false, true},
		{1, 2, false, true},
		{2, 2, false, false},
		{3, 2, false, false},
		{0, 2, true, true},
		{1000, 2, true, true},
	}
	for _, c := range cases {
		if got := CanAdd(c.count, c.limit, c.premium); got != c.want {
			t.Fatalf("CanAdd(%d, %d, %v) = %v, want %v", c.count, c.limit, c.premium, got, c.want)
		}
	}
}

func TestStore_CanAddPet_FreeTier(t *testing.T) {
	f := newFixture(t, false)

	if !f.store.CanAddPet(0) || !f.store.CanAddPet(1) {
		t.Fatalf("expected free tier to allow first two pets")
	}
	if f.store.CanAddPet(2) {
		t.Fatalf("expected free tier to block third pet")
	}
	if !f.store.CanAddCareItem(9) || f.store.CanAddCareItem(10) {
		t.Fatalf("expected care ceiling at 10")
	}
	if !f.store.CanAddReminder(4) || f.store.CanAddReminder(5) {
		t.Fatalf("expected reminder ceiling at 5")
	}
}

func TestStore_CanAddPet_Premium(t *testing.T) {
	f := newFixture(t, true)

	for _, n := range []int{0, 2, 50} {
		if !f.store.CanAddPet(n) {
			t.Fatalf("expected premium to allow %d pets", n)
		}
	}
}

func TestStore_AddPet_LimitReached(t *testing.T) {
	f := newFixture(t, false)
	f.addPet(t, "One")
	f.addPet(t, "Two")

	_, err := f.store.AddPet(context.Background(), pets.CreateInput{Name: "Three", Species: pets.SpeciesCat})
	if !errors.Is(err, ErrLimitReached) {
		t.Fatalf("expected ErrLimitReached, got %v", err)
	}

	var le *LimitError
	if !errors.As(err, &le) || le.Resource != ResourcePets || le.Limit != 2 {
		t.Fatalf("expected LimitError for pets, got %#v", err)
	}
	if f.pets.len() != 2 || len(f.store.Pets()) != 2 {
		t.Fatalf("expected nothing persisted after rejection")
	}
}

func TestStore_NoStoreSideGatingForPremium(t *testing.T) {
	f := newFixture(t, true)
	p := f.addPet(t, "One")
	f.addPet(t, "Two")
	f.addPet(t, "Three")

	for i := 0; i < 12; i++ {
		f.addCare(t, p.ID, testNow.AddDate(0, 0, i))
	}
	if len(f.store.CareItems()) != 12 {
		t.Fatalf("expected premium to exceed free care ceiling")
	}
}

func TestStore_AddReminderForPets_RejectsWholeBatchOverCeiling(t *testing.T) {
	f := newFixture(t, false)
	a := f.addPet(t, "A")
	b := f.addPet(t, "B")

	at := testNow.Add(24 * time.Hour)
	for i := 0; i < 4; i++ {
		f.addReminder(t, a.ID, at, true)
	}

	// 4 existentes + 2 = 6 > 5: se rechaza todo el lote.
	out, err := f.store.AddReminderForPets(context.Background(), []string{a.ID, b.ID}, reminders.CreateInput{
		Title: "Walk", DateTime: at, Enabled: true,
	})
	if !errors.Is(err, ErrLimitReached) {
		t.Fatalf("expected ErrLimitReached, got %v", err)
	}
	if len(out) != 0 || f.reminders.len() != 4 {
		t.Fatalf("expected no reminder created, got %d persisted", f.reminders.len())
	}

	// 4 + 1 = 5 cabe justo.
	out, err = f.store.AddReminderForPets(context.Background(), []string{b.ID}, reminders.CreateInput{
		Title: "Walk", DateTime: at, Enabled: true,
	})
	if err != nil || len(out) != 1 {
		t.Fatalf("expected batch of one to fit, got %d, %v", len(out), err)
	}
}

func TestStore_Onboarding_GatedOnFinalCareCount(t *testing.T) {
	f := newFixture(t, false)

	items := make([]care.CreateInput, 11)
	for i := range items {
		items[i] = care.CreateInput{Type: care.TypeGrooming, Title: "Bath", DueDate: testNow}
	}

	_, _, err := f.store.AddPetWithCareItems(context.Background(), pets.CreateInput{Name: "Luna", Species: pets.SpeciesCat}, items)
	if !errors.Is(err, ErrLimitReached) {
		t.Fatalf("expected ErrLimitReached, got %v", err)
	}
	if f.pets.len() != 0 || f.care.len() != 0 {
		t.Fatalf("expected nothing persisted")
	}
}

func TestStore_Usage(t *testing.T) {
	f := newFixture(t, false)
	p := f.addPet(t, "One")
	f.addPet(t, "Two")
	f.addCare(t, p.ID, testNow)

	u := f.store.Usage()
	if u.Premium {
		t.Fatalf("expected free tier")
	}
	if u.Pets != (Capacity{Count: 2, Limit: 2, CanAdd: false}) {
		t.Fatalf("unexpected pets capacity: %#v", u.Pets)
	}
	if u.CareItems != (Capacity{Count: 1, Limit: 10, CanAdd: true}) {
		t.Fatalf("unexpected care capacity: %#v", u.CareItems)
	}
	if u.Reminders != (Capacity{Count: 0, Limit: 5, CanAdd: true}) {
		t.Fatalf("unexpected reminders capacity: %#v", u.Reminders)
	}

	if !newFixture(t, true).store.Usage().Pets.CanAdd {
		t.Fatalf("expected premium to always allow")
	}
}
