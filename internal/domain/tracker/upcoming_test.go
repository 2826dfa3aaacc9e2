package tracker

import (
	"context"
	"testing"
	"time"

	"petcare-tracker/internal/domain/care"
	"petcare-tracker/internal/domain/pets"
	"petcare-tracker/internal/domain/reminders"
)

func careDue(id, petID string, due time.Time) care.Item {
	return care.Item{ID: id, PetID: petID, Type: care.TypeVaccine, Title: id, DueDate: care.DateOnly(due)}
}

func reminderAt(id, petID string, at time.Time, enabled bool) reminders.Reminder {
	return reminders.Reminder{ID: id, PetID: petID, Title: id, DateTime: at, Repeat: reminders.RepeatNone, Enabled: enabled}
}

func feedIDs(feed []UnifiedItem) []string {
	out := make([]string, 0, len(feed))
	for _, u := range feed {
		if u.Kind == KindCare {
			out = append(out, u.Care.ID)
		} else {
			out = append(out, u.Reminder.ID)
		}
	}
	return out
}

func sameIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

var onePet = []pets.Pet{{ID: "p1", Name: "Firulais", Species: pets.SpeciesDog}}

func TestBuildUpcoming_Scenario(t *testing.T) {
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	items := []care.Item{
		careDue("A", "p1", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)),
		careDue("B", "p1", time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)),
	}
	rems := []reminders.Reminder{
		reminderAt("C", "p1", time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC), true),
		reminderAt("D", "p1", time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC), true),
	}

	got := feedIDs(BuildUpcoming(onePet, items, rems, now, 14))
	if want := []string{"A", "D"}; !sameIDs(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestBuildUpcoming_CareDayGranularity(t *testing.T) {
	now := testNow
	today := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	items := []care.Item{
		careDue("today", "p1", today),
		careDue("yesterday", "p1", today.AddDate(0, 0, -1)),
		careDue("edge", "p1", today.AddDate(0, 0, 7)),
		careDue("beyond", "p1", today.AddDate(0, 0, 8)),
	}

	got := feedIDs(BuildUpcoming(onePet, items, nil, now, 7))
	if want := []string{"today", "edge"}; !sameIDs(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestBuildUpcoming_CareUsesNowLocation(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	// 2024-06-01 22:00 local = 2024-06-02 03:00 UTC.
	now := time.Date(2024, 6, 1, 22, 0, 0, 0, loc)

	items := []care.Item{careDue("local-today", "p1", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))}

	got := feedIDs(BuildUpcoming(onePet, items, nil, now, 7))
	if want := []string{"local-today"}; !sameIDs(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestBuildUpcoming_ReminderInstantGranularity(t *testing.T) {
	now := testNow

	rems := []reminders.Reminder{
		reminderAt("past", "p1", now.Add(-time.Second), true),
		reminderAt("soon", "p1", now.Add(time.Second), true),
		reminderAt("edge", "p1", now.Add(7*24*time.Hour), true),
		reminderAt("beyond", "p1", now.Add(7*24*time.Hour+time.Second), true),
	}

	got := feedIDs(BuildUpcoming(onePet, nil, rems, now, 7))
	if want := []string{"soon", "edge"}; !sameIDs(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestBuildUpcoming_DisabledNeverSurface(t *testing.T) {
	now := testNow

	rems := []reminders.Reminder{
		reminderAt("off-soon", "p1", now.Add(time.Hour), false),
		reminderAt("off-past", "p1", now.Add(-time.Hour), false),
		reminderAt("on", "p1", now.Add(2*time.Hour), true),
	}

	got := feedIDs(BuildUpcoming(onePet, nil, rems, now, 60))
	if want := []string{"on"}; !sameIDs(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestBuildUpcoming_MergeOrdering(t *testing.T) {
	now := testNow

	items := []care.Item{careDue("care", "p1", time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC))}
	rems := []reminders.Reminder{reminderAt("reminder", "p1", time.Date(2024, 6, 3, 8, 0, 0, 0, time.UTC), true)}

	got := feedIDs(BuildUpcoming(onePet, items, rems, now, 14))
	if want := []string{"reminder", "care"}; !sameIDs(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestBuildUpcoming_StableForEqualInstants(t *testing.T) {
	now := testNow
	day := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

	items := []care.Item{careDue("c1", "p1", day), careDue("c2", "p1", day)}
	rems := []reminders.Reminder{reminderAt("r1", "p1", day, true)}

	got := feedIDs(BuildUpcoming(onePet, items, rems, now, 14))
	if want := []string{"c1", "c2", "r1"}; !sameIDs(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestBuildUpcoming_DropsOrphans(t *testing.T) {
	now := testNow

	items := []care.Item{careDue("orphan", "ghost", time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC))}
	rems := []reminders.Reminder{reminderAt("orphan-r", "ghost", now.Add(time.Hour), true)}

	if got := BuildUpcoming(onePet, items, rems, now, 14); len(got) != 0 {
		t.Fatalf("expected orphans dropped, got %v", feedIDs(got))
	}
}

func TestBuildUpcoming_EmptyInput(t *testing.T) {
	got := BuildUpcoming(nil, nil, nil, testNow, 14)
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil feed, got %#v", got)
	}
}

func TestStore_UpcomingUsesConfiguredWindow(t *testing.T) {
	f := newFixture(t, false)
	p := f.addPet(t, "Michi")
	f.addCare(t, p.ID, testNow.AddDate(0, 0, 20))

	if got := f.store.Upcoming(testNow); len(got) != 0 {
		t.Fatalf("expected nothing inside default 14-day window, got %d", len(got))
	}

	if err := f.store.SetUpcomingCareDays(context.Background(), 30); err != nil {
		t.Fatalf("SetUpcomingCareDays error: %v", err)
	}
	if got := f.store.Upcoming(testNow); len(got) != 1 {
		t.Fatalf("expected item inside 30-day window, got %d", len(got))
	}
}

func TestStore_NextCareItemForPet(t *testing.T) {
	f := newFixture(t, false)
	p := f.addPet(t, "Michi")
	other := f.addPet(t, "Rex")

	f.addCare(t, p.ID, testNow.AddDate(0, 0, -1))
	far := f.addCare(t, p.ID, testNow.AddDate(0, 3, 0))
	near := f.addCare(t, p.ID, testNow)

	got, ok := f.store.NextCareItemForPet(p.ID, testNow)
	if !ok || got.ID != near.ID {
		t.Fatalf("expected %s, got %s (ok=%v)", near.ID, got.ID, ok)
	}

	if _, ok := f.store.NextCareItemForPet(other.ID, testNow); ok {
		t.Fatalf("expected no next care for pet without items")
	}

	all := f.store.NextCareItems(testNow.AddDate(0, 0, 1))
	if all[p.ID].ID != far.ID {
		t.Fatalf("expected far item once today's has passed, got %s", all[p.ID].ID)
	}
	if _, ok := all[other.ID]; ok {
		t.Fatalf("expected no entry for pet without items")
	}
}
