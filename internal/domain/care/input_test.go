package care

import (
	"errors"
	"testing"
	"time"
)

func TestNew_NormalizesDueDateToDate(t *testing.T) {
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	loc := time.FixedZone("UTC-5", -5*3600)

	it, err := New("c1", now, CreateInput{
		PetID:   "pet-1",
		Type:    TypeVaccine,
		Title:   "Rabies",
		DueDate: time.Date(2024, 6, 3, 22, 30, 0, 0, loc),
	})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	want := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	if !it.DueDate.Equal(want) {
		t.Fatalf("expected due %v, got %v", want, it.DueDate)
	}
	if got := it.DueIn(loc); got.Day() != 3 || got.Hour() != 0 || got.Location() != loc {
		t.Fatalf("DueIn should keep calendar day, got %v", got)
	}
}

func TestNew_RejectsUnknownTypeAndMissingPet(t *testing.T) {
	now := time.Now()
	due := now.Add(24 * time.Hour)

	if _, err := New("c1", now, CreateInput{PetID: "p", Type: "bath", Title: "x", DueDate: due}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := New("c1", now, CreateInput{Type: TypeGrooming, Title: "x", DueDate: due}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing pet, got %v", err)
	}
}

func TestApply_ChangesOnlyGivenFields(t *testing.T) {
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	it, err := New("c1", now, CreateInput{PetID: "pet-1", Type: TypeMedication, Title: "Pill", DueDate: now})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	title := "Pill x2"
	out, err := it.Apply(UpdateInput{Title: &title}, now.Add(time.Hour))
	if err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	if out.Title != "Pill x2" || out.Type != TypeMedication || out.PetID != "pet-1" || !out.DueDate.Equal(it.DueDate) {
		t.Fatalf("unexpected %#v", out)
	}
}
