package services

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/tempio/commander-tracker/models"
)

func TestSummarize(t *testing.T) {
	entries := []models.GameEntry{
		{Player: "Ann", Commander: "Krenko", Bracket: intPtr(3)},
		{Player: "Bob", Commander: "Krenko", Bracket: intPtr(3)},
		{Player: "Cat", Commander: "Krenko", Bracket: intPtr(4)},
		{Player: "Dee", Commander: "Krenko"},
	}

	got := summarize("Krenko", entries)
	if got.Total != 4 {
		t.Errorf("Total = %d, want 4", got.Total)
	}
	if got.Counts["3"] != 2 || got.Counts["4"] != 1 || got.Counts["n/a"] != 1 {
		t.Errorf("Counts = %v", got.Counts)
	}
	if got.CurrentBracket == nil || *got.CurrentBracket != 3 {
		t.Errorf("CurrentBracket = %v, want 3", got.CurrentBracket)
	}
}

func TestSummarizeTieResolvesLow(t *testing.T) {
	entries := []models.GameEntry{
		{Player: "Ann", Commander: "Krenko", Bracket: intPtr(2)},
		{Player: "Bob", Commander: "Krenko", Bracket: intPtr(4)},
	}
	got := summarize("Krenko", entries)
	if got.CurrentBracket == nil || *got.CurrentBracket != 2 {
		t.Errorf("CurrentBracket = %v, want 2 on a tie", got.CurrentBracket)
	}
}

func TestSummarizeAllUnrated(t *testing.T) {
	entries := []models.GameEntry{
		{Player: "Ann", Commander: "Krenko"},
	}
	got := summarize("Krenko", entries)
	if got.CurrentBracket != nil {
		t.Errorf("CurrentBracket = %v, want nil", got.CurrentBracket)
	}
}

func TestSetCommanderBracketValidation(t *testing.T) {
	svc := NewBracketService(nil, slog.Default())

	if _, err := svc.SetCommanderBracket(context.Background(), "  ", intPtr(3)); !errors.Is(err, ErrCommanderRequired) {
		t.Errorf("blank commander: error = %v", err)
	}
	if _, err := svc.SetCommanderBracket(context.Background(), "Krenko", intPtr(0)); !errors.Is(err, ErrInvalidBracketValue) {
		t.Errorf("bracket 0: error = %v", err)
	}
	if _, err := svc.SetCommanderBracket(context.Background(), "Krenko", intPtr(6)); !errors.Is(err, ErrInvalidBracketValue) {
		t.Errorf("bracket 6: error = %v", err)
	}
}
