package services

import (
	"errors"
	"testing"

	"github.com/tempio/commander-tracker/models"
)

func intPtr(v int) *int { return &v }

func strPtr(s string) *string { return &s }

func TestValidateGameInput(t *testing.T) {
	valid := []models.GameEntry{
		{Player: "Ann", Commander: "Krenko", Bracket: intPtr(3)},
		{Player: "Bob", Commander: "Meren"},
	}

	tests := []struct {
		name    string
		input   RecordGameInput
		wantErr error
	}{
		{
			name:  "valid lineup without winner",
			input: RecordGameInput{Entries: valid},
		},
		{
			name:  "valid lineup with seated winner",
			input: RecordGameInput{Entries: valid, WinnerPlayer: strPtr("Ann")},
		},
		{
			name:    "empty lineup",
			input:   RecordGameInput{},
			wantErr: ErrLineupRequired,
		},
		{
			name: "blank player",
			input: RecordGameInput{Entries: []models.GameEntry{
				{Player: "   ", Commander: "Krenko"},
			}},
			wantErr: ErrPlayerRequired,
		},
		{
			name: "blank commander",
			input: RecordGameInput{Entries: []models.GameEntry{
				{Player: "Ann", Commander: ""},
			}},
			wantErr: ErrCommanderRequired,
		},
		{
			name: "bracket out of range",
			input: RecordGameInput{Entries: []models.GameEntry{
				{Player: "Ann", Commander: "Krenko", Bracket: intPtr(6)},
			}},
			wantErr: ErrInvalidBracketValue,
		},
		{
			name:    "winner not seated",
			input:   RecordGameInput{Entries: valid, WinnerPlayer: strPtr("Zed")},
			wantErr: ErrWinnerNotInLineup,
		},
		{
			name:    "winner match is case-sensitive",
			input:   RecordGameInput{Entries: valid, WinnerPlayer: strPtr("ann")},
			wantErr: ErrWinnerNotInLineup,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateGameInput(tt.input)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrValidationFailed) {
				t.Errorf("error %v should wrap ErrValidationFailed", err)
			}
		})
	}
}

func TestNormalizeWinner(t *testing.T) {
	if got := normalizeWinner(nil); got != nil {
		t.Errorf("nil input: got %v", got)
	}
	if got := normalizeWinner(strPtr("   ")); got != nil {
		t.Errorf("blank input should clear the winner, got %q", *got)
	}
	if got := normalizeWinner(strPtr("  Ann ")); got == nil || *got != "Ann" {
		t.Errorf("trim failed: %v", got)
	}
}
