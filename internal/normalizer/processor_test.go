package normalizer

import (
	"strings"
	"testing"
)

func TestNewProcessor(t *testing.T) {
	p := NewProcessor()
	if p == nil {
		t.Fatal("NewProcessor returned nil")
	}
}

func TestProcessor_ProcessSaint(t *testing.T) {
	p := NewProcessor()

	saint, err := p.ProcessSaint("saint-1", RawDocument{
		"name":        "Sant Ramesh Das",
		"coordinates": "26.9, 75.8",
	})
	if err != nil {
		t.Fatalf("ProcessSaint returned unexpected error: %v", err)
	}

	if saint.Name != "Sant Ramesh Das" {
		t.Errorf("Name = %s, want Sant Ramesh Das", saint.Name)
	}

	if saint.Coordinates == nil {
		t.Error("Coordinates = nil, want parsed pair")
	}
}

func TestProcessor_ProcessSaint_Errors(t *testing.T) {
	p := NewProcessor()

	tests := []struct {
		name    string
		id      string
		raw     RawDocument
		wantErr string
	}{
		{
			name:    "Missing id",
			id:      "",
			raw:     RawDocument{"name": "X"},
			wantErr: "missing identifier",
		},
		{
			name:    "Missing name",
			id:      "saint-1",
			raw:     RawDocument{"location": "Jaipur"},
			wantErr: "missing name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.ProcessSaint(tt.id, tt.raw)
			if err == nil {
				t.Error("ProcessSaint expected error but got nil")
			} else if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ProcessSaint error = %v, want substring %v", err, tt.wantErr)
			}
		})
	}
}

func TestProcessor_ProcessEvent_Errors(t *testing.T) {
	p := NewProcessor()

	tests := []struct {
		name    string
		raw     RawDocument
		wantErr string
	}{
		{
			name:    "Missing title",
			raw:     RawDocument{"saintId": "saint-1", "date": "2024-03-15"},
			wantErr: "missing title",
		},
		{
			name:    "Missing host",
			raw:     RawDocument{"title": "Ram Katha", "date": "2024-03-15"},
			wantErr: "missing host",
		},
		{
			name:    "Missing schedule",
			raw:     RawDocument{"title": "Ram Katha", "saintId": "saint-1"},
			wantErr: "missing scheduled time",
		},
		{
			name: "Unparseable schedule",
			raw: RawDocument{
				"title":   "Ram Katha",
				"saintId": "saint-1",
				"date":    "whenever",
			},
			wantErr: "missing scheduled time",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.ProcessEvent("event-1", tt.raw)
			if err == nil {
				t.Error("ProcessEvent expected error but got nil")
			} else if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ProcessEvent error = %v, want substring %v", err, tt.wantErr)
			}
		})
	}
}

func TestProcessor_ProcessProfile(t *testing.T) {
	p := NewProcessor()

	profile, err := p.ProcessProfile("profile-1", RawDocument{
		"name":  "Asha Sharma",
		"email": "asha@example.org",
	})
	if err != nil {
		t.Fatalf("ProcessProfile returned unexpected error: %v", err)
	}

	if profile.Email != "asha@example.org" {
		t.Errorf("Email = %s, want asha@example.org", profile.Email)
	}

	if _, err := p.ProcessProfile("profile-2", RawDocument{"name": "No Mail"}); err == nil {
		t.Error("ProcessProfile expected error for missing email")
	}
}
