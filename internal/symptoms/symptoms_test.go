package symptoms

import (
	"errors"
	"testing"

	"medchat/internal/responder"
)

func TestCategories(t *testing.T) {
	cats := Categories()
	if len(cats) != 4 {
		t.Fatalf("got %d categories, want 4", len(cats))
	}
	wantIDs := []string{"general", "respiratory", "digestive", "skin"}
	for i, c := range cats {
		if c.ID != wantIDs[i] {
			t.Errorf("category %d = %q, want %q", i, c.ID, wantIDs[i])
		}
		if len(c.Symptoms) != 6 {
			t.Errorf("category %q has %d symptoms, want 6", c.ID, len(c.Symptoms))
		}
		for _, s := range c.Symptoms {
			if s.Category != c.ID {
				t.Errorf("symptom %q category = %q, want %q", s.ID, s.Category, c.ID)
			}
		}
	}

	// Callers get a copy.
	cats[0].Symptoms[0].Name = "changed"
	if Categories()[0].Symptoms[0].Name == "changed" {
		t.Error("Categories() exposes the catalog")
	}
}

func TestLookup(t *testing.T) {
	s, ok := Lookup("shortness_breath")
	if !ok || s.Name != "Shortness of Breath" || s.Severity != SeveritySevere {
		t.Errorf("Lookup(shortness_breath) = %+v, %v", s, ok)
	}
	if _, ok := Lookup("nope"); ok {
		t.Error("Lookup(nope) found a symptom")
	}
}

func TestSentence(t *testing.T) {
	tests := []struct {
		name    string
		ids     []string
		want    string
		wantErr error
	}{
		{"single", []string{"fever"}, "I'm experiencing these symptoms: Fever", nil},
		{"keeps order", []string{"cough", "fever"}, "I'm experiencing these symptoms: Cough, Fever", nil},
		{"drops repeats", []string{"rash", "itching", "rash"}, "I'm experiencing these symptoms: Rash, Itching", nil},
		{"empty", nil, "", ErrNoSymptoms},
		{"unknown", []string{"fever", "gills"}, "", ErrUnknownSymptom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Sentence(tt.ids)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Sentence() error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Sentence() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSentence_ReachesResponder(t *testing.T) {
	r := responder.Default(responder.WithPicker(func(int) int { return 0 }))

	tests := []struct {
		ids     []string
		trigger string
	}{
		{[]string{"chest_pain", "fever"}, "chest pain"},
		{[]string{"fever", "headache"}, "headache"},
		{[]string{"stomach_pain"}, "pain"},
		{[]string{"acne"}, ""},
	}

	for _, tt := range tests {
		sentence, err := Sentence(tt.ids)
		if err != nil {
			t.Fatalf("Sentence(%v) error = %v", tt.ids, err)
		}
		if got := r.Classify(sentence); got.Trigger != tt.trigger {
			t.Errorf("Classify(%q).Trigger = %q, want %q", sentence, got.Trigger, tt.trigger)
		}
	}
}
