// Package symptoms is the symptom picker catalog. Selected symptoms are turned
// into a sentence and sent to the responder like a typed message.
package symptoms

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownSymptom = errors.New("unknown symptom")
	ErrNoSymptoms     = errors.New("no symptoms selected")
)

// Severity levels shown next to each symptom.
const (
	SeverityMild     = "mild"
	SeverityModerate = "moderate"
	SeveritySevere   = "severe"
)

// Symptom is one selectable item.
type Symptom struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Severity string `json:"severity"`
}

// Category groups symptoms under a tab.
type Category struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Icon     string    `json:"icon"`
	Symptoms []Symptom `json:"symptoms"`
}

var catalog = []Category{
	{
		ID: "general", Name: "General", Icon: "🌡️",
		Symptoms: []Symptom{
			{"fever", "Fever", "general", SeverityModerate},
			{"fatigue", "Fatigue", "general", SeverityMild},
			{"headache", "Headache", "general", SeverityModerate},
			{"dizziness", "Dizziness", "general", SeverityModerate},
			{"nausea", "Nausea", "general", SeverityModerate},
			{"chills", "Chills", "general", SeverityModerate},
		},
	},
	{
		ID: "respiratory", Name: "Respiratory", Icon: "🫁",
		Symptoms: []Symptom{
			{"cough", "Cough", "respiratory", SeverityModerate},
			{"shortness_breath", "Shortness of Breath", "respiratory", SeveritySevere},
			{"chest_pain", "Chest Pain", "respiratory", SeveritySevere},
			{"wheezing", "Wheezing", "respiratory", SeverityModerate},
			{"sore_throat", "Sore Throat", "respiratory", SeverityMild},
			{"runny_nose", "Runny Nose", "respiratory", SeverityMild},
		},
	},
	{
		ID: "digestive", Name: "Digestive", Icon: "🫀",
		Symptoms: []Symptom{
			{"stomach_pain", "Stomach Pain", "digestive", SeverityModerate},
			{"diarrhea", "Diarrhea", "digestive", SeverityModerate},
			{"constipation", "Constipation", "digestive", SeverityMild},
			{"vomiting", "Vomiting", "digestive", SeverityModerate},
			{"loss_appetite", "Loss of Appetite", "digestive", SeverityMild},
			{"bloating", "Bloating", "digestive", SeverityMild},
		},
	},
	{
		ID: "skin", Name: "Skin", Icon: "🦠",
		Symptoms: []Symptom{
			{"rash", "Rash", "skin", SeverityMild},
			{"itching", "Itching", "skin", SeverityMild},
			{"swelling", "Swelling", "skin", SeverityModerate},
			{"bruising", "Bruising", "skin", SeverityModerate},
			{"dry_skin", "Dry Skin", "skin", SeverityMild},
			{"acne", "Acne", "skin", SeverityMild},
		},
	},
}

var byID = func() map[string]Symptom {
	m := make(map[string]Symptom)
	for _, c := range catalog {
		for _, s := range c.Symptoms {
			m[s.ID] = s
		}
	}
	return m
}()

// Categories returns a copy of the catalog in display order.
func Categories() []Category {
	out := make([]Category, len(catalog))
	for i, c := range catalog {
		out[i] = c
		out[i].Symptoms = append([]Symptom(nil), c.Symptoms...)
	}
	return out
}

// Lookup finds a symptom by ID.
func Lookup(id string) (Symptom, bool) {
	s, ok := byID[id]
	return s, ok
}

// Sentence builds the chat message for the selected IDs, keeping selection
// order and skipping repeats.
func Sentence(ids []string) (string, error) {
	if len(ids) == 0 {
		return "", ErrNoSymptoms
	}

	seen := make(map[string]bool, len(ids))
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		s, ok := byID[id]
		if !ok {
			return "", fmt.Errorf("%w: %q", ErrUnknownSymptom, id)
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		names = append(names, s.Name)
	}

	return "I'm experiencing these symptoms: " + strings.Join(names, ", "), nil
}
