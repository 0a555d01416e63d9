// Package responder maps free-text health questions to canned advice.
//
// Matching is a case-insensitive substring scan over an ordered keyword table.
// The first keyword contained in the input wins; if none matches, the input is
// checked against the emergency phrases, and otherwise a generic reply is drawn
// from the general pool. The order of the keyword table is part of the contract:
// when several keywords occur in one message the earliest entry decides.
package responder

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// Urgency classifies how soon the user should seek care. The zero value means
// the entry has no urgency set.
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// ParseUrgency converts a table value to an Urgency. The empty string is
// accepted and yields the unset level.
func ParseUrgency(s string) (Urgency, error) {
	switch u := Urgency(strings.ToLower(strings.TrimSpace(s))); u {
	case "", UrgencyLow, UrgencyMedium, UrgencyHigh:
		return u, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownUrgency, s)
	}
}

// Outcome names the path that produced a Response.
type Outcome string

const (
	OutcomeKeyword   Outcome = "keyword"
	OutcomeEmergency Outcome = "emergency"
	OutcomeGeneral   Outcome = "general"
)

// Entry is one row of the keyword table.
type Entry struct {
	Keyword     string
	Response    string
	Suggestions []string
	Urgency     Urgency
	// Disclaimer overrides the random pick from the disclaimer pool.
	Disclaimer string
}

// Emergency is the fixed reply for inputs that contain an emergency phrase
// but no table keyword.
type Emergency struct {
	Phrases    []string
	Response   string
	Disclaimer string
}

// General is the fallback used when nothing matches.
type General struct {
	Responses   []string
	Suggestions []string
}

// Table holds all static data the responder works from.
type Table struct {
	Keywords    []Entry
	Emergency   Emergency
	General     General
	Disclaimers []string
}

// Response is the structured reply for one message.
type Response struct {
	Text        string   `json:"response"`
	Suggestions []string `json:"suggestions"`
	Urgency     Urgency  `json:"urgency,omitempty"`
	Disclaimer  string   `json:"disclaimer"`
	Outcome     Outcome  `json:"outcome"`
	// Trigger is the keyword or emergency phrase that matched.
	Trigger string `json:"trigger,omitempty"`
}

// Picker returns an index in [0, n). Out-of-range results are wrapped into
// range.
type Picker func(n int) int

// Option configures a Responder.
type Option func(*Responder)

// WithPicker replaces the uniform random source used for pool selection.
func WithPicker(p Picker) Option {
	return func(r *Responder) {
		if p != nil {
			r.pick = p
		}
	}
}

// Responder classifies messages against an immutable Table. It is safe for
// concurrent use.
type Responder struct {
	table Table
	pick  Picker
}

// New validates t and returns a Responder over a private copy of it.
// Keywords and emergency phrases are lowercased.
func New(t Table, opts ...Option) (*Responder, error) {
	table, err := normalize(t)
	if err != nil {
		return nil, err
	}

	r := &Responder{
		table: table,
		pick:  rand.IntN,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Default returns a Responder over DefaultTable. The built-in data is known to
// be valid, so construction errors panic.
func Default(opts ...Option) *Responder {
	r, err := New(DefaultTable(), opts...)
	if err != nil {
		panic(fmt.Sprintf("responder: invalid default table: %v", err))
	}
	return r
}

// Classify returns the reply for input. It never fails.
func (r *Responder) Classify(input string) Response {
	message := strings.ToLower(input)

	for _, e := range r.table.Keywords {
		if !strings.Contains(message, e.Keyword) {
			continue
		}
		disclaimer := e.Disclaimer
		if disclaimer == "" {
			disclaimer = r.choose(r.table.Disclaimers)
		}
		return Response{
			Text:        e.Response,
			Suggestions: clone(e.Suggestions),
			Urgency:     e.Urgency,
			Disclaimer:  disclaimer,
			Outcome:     OutcomeKeyword,
			Trigger:     e.Keyword,
		}
	}

	for _, phrase := range r.table.Emergency.Phrases {
		if strings.Contains(message, phrase) {
			return Response{
				Text:        r.table.Emergency.Response,
				Suggestions: []string{},
				Urgency:     UrgencyHigh,
				Disclaimer:  r.table.Emergency.Disclaimer,
				Outcome:     OutcomeEmergency,
				Trigger:     phrase,
			}
		}
	}

	return Response{
		Text:        r.choose(r.table.General.Responses),
		Suggestions: clone(r.table.General.Suggestions),
		Urgency:     UrgencyLow,
		Disclaimer:  r.choose(r.table.Disclaimers),
		Outcome:     OutcomeGeneral,
	}
}

// Keywords returns the table keywords in match order.
func (r *Responder) Keywords() []string {
	keywords := make([]string, len(r.table.Keywords))
	for i, e := range r.table.Keywords {
		keywords[i] = e.Keyword
	}
	return keywords
}

// EmergencyPhrases returns the emergency phrases in check order.
func (r *Responder) EmergencyPhrases() []string {
	return clone(r.table.Emergency.Phrases)
}

// FollowUpQuestions returns the suggestions attached to resp, never nil.
func FollowUpQuestions(resp Response) []string {
	if resp.Suggestions == nil {
		return []string{}
	}
	return resp.Suggestions
}

func (r *Responder) choose(pool []string) string {
	n := len(pool)
	i := r.pick(n)
	if i < 0 || i >= n {
		i = ((i % n) + n) % n
	}
	return pool[i]
}

func normalize(t Table) (Table, error) {
	if len(t.Keywords) == 0 {
		return Table{}, ErrEmptyTable
	}
	if len(t.Disclaimers) == 0 {
		return Table{}, ErrEmptyDisclaimers
	}
	if len(t.General.Responses) == 0 {
		return Table{}, ErrEmptyGeneral
	}

	out := Table{
		Keywords:    make([]Entry, 0, len(t.Keywords)),
		Disclaimers: clone(t.Disclaimers),
		General: General{
			Responses:   clone(t.General.Responses),
			Suggestions: clone(t.General.Suggestions),
		},
		Emergency: Emergency{
			Response:   t.Emergency.Response,
			Disclaimer: t.Emergency.Disclaimer,
		},
	}

	seen := make(map[string]struct{}, len(t.Keywords))
	for i, e := range t.Keywords {
		keyword := strings.ToLower(e.Keyword)
		if keyword == "" {
			return Table{}, fmt.Errorf("entry %d: %w", i, ErrEmptyKeyword)
		}
		if _, dup := seen[keyword]; dup {
			return Table{}, fmt.Errorf("%w: %q", ErrDuplicateKeyword, keyword)
		}
		seen[keyword] = struct{}{}

		if strings.TrimSpace(e.Response) == "" {
			return Table{}, fmt.Errorf("%q: %w", keyword, ErrEmptyResponse)
		}
		urgency, err := ParseUrgency(string(e.Urgency))
		if err != nil {
			return Table{}, fmt.Errorf("%q: %w", keyword, err)
		}

		out.Keywords = append(out.Keywords, Entry{
			Keyword:     keyword,
			Response:    e.Response,
			Suggestions: clone(e.Suggestions),
			Urgency:     urgency,
			Disclaimer:  e.Disclaimer,
		})
	}

	if len(t.Emergency.Phrases) > 0 && strings.TrimSpace(t.Emergency.Response) == "" {
		return Table{}, ErrNoEmergencyReply
	}
	out.Emergency.Phrases = make([]string, 0, len(t.Emergency.Phrases))
	for _, p := range t.Emergency.Phrases {
		phrase := strings.ToLower(p)
		if phrase == "" {
			return Table{}, ErrEmptyPhrase
		}
		out.Emergency.Phrases = append(out.Emergency.Phrases, phrase)
	}

	return out, nil
}

func clone(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}
