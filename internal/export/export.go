// Package export writes enriched habits as CSV, JSON or YAML, optionally
// wrapped in a passphrase-protected age envelope.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"filippo.io/age"
	"filippo.io/age/armor"
	"github.com/rnwolfe/habit/internal/habit"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned for formats other than csv, json and yaml.
var ErrUnknownFormat = errors.New("unknown export format")

// Format names an output encoding.
type Format string

const (
	CSV  Format = "csv"
	JSON Format = "json"
	YAML Format = "yaml"
)

// ParseFormat normalises a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case CSV, JSON, YAML:
		return f, nil
	case "yml":
		return YAML, nil
	default:
		return "", fmt.Errorf("%w %q (use csv, json or yaml)", ErrUnknownFormat, s)
	}
}

// Row is the flat, serialisable form of one habit.
type Row struct {
	ID              string   `json:"id" yaml:"id"`
	Title           string   `json:"title" yaml:"title"`
	Description     string   `json:"description,omitempty" yaml:"description,omitempty"`
	Frequency       string   `json:"frequency" yaml:"frequency"`
	FrequencyMask   int      `json:"frequency_mask" yaml:"frequency_mask"`
	StartDate       string   `json:"start_date" yaml:"start_date"`
	Archived        bool     `json:"archived" yaml:"archived"`
	CurrentStreak   int      `json:"current_streak" yaml:"current_streak"`
	LongestStreak   int      `json:"longest_streak" yaml:"longest_streak"`
	CompletionRate  int      `json:"completion_rate" yaml:"completion_rate"`
	LastCompletedOn *string  `json:"last_completed_on" yaml:"last_completed_on"`
	DueToday        bool     `json:"due_today" yaml:"due_today"`
	CompletedToday  bool     `json:"completed_today" yaml:"completed_today"`
	Completions     []string `json:"completions" yaml:"completions"`
	Notes           []Note   `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Note is a completion note keyed by its date.
type Note struct {
	Date string `json:"date" yaml:"date"`
	Text string `json:"note" yaml:"note"`
}

// Rows flattens entries for export.
func Rows(entries []habit.Entry) []Row {
	rows := make([]Row, 0, len(entries))
	for _, e := range entries {
		dates := make([]string, 0, len(e.Stats.Completions))
		var notes []Note
		for _, c := range e.Stats.Completions {
			dates = append(dates, c.CompletedOn)
			if c.Note != "" {
				notes = append(notes, Note{Date: c.CompletedOn, Text: c.Note})
			}
		}
		rows = append(rows, Row{
			ID:              e.Habit.ID,
			Title:           e.Habit.Title,
			Description:     e.Habit.Description,
			Frequency:       e.Habit.Frequency.String(),
			FrequencyMask:   int(e.Habit.Frequency),
			StartDate:       e.Habit.StartDate,
			Archived:        e.Habit.Archived,
			CurrentStreak:   e.Stats.CurrentStreak,
			LongestStreak:   e.Stats.LongestStreak,
			CompletionRate:  e.Stats.CompletionRate,
			LastCompletedOn: e.Stats.LastCompletedOn,
			DueToday:        e.Stats.IsDueToday,
			CompletedToday:  e.Stats.IsCompletedToday,
			Completions:     dates,
			Notes:           notes,
		})
	}
	return rows
}

// csvHeader is the column order for CSV output.
var csvHeader = []string{
	"id", "title", "frequency", "start_date", "current_streak", "longest_streak",
	"completion_rate", "last_completed_on", "due_today", "completed_today", "completions", "notes",
}

// Write encodes rows to w in the given format.
func Write(w io.Writer, f Format, rows []Row) error {
	switch f {
	case CSV:
		return writeCSV(w, rows)
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rows); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		return nil
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rows); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w %q", ErrUnknownFormat, f)
	}
}

func writeCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, r := range rows {
		last := ""
		if r.LastCompletedOn != nil {
			last = *r.LastCompletedOn
		}
		notes := make([]string, 0, len(r.Notes))
		for _, n := range r.Notes {
			notes = append(notes, n.Date+": "+n.Text)
		}
		rec := []string{
			r.ID,
			r.Title,
			r.Frequency,
			r.StartDate,
			strconv.Itoa(r.CurrentStreak),
			strconv.Itoa(r.LongestStreak),
			strconv.Itoa(r.CompletionRate),
			last,
			strconv.FormatBool(r.DueToday),
			strconv.FormatBool(r.CompletedToday),
			strings.Join(r.Completions, ";"),
			strings.Join(notes, ";"),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Encrypt wraps plaintext in an ASCII-armored age envelope keyed by passphrase.
func Encrypt(plaintext []byte, passphrase string) ([]byte, error) {
	recipient, err := age.NewScryptRecipient(passphrase)
	if err != nil {
		return nil, fmt.Errorf("creating age recipient: %w", err)
	}

	var buf bytes.Buffer
	armorWriter := armor.NewWriter(&buf)

	w, err := age.Encrypt(armorWriter, recipient)
	if err != nil {
		return nil, fmt.Errorf("initializing age encryption: %w", err)
	}
	if _, err := w.Write(plaintext); err != nil {
		return nil, fmt.Errorf("encrypting export: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finalizing encryption: %w", err)
	}
	if err := armorWriter.Close(); err != nil {
		return nil, fmt.Errorf("finalizing armor: %w", err)
	}
	return buf.Bytes(), nil
}

// Decrypt reverses Encrypt.
func Decrypt(ciphertext []byte, passphrase string) ([]byte, error) {
	identity, err := age.NewScryptIdentity(passphrase)
	if err != nil {
		return nil, fmt.Errorf("creating age identity: %w", err)
	}
	r, err := age.Decrypt(armor.NewReader(bytes.NewReader(ciphertext)), identity)
	if err != nil {
		return nil, fmt.Errorf("decrypting export: %w", err)
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading decrypted export: %w", err)
	}
	return out, nil
}
