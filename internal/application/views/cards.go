// Package views maps catalog rows to display cards. Nothing here does I/O.
package views

import (
	"strconv"
	"strings"

	"usdh/internal/adapters/storage/catalog"
	"usdh/internal/domain/live"
)

// Missing is shown for empty values.
const Missing = "-"

// Field is one labelled line on a card.
type Field struct {
	Label string
	Value string
}

// Card is the display form of one catalog row.
type Card struct {
	ID        int64
	Title     string
	Subtitle  string
	Fields    []Field
	LinkURL   string
	LinkLabel string
	DetailURL string
	EmbedURL  string
}

// FormatCourses renders UG/PG course rows.
func FormatCourses(rows []catalog.Row) []Card {
	cards := make([]Card, 0, len(rows))
	for _, r := range rows {
		cards = append(cards, Card{
			ID:       r.ID,
			Title:    value(r, "name"),
			Subtitle: value(r, "website"),
			Fields: []Field{
				{"Discipline", value(r, "discipline")},
				{"Duration", value(r, "duration")},
				{"Level", value(r, "level")},
				{"Description", value(r, "description")},
			},
			LinkURL:   r.Get("link"),
			LinkLabel: "Visit course",
			DetailURL: "/course/" + itoa(r.ID),
			EmbedURL:  live.EmbedURL(r.Get("trailer")),
		})
	}
	return cards
}

// FormatSchoolCourses renders school course rows.
func FormatSchoolCourses(rows []catalog.Row) []Card {
	cards := make([]Card, 0, len(rows))
	for _, r := range rows {
		cards = append(cards, Card{
			ID:        r.ID,
			Title:     value(r, "subject"),
			Subtitle:  "Grade " + value(r, "grade"),
			Fields:    []Field{{"Website", value(r, "website")}},
			LinkURL:   r.Get("video_link"),
			LinkLabel: "Watch lessons",
			DetailURL: "/course2/" + itoa(r.ID),
			EmbedURL:  live.EmbedURL(r.Get("video_link")),
		})
	}
	return cards
}

// FormatEResources renders e-book and library rows.
func FormatEResources(rows []catalog.Row) []Card {
	cards := make([]Card, 0, len(rows))
	for _, r := range rows {
		cards = append(cards, Card{
			ID:       r.ID,
			Title:    value(r, "website"),
			Subtitle: value(r, "preference"),
			Fields: []Field{
				{"Subject", value(r, "subject")},
				{"State", value(r, "state")},
			},
			LinkURL:   r.Get("link"),
			LinkLabel: "Open resource",
		})
	}
	return cards
}

// FormatSchemes renders scholarship scheme rows.
func FormatSchemes(rows []catalog.Row) []Card {
	cards := make([]Card, 0, len(rows))
	for _, r := range rows {
		cards = append(cards, Card{
			ID:    r.ID,
			Title: value(r, "name"),
			Fields: []Field{
				{"Benefits", value(r, "benefits")},
				{"Eligibility", value(r, "eligibility")},
			},
			LinkURL:   r.Get("link"),
			LinkLabel: "More info",
		})
	}
	return cards
}

// FormatLive renders live class rows.
func FormatLive(rows []catalog.Row) []Card {
	cards := make([]Card, 0, len(rows))
	for _, r := range rows {
		cards = append(cards, Card{
			ID:        r.ID,
			Title:     "Grade " + value(r, "grade"),
			Fields:    []Field{{"Schedule", value(r, "schedule")}},
			LinkURL:   r.Get("link"),
			LinkLabel: "Join class",
			EmbedURL:  live.EmbedURL(r.Get("link")),
		})
	}
	return cards
}

// Format dispatches on the table name. Unknown tables yield no cards.
func Format(table string, rows []catalog.Row) []Card {
	switch table {
	case catalog.TableCourses:
		return FormatCourses(rows)
	case catalog.TableSchoolCourses:
		return FormatSchoolCourses(rows)
	case catalog.TableEResources:
		return FormatEResources(rows)
	case catalog.TableSchemes:
		return FormatSchemes(rows)
	case catalog.TableLiveClasses:
		return FormatLive(rows)
	}
	return nil
}

func value(r catalog.Row, col string) string {
	if v := strings.TrimSpace(r.Get(col)); v != "" {
		return v
	}
	return Missing
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
