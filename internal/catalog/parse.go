package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"moodring/internal/domain"
)

// Catalog rows are CSV with eight columns:
//
//	label, description, triggers, percent_conditions, pattern_type,
//	quotes, music_tags, suggestion_note
//
// List columns use ';' between items; percent_conditions items are
// "emotion:minPercent" pairs. Commas inside quoted fields are fine,
// encoding/csv handles the quoting.

const rowFieldCount = 8

func parseProfiles(r io.Reader, warn func(line int, err error)) []domain.MoodProfile {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	profiles := make([]domain.MoodProfile, 0, 16)
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			warn(line, err)
			continue
		}
		if line == 1 && isHeaderRow(record) {
			continue
		}
		profile, err := parseRow(record)
		if err != nil {
			warn(line, err)
			continue
		}
		profiles = append(profiles, profile)
	}
	return profiles
}

func isHeaderRow(record []string) bool {
	return len(record) > 0 && strings.EqualFold(strings.TrimSpace(record[0]), "label")
}

func parseRow(record []string) (domain.MoodProfile, error) {
	if len(record) != rowFieldCount {
		return domain.MoodProfile{}, fmt.Errorf("want %d fields, got %d", rowFieldCount, len(record))
	}

	label := strings.TrimSpace(record[0])
	if label == "" {
		return domain.MoodProfile{}, fmt.Errorf("empty label")
	}

	conditions, err := parseConditions(record[3])
	if err != nil {
		return domain.MoodProfile{}, err
	}

	profile := domain.MoodProfile{
		Label:             label,
		Description:       strings.TrimSpace(record[1]),
		EmotionTriggers:   splitListLower(record[2]),
		PercentConditions: conditions,
		PatternType:       strings.ToLower(strings.TrimSpace(record[4])),
		Quotes:            splitList(record[5]),
		MusicTags:         splitListLower(record[6]),
		SuggestionNote:    strings.TrimSpace(record[7]),
	}
	if len(profile.Quotes) == 0 {
		profile.Quotes = []string{fmt.Sprintf("Right now, %s fits the moment.", strings.ToLower(label))}
	}
	return profile, nil
}

func parseConditions(field string) ([]domain.PercentCondition, error) {
	items := splitList(field)
	conditions := make([]domain.PercentCondition, 0, len(items))
	for _, item := range items {
		emotion, percent, ok := strings.Cut(item, ":")
		if !ok {
			return nil, fmt.Errorf("condition %q: want emotion:minPercent", item)
		}
		min, err := strconv.ParseFloat(strings.TrimSpace(percent), 64)
		if err != nil {
			return nil, fmt.Errorf("condition %q: %w", item, err)
		}
		if min < 0 || min > 100 {
			return nil, fmt.Errorf("condition %q: threshold out of [0,100]", item)
		}
		conditions = append(conditions, domain.PercentCondition{
			Emotion:    strings.ToLower(strings.TrimSpace(emotion)),
			MinPercent: min,
		})
	}
	return conditions, nil
}

func splitList(field string) []string {
	parts := strings.Split(field, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

func splitListLower(field string) []string {
	items := splitList(field)
	for i, item := range items {
		items[i] = strings.ToLower(item)
	}
	return items
}
