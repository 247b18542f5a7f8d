// Package triage classifies emergency intake complaints into a severity score
// and an ESI triage level. Classification is a pure function of the complaint
// category and symptom list; nothing here touches storage or the network.
package triage

import "strings"

// defaultSymptomWeight is applied to any symptom not present in the
// category's weight table.
const defaultSymptomWeight = 2

// Per-category symptom weight tables. Lookup is case-insensitive on the
// trimmed symptom text.
var weightTables = map[string]map[string]int{
	CategoryCardiac: {
		"chest pain":          8,
		"shortness of breath": 7,
		"palpitations":        5,
		"dizziness":           4,
		"sweating":            3,
		"nausea":              2,
	},
	CategoryTrauma: {
		"severe bleeding": 9,
		"head injury":     8,
		"fracture":        6,
		"laceration":      4,
		"bruising":        2,
	},
	CategoryRespiratory: {
		"cyanosis":             9,
		"difficulty breathing": 8,
		"wheezing":             5,
		"persistent cough":     3,
	},
	CategoryNeurological: {
		"loss of consciousness": 9,
		"seizure":               8,
		"confusion":             6,
		"numbness":              5,
		"headache":              3,
	},
	CategoryGeneral: {
		"vomiting": 4,
		"fever":    3,
		"pain":     3,
		"fatigue":  2,
	},
}

var categoryOffsets = map[string]int{
	CategoryCardiac:      offsetCardiac,
	CategoryTrauma:       offsetTrauma,
	CategoryRespiratory:  offsetRespiratory,
	CategoryNeurological: offsetNeurological,
}

// Classify maps a complaint category and symptom list to a Score.
//
// The per-category score is the symptom weight sum clamped to [0,10] and
// drives the triage level. The overall severity is the same clamped sum plus
// the category offset, clamped to [1,10]. The two values are deliberately
// kept separate.
func Classify(category string, symptoms []string) Score {
	cat := strings.ToLower(strings.TrimSpace(category))
	table, ok := weightTables[cat]
	if !ok {
		table = weightTables[CategoryGeneral]
	}

	sum := 0
	for _, s := range symptoms {
		w, ok := table[strings.ToLower(strings.TrimSpace(s))]
		if !ok {
			w = defaultSymptomWeight
		}
		sum += w
	}

	categoryScore := clamp(sum, 0, 10)

	offset, ok := categoryOffsets[cat]
	if !ok {
		offset = offsetGeneral
	}
	severity := clamp(categoryScore+offset, 1, 10)

	return Score{
		Severity: severity,
		Level:    DetermineTriageLevel(categoryScore),
	}
}

// DetermineTriageLevel maps a 0..10 score to an ESI level. The mapping is
// total and monotonic: a lower score never yields a more urgent level.
//
// ESI3 and ESI4 are declared in the domain enum but unreachable here; the
// mapping jumps from ESI2 straight to ESI5. Kept as observed in the legacy
// triage tables rather than silently redistributing the bands.
func DetermineTriageLevel(score int) Level {
	switch {
	case score >= 8:
		return ESI1
	case score >= 5:
		return ESI2
	default:
		return ESI5
	}
}

// ClassifyOrDefault is the caller-facing entry point for emergency intake.
// If classification fails for any reason the conservative default of ESI2
// with a mid-range severity is substituted: emergencies fail toward caution,
// never toward "no triage needed".
func ClassifyOrDefault(category string, symptoms []string) (score Score) {
	defer func() {
		if r := recover(); r != nil {
			score = Score{Severity: 6, Level: ESI2}
		}
	}()
	return Classify(category, symptoms)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
