package models

import (
	"strings"

	"github.com/Sanenelisiwe1975/Baxela/storage"
)

var criticalKeywords = []string{
	"violence", "weapon", "gun", "shooting", "bomb", "explosion",
	"assault", "attack", "threat", "armed",
}

var highKeywords = []string{
	"fraud", "tamper", "intimidat", "bribe", "stolen", "destroyed",
	"ballot stuffing", "coercion", "blocked from voting",
}

var mediumKeywords = []string{
	"irregular", "malfunction", "broken", "delay", "long line",
	"confus", "misinform", "missing",
}

var categoryDefaultSeverity = map[string]storage.IncidentSeverity{
	CategoryViolence:             storage.SeverityCritical,
	CategoryVoterIntimidation:    storage.SeverityCritical,
	CategoryBallotTampering:      storage.SeverityHigh,
	CategoryVoterFraud:           storage.SeverityHigh,
	CategoryEquipmentMalfunction: storage.SeverityMedium,
	CategoryMisinformation:       storage.SeverityMedium,
	CategoryAccessibility:        storage.SeverityLow,
	CategoryOther:                storage.SeverityLow,
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

// InferSeverity decides a severity for a report that did not supply one.
// Critical keywords and the two intimidation categories always win, then
// the keyword tiers, then the category default.
func InferSeverity(category, description string) storage.IncidentSeverity {
	text := strings.ToLower(description)

	if containsAny(text, criticalKeywords) {
		return storage.SeverityCritical
	}
	if category == CategoryViolence || category == CategoryVoterIntimidation {
		return storage.SeverityCritical
	}
	if containsAny(text, highKeywords) {
		return storage.SeverityHigh
	}
	if containsAny(text, mediumKeywords) {
		return storage.SeverityMedium
	}
	if severity, ok := categoryDefaultSeverity[category]; ok {
		return severity
	}
	return storage.SeverityLow
}
