package sitedata

import (
	"reflect"

	"wedcms/internal/models"
)

// Normalize repairs legacy shapes in a loaded snapshot, in place:
// a story list nested under data.story is folded into the top-level
// story key, and the payment section is coerced to its expected shape.
func Normalize(data models.SiteData) models.SiteData {
	foldLegacyStory(data)
	ensurePaymentShape(data)
	return data
}

// foldLegacyStory merges data.story into story. Top-level entries win;
// nested entries are appended only when no equal entry exists already.
func foldLegacyStory(data models.SiteData) {
	nested, ok := data["data"].(map[string]interface{})
	if !ok {
		return
	}
	nestedStory, ok := nested["story"].([]interface{})
	if !ok {
		return
	}

	if topStory, ok := data["story"].([]interface{}); ok {
		for _, entry := range nestedStory {
			if !containsValue(topStory, entry) {
				topStory = append(topStory, entry)
			}
		}
		data["story"] = topStory
	} else {
		data["story"] = nestedStory
	}
	delete(nested, "story")
}

func containsValue(list []interface{}, value interface{}) bool {
	for _, entry := range list {
		if reflect.DeepEqual(entry, value) {
			return true
		}
	}
	return false
}

func ensurePaymentShape(data models.SiteData) {
	payment, ok := data["payment"].(map[string]interface{})
	if !ok {
		data["payment"] = map[string]interface{}{
			"global_message": "",
			"payments":       []interface{}{},
		}
		return
	}
	if _, ok := payment["payments"]; !ok {
		payment["payments"] = []interface{}{}
	}
}

// StripStoryDataURLs removes the transient dataUrl field from every
// story entry. The image bytes are stored as uploaded files; leaving
// them inline would grow every aggregate read without bound.
func StripStoryDataURLs(data models.SiteData) {
	story, ok := data["story"].([]interface{})
	if !ok {
		return
	}
	for _, entry := range story {
		if m, ok := entry.(map[string]interface{}); ok {
			delete(m, "dataUrl")
		}
	}
}
