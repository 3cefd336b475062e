// Package sitedata implements the merge and normalization rules for the
// aggregate site document.
package sitedata

import (
	"wedcms/internal/models"
)

// DeepMerge merges source into target in place and returns target.
// Only mapping values are merged recursively; anything else, arrays
// included, is replaced wholesale by the incoming value.
func DeepMerge(target, source map[string]interface{}) map[string]interface{} {
	for key, value := range source {
		if existing, ok := target[key]; ok {
			targetMap, targetOk := existing.(map[string]interface{})
			sourceMap, sourceOk := value.(map[string]interface{})
			if targetOk && sourceOk {
				DeepMerge(targetMap, sourceMap)
				continue
			}
		}
		target[key] = value
	}
	return target
}

// scopedKeySets are the narrow admin-panel saves: when an update touches
// nothing outside one of these sets, the named keys are replaced without
// any deep merge so unrelated sections stay untouched.
var scopedKeySets = [][]string{
	{"visibility", "admin"},
	{"events", "admin"},
}

// ApplyUpdate computes the next snapshot from the current one and a
// partial update. current is modified in place.
func ApplyUpdate(current, update models.SiteData) models.SiteData {
	for _, keys := range scopedKeySets {
		if keysSubsetOf(update, keys) {
			for _, key := range keys {
				if value, ok := update[key]; ok {
					current[key] = value
				}
			}
			return current
		}
	}

	merged := DeepMerge(current, update)

	// A story list in the update replaces the stored one wholesale;
	// merging would duplicate entries. Any legacy copy nested under
	// data.story is dropped at the same time.
	if story, ok := update["story"].([]interface{}); ok {
		merged["story"] = story
		if data, ok := merged["data"].(map[string]interface{}); ok {
			delete(data, "story")
		}
	}

	// hero.slides is replaced wholesale as well.
	if hero, ok := update["hero"].(map[string]interface{}); ok {
		if slides, has := hero["slides"]; has {
			target, ok := merged["hero"].(map[string]interface{})
			if !ok {
				target = map[string]interface{}{}
				merged["hero"] = target
			}
			target["slides"] = slides
		}
	}

	return merged
}

func keysSubsetOf(update models.SiteData, allowed []string) bool {
	for key := range update {
		found := false
		for _, a := range allowed {
			if key == a {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
