package config

import "sort"

// CheckSchema validates the raw resource section of a node definition, as
// read from YAML, before it is decoded. Checks run in order: required keys,
// required description keys, unknown keys. The first failing check is
// reported.
func CheckSchema(resource map[string]any) error {
	if missing := missingKeys(resource, RequiredResourceKeys); len(missing) > 0 {
		return &SchemaError{Missing: missing}
	}

	desc, ok := resource["description"].(map[string]any)
	if !ok {
		return &SchemaError{MissingDesc: append([]string(nil), RequiredDescriptionKeys...)}
	}
	if missing := missingKeys(desc, RequiredDescriptionKeys); len(missing) > 0 {
		return &SchemaError{MissingDesc: missing}
	}

	valid := make(map[string]bool)
	for _, k := range RequiredResourceKeys {
		valid[k] = true
	}
	for _, k := range OptionalResourceKeys {
		valid[k] = true
	}
	var unknown []string
	for k := range resource {
		if !valid[k] {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return &SchemaError{Unknown: unknown}
	}
	return nil
}

func missingKeys(m map[string]any, keys []string) []string {
	var missing []string
	for _, k := range keys {
		if _, ok := m[k]; !ok {
			missing = append(missing, k)
		}
	}
	return missing
}
