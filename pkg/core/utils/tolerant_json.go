package utils

import (
	"encoding/json"
	"fmt"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
)

// TolerantParse tries multiple parsing strategies to decode a JSON payload
// into target. Intended for API responses that arrive slightly mangled
// (truncation, stray bytes, BOMs from intermediate proxies).
//
// Order of attempts:
//  1. Standard JSON parse
//  2. JSON repair
//  3. Hjson parse (most lenient)
//
// Returns the form of the input that decoded successfully.
func TolerantParse(input string, target interface{}) (string, error) {
	if err := json.Unmarshal([]byte(input), target); err == nil {
		return input, nil
	}

	if repaired, err := RepairJSON(input); err == nil {
		if err := json.Unmarshal([]byte(repaired), target); err == nil {
			return repaired, nil
		}
	}

	if normalized, err := hjsonToJSON(input); err == nil {
		if err := json.Unmarshal([]byte(normalized), target); err == nil {
			return normalized, nil
		}
	}

	return "", fmt.Errorf("tolerant parse failed: all strategies exhausted")
}

// RepairJSON attempts to fix common JSON defects: missing quotes around
// keys, single quotes, unclosed arrays/objects, trailing commas, comments.
func RepairJSON(malformed string) (string, error) {
	repaired, err := jsonrepair.RepairJSON(malformed)
	if err != nil {
		return "", fmt.Errorf("json repair failed: %v", err)
	}
	return repaired, nil
}

// hjsonToJSON parses Human-friendly JSON and re-emits standard JSON.
func hjsonToJSON(input string) (string, error) {
	var result interface{}
	if err := hjson.Unmarshal([]byte(input), &result); err != nil {
		return "", fmt.Errorf("hjson parse failed: %v", err)
	}

	out, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("json marshal failed: %v", err)
	}
	return string(out), nil
}
