package itinerary

import "strings"

// cleanJSONResponse strips markdown fences and chatter around the first JSON
// object or array in an LLM reply.
func cleanJSONResponse(response string) string {
	response = strings.ReplaceAll(response, "```json", "")
	response = strings.ReplaceAll(response, "```JSON", "")
	response = strings.ReplaceAll(response, "```", "")
	response = strings.TrimSpace(response)

	objStart := strings.Index(response, "{")
	arrStart := strings.Index(response, "[")

	if objStart != -1 && (arrStart == -1 || objStart < arrStart) {
		if end := findMatching(response, objStart, '{', '}'); end != -1 {
			response = response[objStart : end+1]
		}
	} else if arrStart != -1 {
		if end := findMatching(response, arrStart, '[', ']'); end != -1 {
			response = response[arrStart : end+1]
		}
	}

	return strings.TrimSpace(response)
}

// findMatching returns the index of the delimiter closing s[start], skipping
// anything inside JSON strings, or -1.
func findMatching(s string, start int, openCh, closeCh byte) int {
	if start >= len(s) || s[start] != openCh {
		return -1
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		char := s[i]

		if escaped {
			escaped = false
			continue
		}
		if char == '\\' && inString {
			escaped = true
			continue
		}
		if char == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch char {
		case openCh:
			depth++
		case closeCh:
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}
