package scoring

import "strings"

type Entry struct {
	Title       string
	Type        string
	Category    string
	Description string
	Topics      []string
}

type Indicator struct {
	Title         string
	Type          string
	Category      string
	Description   string
	Topics        []string
	MappingWeight float64
	TypeWeight    string
}

// MatchIndicators returns the entries whose topics contain any keyword as a
// case-insensitive substring, in entry order. An entry is recorded once, on
// the first keyword that hits.
func MatchIndicators(entries []Entry, keywords []string) []Indicator {
	lowered := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		lowered = append(lowered, strings.ToLower(kw))
	}

	matched := []Indicator{}
	for _, e := range entries {
		for _, kw := range lowered {
			if !topicsContain(e.Topics, kw) {
				continue
			}
			matched = append(matched, Indicator{
				Title:       e.Title,
				Type:        e.Type,
				Category:    e.Category,
				Description: e.Description,
				Topics:      append([]string{}, e.Topics...),
			})
			break
		}
	}
	return matched
}

func topicsContain(topics []string, lowerKeyword string) bool {
	for _, t := range topics {
		if strings.Contains(strings.ToLower(t), lowerKeyword) {
			return true
		}
	}
	return false
}
