package identity

// HistoryLimit caps the device and IP histories kept per creator.
const HistoryLimit = 3

// MergeRecent folds value into a most-recently-used history: unchanged when
// value is already at the head, otherwise value is prepended, a later
// duplicate is dropped, and the result is truncated to HistoryLimit entries.
func MergeRecent(history []string, value string) []string {
	if len(history) > 0 && history[0] == value {
		return history
	}

	merged := make([]string, 0, HistoryLimit)
	merged = append(merged, value)
	for _, v := range history {
		if v == value {
			continue
		}
		merged = append(merged, v)
		if len(merged) == HistoryLimit {
			break
		}
	}
	return merged
}
