package status

import "encoding/json"

// Event is one status update flowing through the notification channel.
// Producers may attach arbitrary extra fields alongside script and status;
// the whole document is carried through to subscribers verbatim, including
// payloads that never carried a script or status key.
type Event struct {
	Script string
	Status string
	Extra  map[string]any

	hasScript bool
	hasStatus bool
}

func (e Event) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(e.Extra)+2)
	for k, v := range e.Extra {
		m[k] = v
	}
	if e.hasScript || e.Script != "" {
		m["script"] = e.Script
	}
	if e.hasStatus || e.Status != "" {
		m["status"] = e.Status
	}
	return json.Marshal(m)
}

func (e *Event) UnmarshalJSON(data []byte) error {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	// Only claim the keys when they hold strings; anything else stays in
	// Extra so the re-encoded frame matches the source document.
	if s, ok := m["script"].(string); ok {
		e.Script = s
		e.hasScript = true
		delete(m, "script")
	}
	if s, ok := m["status"].(string); ok {
		e.Status = s
		e.hasStatus = true
		delete(m, "status")
	}
	if len(m) > 0 {
		e.Extra = m
	} else {
		e.Extra = nil
	}
	return nil
}
