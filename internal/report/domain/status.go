package domain

// Status is the processing state of a report.
type Status string

const (
	StatusNeu           Status = "neu"
	StatusBestaetigt    Status = "bestaetigt"
	StatusInBearbeitung Status = "in_bearbeitung"
	StatusAbgeschlossen Status = "abgeschlossen"
)

var transitions = map[Status][]Status{
	StatusNeu:           {StatusBestaetigt, StatusInBearbeitung, StatusAbgeschlossen},
	StatusBestaetigt:    {StatusInBearbeitung, StatusAbgeschlossen},
	StatusInBearbeitung: {StatusAbgeschlossen},
	StatusAbgeschlossen: {},
}

// IsValid reports whether s is a known status.
func (s Status) IsValid() bool {
	_, ok := transitions[s]
	return ok
}

// CanTransitionTo reports whether a report in status s may move to next.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
