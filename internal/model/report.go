package model

import "time"

// SynthesisResult is the output of one inference call.
// Created once per run; immutable.
type SynthesisResult struct {
	Summary     string    `json:"summary"`
	Model       string    `json:"model"`
	GeneratedAt time.Time `json:"generated_at"`
	SourceCount int       `json:"source_count"`
	TokensUsed  int       `json:"tokens_used,omitempty"`
}

// RunState is the lifecycle state of a single pipeline run
type RunState string

const (
	StateIdle         RunState = "idle"
	StateIngesting    RunState = "ingesting"
	StateNormalizing  RunState = "normalizing"
	StateValidating   RunState = "validating"
	StateSynthesizing RunState = "synthesizing"
	StateWriting      RunState = "writing"
	StateDone         RunState = "done"
	StateFailed       RunState = "failed"
)

// IsTerminal reports whether the state ends a run
func (s RunState) IsTerminal() bool {
	return s == StateDone || s == StateFailed
}

// Event is one entry in a run's append-only visible log
type Event struct {
	At      time.Time `json:"at"`
	Stage   string    `json:"stage"`
	Message string    `json:"message"`
}

// CorpusStats holds the descriptive metrics the dashboard displays
type CorpusStats struct {
	Chars     int        `json:"chars"`
	Words     int        `json:"words"`
	TopWords  []WordFreq `json:"top_words,omitempty"`
	Documents int        `json:"documents"`
}

// WordFreq is one entry of the top-frequency word table
type WordFreq struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// RunReport is the complete record of one run, as shown on the dashboard
type RunReport struct {
	ID         string    `json:"id"`
	State      RunState  `json:"state"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at,omitempty"`

	Documents []SourceDocument `json:"documents"`
	Stats     CorpusStats      `json:"stats"`

	Synthesis  *SynthesisResult `json:"synthesis,omitempty"`
	ReportPath string           `json:"report_path,omitempty"`

	FailureKind string  `json:"failure_kind,omitempty"`
	FailureMsg  string  `json:"failure_msg,omitempty"`
	Events      []Event `json:"events"`
}
