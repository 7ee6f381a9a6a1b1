package filler

import (
	"fmt"

	"github.com/c2h5oh/datasize"
)

// Report summarizes what a run did.
type Report struct {
	RunID string
	State State

	Rounds      int
	Directories int
	Files       int
	Bytes       int64

	// StoppedBy is the result of the attempt that ended filling. It stays
	// Created when filling ended on the round limit.
	StoppedBy         Result
	StoppedAt         string
	RoundLimitReached bool

	Drained     bool
	DrainSize   int64
	DrainResult Result
}

// StopReason describes why filling ended.
func (r Report) StopReason() string {
	if r.RoundLimitReached {
		return "round limit reached"
	}
	if r.StoppedBy == Created {
		return "not stopped"
	}
	return fmt.Sprintf("%s at %s", r.StoppedBy, r.StoppedAt)
}

// Allocated returns Bytes as a human readable size.
func (r Report) Allocated() string {
	return datasize.ByteSize(r.Bytes).HumanReadable()
}
