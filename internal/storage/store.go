// Package storage records what headless runs did, tick by tick.
package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotInitialized is returned when a store is used before Init.
var ErrNotInitialized = errors.New("store is not initialized")

// Run describes one headless simulation run.
type Run struct {
	ID      string            `json:"id"`
	Sim     string            `json:"sim"`
	Width   int               `json:"width"`
	Height  int               `json:"height"`
	Seed    int64             `json:"seed"`
	Config  map[string]string `json:"config,omitempty"`
	Started time.Time         `json:"started"`
}

// Frame summarizes a single tick.
type Frame struct {
	Tick       int   `json:"tick"`
	Changed    bool  `json:"changed"`
	Population int64 `json:"population"`
	Agents     int   `json:"agents"`
	Row        int   `json:"row"`
}

// Store persists runs and their frames.
type Store interface {
	Init(ctx context.Context) error
	SaveRun(ctx context.Context, run Run) error
	GetRun(ctx context.Context, id string) (Run, bool, error)
	AppendFrames(ctx context.Context, runID string, frames []Frame) error
	ListFrames(ctx context.Context, runID string) ([]Frame, error)
}
