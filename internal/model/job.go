package model

import (
	"time"

	"github.com/google/uuid"
)

// JobStats summarizes a generated toolpath list for reports and labels.
type JobStats struct {
	ToolpathCount int     `json:"toolpath_count"`
	MoveCount     int     `json:"move_count"`
	CutDistance   float64 `json:"cut_distance"`   // mm
	RapidDistance float64 `json:"rapid_distance"` // mm
	EstimatedTime float64 `json:"estimated_time"` // minutes
}

// Job records one completed machining run: the input file, the configuration
// it was generated with, and summary statistics. Jobs are what the traveler
// labels and the recent-jobs list refer to.
type Job struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	InputFile string    `json:"input_file"`
	Config    CamConfig `json:"config"`
	Stats     JobStats  `json:"stats"`
	CreatedAt string    `json:"created_at"`
}

// NewJob creates a job record for a completed run.
func NewJob(name, inputFile string, config CamConfig, stats JobStats) Job {
	return Job{
		ID:        uuid.New().String()[:8],
		Name:      name,
		InputFile: inputFile,
		Config:    config,
		Stats:     stats,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
}
