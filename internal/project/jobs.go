package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/piwi3910/pathcut/internal/model"
)

// DefaultJobsDir returns the directory where job records are stored.
// This is located at ~/.pathcut/jobs/.
func DefaultJobsDir() string {
	return filepath.Join(DefaultConfigDir(), "jobs")
}

// SaveJob writes a job record to <dir>/<job id>.json and returns the path.
func SaveJob(dir string, job model.Job) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(job, "", "  ")
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, job.ID+".json")
	return path, os.WriteFile(path, data, 0644)
}

// LoadJob reads a job record from the given path.
func LoadJob(path string) (model.Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Job{}, err
	}
	var job model.Job
	if err := json.Unmarshal(data, &job); err != nil {
		return model.Job{}, err
	}
	return job, nil
}

// ListJobs returns all job records found in the given directory, in
// directory order. A missing directory yields an empty list.
func ListJobs(dir string) ([]model.Job, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var jobs []model.Job
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		job, err := LoadJob(filepath.Join(dir, e.Name()))
		if err != nil {
			continue
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}
