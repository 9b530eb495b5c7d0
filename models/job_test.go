package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJobTableName(t *testing.T) {
	job := Job{}
	assert.Equal(t, "jobs", job.TableName(), "Table name should be 'jobs'")
}

func TestJobIsTerminal(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{JobStatusOpen, false},
		{JobStatusInProgress, false},
		{JobStatusCancelled, true},
		{JobStatusCompleted, true},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			job := Job{Status: tt.status}
			assert.Equal(t, tt.want, job.IsTerminal())
		})
	}
}
