//go:build !integration

package app

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vikasdeshmukh63/ecom-backend/config"
)

func TestIsExpectedStoreError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"duplicate key", mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}, true},
		{"no documents", fmt.Errorf("find: %w", mongo.ErrNoDocuments), true},
		{"network failure", errors.New("connection refused"), false},
		{"deadline", context.DeadlineExceeded, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, isExpectedStoreError(tt.err))
		})
	}
}

func TestBreakerConfig(t *testing.T) {
	cfg := config.DatabaseConfig{
		CircuitBreakerFailureThreshold: 3,
		CircuitBreakerSuccessThreshold: 1,
		CircuitBreakerTimeout:          time.Second,
	}

	got := breakerConfig(cfg, breakerOrders)

	assert.Equal(t, breakerOrders, got.Name)
	assert.Equal(t, 3, got.FailureThreshold)
	assert.Equal(t, 1, got.SuccessThreshold)
	assert.Equal(t, time.Second, got.Timeout)
	assert.NotNil(t, got.IsExpected)
}
