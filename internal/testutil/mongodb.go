//go:build integration

// Package testutil starts the MongoDB container shared by integration tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
)

const mongoImage = "mongo:7.0"

var (
	shared    *mongodb.MongoDBContainer
	sharedURI string
	sharedMu  sync.RWMutex
)

// StartMongoDB starts a MongoDB container and returns it with its connection string.
func StartMongoDB(ctx context.Context) (*mongodb.MongoDBContainer, string, error) {
	container, err := mongodb.Run(ctx, mongoImage)
	if err != nil {
		return nil, "", fmt.Errorf("testutil: start mongodb: %w", err)
	}
	uri, err := container.ConnectionString(ctx)
	if err != nil {
		_ = testcontainers.TerminateContainer(container)
		return nil, "", fmt.Errorf("testutil: connection string: %w", err)
	}
	return container, uri, nil
}

// SetupTestMainWithMongoDB runs the package tests against one shared container.
//
//	func TestMain(m *testing.M) {
//		os.Exit(testutil.SetupTestMainWithMongoDB(context.Background(), m))
//	}
func SetupTestMainWithMongoDB(ctx context.Context, m *testing.M) int {
	container, uri, err := StartMongoDB(ctx)
	if err != nil {
		panic(err)
	}

	sharedMu.Lock()
	shared, sharedURI = container, uri
	sharedMu.Unlock()

	code := m.Run()

	if err := testcontainers.TerminateContainer(container); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "testutil: terminate mongodb: %v\n", err)
	}
	return code
}

// GetSharedContainerURI returns the URI of the shared container.
// It panics when called outside SetupTestMainWithMongoDB.
func GetSharedContainerURI() string {
	sharedMu.RLock()
	defer sharedMu.RUnlock()
	if shared == nil {
		panic("testutil: shared mongodb container not started")
	}
	return sharedURI
}

// SanitizeDBName turns a test name into a unique, valid database name.
func SanitizeDBName(testName string) string {
	name := strings.NewReplacer("/", "_", "\\", "_", ".", "_", " ", "_", "$", "_", "\"", "_").Replace(testName)
	if len(name) > 50 {
		name = name[:50]
	}
	return fmt.Sprintf("%s_%d", name, time.Now().UnixNano()%1000000)
}
