//go:build !zmq

package main

import (
	"context"

	"go.uber.org/zap"
)

// Without the zmq build tag the watcher relies on its poll interval alone.
func startBlockSignal(_ context.Context, addr string, logger *zap.Logger) (<-chan struct{}, error) {
	if addr != "" {
		logger.Warn("zmq address configured but binary built without zmq support", zap.String("addr", addr))
	}
	return nil, nil
}
