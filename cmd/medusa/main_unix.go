//go:build linux || darwin

package main

import (
	"context"

	"golang.org/x/sys/unix"

	"github.com/bnema/medusa/internal/logging"
)

// disableCoreDumps sets RLIMIT_CORE to zero so a crash never writes page
// contents, cookies or the Tor state to disk.
func disableCoreDumps(ctx context.Context) {
	log := logging.FromContext(ctx)

	var limit unix.Rlimit
	if err := unix.Getrlimit(unix.RLIMIT_CORE, &limit); err != nil {
		log.Debug().Err(err).Msg("failed to read RLIMIT_CORE")
		return
	}
	if limit.Cur == 0 {
		return
	}
	limit.Cur = 0
	if err := unix.Setrlimit(unix.RLIMIT_CORE, &limit); err != nil {
		log.Warn().Err(err).Msg("failed to disable core dumps")
		return
	}
	log.Debug().Msg("core dumps disabled")
}
