// Package cli provides CLI commands for the LABRES application.
package cli

import (
	"context"
	"os"
	"strings"

	"github.com/example/labres/internal/ctxutil"
)

// EnvActor names the actor when --actor is not given.
const EnvActor = "LABRES_ACTOR"

// globalActorID stores the actor for the current CLI invocation.
// Set once at startup by SetActorID().
var globalActorID string

// SetActorID stores the actor for this invocation, falling back to $LABRES_ACTOR.
// Should be called once at CLI startup in PersistentPreRun.
func SetActorID(actor string) {
	actor = strings.TrimSpace(actor)
	if actor == "" {
		actor = strings.TrimSpace(os.Getenv(EnvActor))
	}
	globalActorID = actor
}

// GetActorID returns the stored actor ID from CLI startup.
func GetActorID() string {
	return globalActorID
}

// NewContext creates a context.Background() with the current actor ID embedded.
// CLI commands should use this instead of context.Background() directly.
func NewContext() context.Context {
	return ctxutil.WithActorID(context.Background(), globalActorID)
}
