package ctxutil

import (
	"context"
	"testing"
)

func TestActorFromContext(t *testing.T) {
	tests := []struct {
		name string
		ctx  context.Context
		want string
	}{
		{name: "no actor", ctx: context.Background(), want: DefaultActor},
		{name: "actor set", ctx: WithActorID(context.Background(), "coordinator-7"), want: "coordinator-7"},
		{name: "empty actor ignored", ctx: WithActorID(context.Background(), ""), want: DefaultActor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ActorFromContext(tt.ctx); got != tt.want {
				t.Errorf("ActorFromContext() = %q, want %q", got, tt.want)
			}
		})
	}
}
