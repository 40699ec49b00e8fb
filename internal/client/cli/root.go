package cli

import (
	"context"
	"fmt"
	"log"
)

func (a *App) getStatus() string {
	s := ""
	if a.userName != "" {
		s = a.userName + " "
	}
	a.modeMu.Lock()
	if a.Mode != "" {
		s = s + string(a.Mode)
	}
	a.modeMu.Unlock()
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Root runs the REPL until the user exits.
func (a *App) Root(ctx context.Context) {

	log.Println("Welcome to docflow CLI (type 'help' for commands)")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.checkOnline(ctx)
	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}
