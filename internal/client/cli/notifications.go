package cli

import (
	"context"
	"fmt"
)

func (a *App) Notifications(ctx context.Context, args []string) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	list, err := a.client.ListNotifications(ctx)
	if err != nil {
		return err
	}

	printNotifications(a.out, list)
	return nil
}

// Read marks a notification as read.
func (a *App) Read(ctx context.Context, args []string) error {
	id, err := a.arg(args, 0, "Enter notification id")
	if err != nil {
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	n, err := a.client.MarkNotificationRead(ctx, id)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Notification %s marked as read\n", n.ID)
	return nil
}
