package cli

import (
	"context"
	"fmt"
)

func (a *App) Sign(ctx context.Context, args []string) error {
	id, err := a.arg(args, 0, "Enter document id")
	if err != nil {
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	sig, err := a.client.Sign(ctx, id)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Signature #%d added to %s (sha256 %s)\n", sig.Order, sig.DocumentID, sig.Digest)
	return nil
}

func (a *App) Signatures(ctx context.Context, args []string) error {
	id, err := a.arg(args, 0, "Enter document id")
	if err != nil {
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	sigs, err := a.client.ListSignatures(ctx, id)
	if err != nil {
		return err
	}

	printSignatures(a.out, sigs)
	return nil
}
