package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/docflow/internal/filex"
	"github.com/dmitrijs2005/docflow/internal/hashx"
)

// readFile is a test seam for reading upload sources.
var readFile = os.ReadFile

func (a *App) Upload(ctx context.Context, args []string) error {
	path, err := a.arg(args, 0, "Enter path to a PDF file")
	if err != nil {
		return err
	}

	data, err := readFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	doc, err := a.client.Upload(ctx, filepath.Base(path), data)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Uploaded %s as %s (id %s)\n", path, doc.Name, doc.ID)
	return nil
}

func (a *App) List(ctx context.Context, args []string) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	docs, err := a.client.ListDocuments(ctx)
	if err != nil {
		return err
	}

	printDocuments(a.out, docs)
	return nil
}

func (a *App) Show(ctx context.Context, args []string) error {
	id, err := a.arg(args, 0, "Enter document id")
	if err != nil {
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	doc, err := a.client.GetDocument(ctx, id)
	if err != nil {
		return err
	}

	printDocument(a.out, doc)
	return nil
}

func (a *App) Transitions(ctx context.Context, args []string) error {
	id, err := a.arg(args, 0, "Enter document id")
	if err != nil {
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	statuses, err := a.client.AllowedTransitions(ctx, id)
	if err != nil {
		return err
	}

	if len(statuses) == 0 {
		fmt.Fprintln(a.out, "No transitions available")
		return nil
	}
	fmt.Fprintln(a.out, strings.Join(statuses, ", "))
	return nil
}

func (a *App) State(ctx context.Context, args []string) error {
	id, err := a.arg(args, 0, "Enter document id")
	if err != nil {
		return err
	}
	status, err := a.arg(args, 1, "Enter target status (IN_REVIEW, SIGNED, REJECTED)")
	if err != nil {
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	doc, err := a.client.ChangeState(ctx, id, strings.ToUpper(status))
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Document %s is now %s\n", doc.ID, doc.Status)
	return nil
}

func (a *App) Reject(ctx context.Context, args []string) error {
	id, err := a.arg(args, 0, "Enter document id")
	if err != nil {
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	doc, err := a.client.Reject(ctx, id)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Document %s is now %s\n", doc.ID, doc.Status)
	return nil
}

// Download saves a verified document into the download directory. The
// digest sent by the server is checked again against the received bytes.
func (a *App) Download(ctx context.Context, args []string) error {
	id, err := a.arg(args, 0, "Enter document id")
	if err != nil {
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	dl, err := a.client.Download(ctx, id)
	if err != nil {
		return err
	}

	if !hashx.Equal(hashx.Sum(dl.Data), dl.Digest) {
		return fmt.Errorf("received bytes do not match digest %s", dl.Digest)
	}

	dir, err := filex.EnsureDir(a.config.DownloadDir)
	if err != nil {
		return err
	}
	path, err := filex.WriteFile(dir, dl.Document.Name, dl.Data)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Saved %s (%d bytes, sha256 %s)\n", path, len(dl.Data), dl.Digest)
	return nil
}
