package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/docflow/internal/api"
)

const timeLayout = "2006-01-02 15:04"

func printDocuments(w io.Writer, docs []api.Document) {
	if len(docs) == 0 {
		fmt.Fprintln(w, "No documents")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSTATUS\tSIZE\tUPLOADED")
	for _, d := range docs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", d.ID, d.Name, d.Status, d.Size, d.UploadedAt.Format(timeLayout))
	}
	tw.Flush()
}

func printUser(w io.Writer, u *api.User) {
	fmt.Fprintf(w, "ID:     %s\n", u.ID)
	fmt.Fprintf(w, "Name:   %s\n", u.Name)
	fmt.Fprintf(w, "Email:  %s\n", u.Email)
	fmt.Fprintf(w, "Role:   %s\n", u.Role)
	fmt.Fprintf(w, "Active: %t\n", u.IsActive)
}

func printDocument(w io.Writer, d *api.Document) {
	fmt.Fprintf(w, "ID:       %s\n", d.ID)
	fmt.Fprintf(w, "Name:     %s\n", d.Name)
	fmt.Fprintf(w, "Owner:    %s\n", d.OwnerID)
	fmt.Fprintf(w, "Status:   %s\n", d.Status)
	fmt.Fprintf(w, "Size:     %d\n", d.Size)
	fmt.Fprintf(w, "Uploaded: %s\n", d.UploadedAt.Format(timeLayout))
	printTime(w, "Signed:   ", d.SignedAt)
	printTime(w, "Rejected: ", d.RejectedAt)
}

func printTime(w io.Writer, label string, t *time.Time) {
	if t != nil {
		fmt.Fprintf(w, "%s%s\n", label, t.Format(timeLayout))
	}
}

func printSignatures(w io.Writer, sigs []api.Signature) {
	if len(sigs) == 0 {
		fmt.Fprintln(w, "No signatures")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tSIGNER\tSHA256\tSIGNED")
	for _, s := range sigs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", s.Order, s.SignerID, s.Digest, s.SignedAt.Format(timeLayout))
	}
	tw.Flush()
}

func printNotifications(w io.Writer, list []api.Notification) {
	if len(list) == 0 {
		fmt.Fprintln(w, "No notifications")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tREAD\tTITLE\tMESSAGE")
	for _, n := range list {
		fmt.Fprintf(tw, "%s\t%t\t%s\t%s\n", n.ID, n.Read, n.Title, n.Message)
	}
	tw.Flush()
}
