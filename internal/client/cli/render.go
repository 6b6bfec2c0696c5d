package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/Zhanerrke588595/it-events/internal/client/models"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func seats(e models.Event) string {
	if e.MaxAttendees == 0 {
		return fmt.Sprintf("%d", len(e.Attendees))
	}
	return fmt.Sprintf("%d/%d", len(e.Attendees), e.MaxAttendees)
}

func when(e models.Event) string {
	if e.Time == "" {
		return e.Date
	}
	return e.Date + " " + e.Time
}

func printEvents(w io.Writer, events []models.Event, withStatus bool) {
	tw := newTable(w)
	if withStatus {
		fmt.Fprintln(tw, "ID\tWHEN\tTYPE\tTITLE\tLOCATION\tSEATS\tSTATUS")
	} else {
		fmt.Fprintln(tw, "ID\tWHEN\tTYPE\tTITLE\tLOCATION\tSEATS")
	}
	for _, e := range events {
		row := []string{e.ID, when(e), string(e.Type), e.Title, e.Location, seats(e)}
		if withStatus {
			row = append(row, string(e.Status))
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	_ = tw.Flush()
}

func printEvent(w io.Writer, e models.Event, registered bool) {
	fmt.Fprintf(w, "%s\n%s\n\n", e.Title, strings.Repeat("=", len(e.Title)))
	fmt.Fprintln(w, e.Description)
	fmt.Fprintln(w)

	tw := newTable(w)
	fmt.Fprintf(tw, "Type:\t%s\n", e.Type)
	fmt.Fprintf(tw, "When:\t%s\n", when(e))
	fmt.Fprintf(tw, "Where:\t%s\n", e.Location)
	fmt.Fprintf(tw, "Organizer:\t%s\n", e.CreatorName)
	fmt.Fprintf(tw, "Attendees:\t%s\n", seats(e))
	if e.Status != models.StatusApproved {
		fmt.Fprintf(tw, "Status:\t%s\n", e.Status)
	}
	if e.Img != "" {
		img := e.Img
		if strings.HasPrefix(img, "data:") {
			img = "(embedded image)"
		}
		fmt.Fprintf(tw, "Image:\t%s\n", img)
	}
	_ = tw.Flush()

	switch {
	case registered:
		fmt.Fprintln(w, "You are registered for this event.")
	case e.IsFull():
		fmt.Fprintln(w, "This event is full.")
	}
}

func printUsers(w io.Writer, users []models.User) {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tROLE\tCOMPANY\tVERIFIED")
	for _, u := range users {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.Role, u.CompanyName, yesNo(u.IsVerified))
	}
	_ = tw.Flush()
}

func printBookings(w io.Writer, bookings []models.Booking) {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tEVENT\tTITLE\tDATE")
	for _, b := range bookings {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", b.ID, b.EventID, b.EventTitle, b.Date)
	}
	_ = tw.Flush()
}
