package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/dtroode/creatorhub/internal/insights"
	"github.com/dtroode/creatorhub/internal/listing"
	"github.com/dtroode/creatorhub/internal/model"
	"github.com/dtroode/creatorhub/internal/service"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func renderFooter[T any](w io.Writer, page listing.Page[T], noun string) {
	fmt.Fprintf(w, "Page %d/%d, %d %s\n", page.Number, page.TotalPages, page.Total, noun)
}

func renderUsers(w io.Writer, page listing.Page[model.User]) {
	t := newTable(w)
	fmt.Fprintln(t, "ID\tNAME\tEMAIL\tROLE\tPERFORMANCE")
	for _, u := range page.Items {
		fmt.Fprintf(t, "%s\t%s\t%s\t%s\t%s\n", u.ID, orDash(u.Name), orDash(u.Email), orDash(u.Role), number(u.Performance))
	}
	t.Flush()
	renderFooter(w, page, "users")
}

func renderFans(w io.Writer, page listing.Page[model.Fan], now time.Time) {
	t := newTable(w)
	fmt.Fprintln(t, "ID\tNAME\tSTATUS\tSPENT\tLAST ACTIVITY")
	for _, f := range page.Items {
		fmt.Fprintf(t, "%s\t%s\t%s\t%s\t%s\n", f.ID, f.Name, f.Status, money(f.TotalSpent), insights.ActivityLabel(f.LastActivity, now))
	}
	t.Flush()
	renderFooter(w, page, "fans")
}

func renderContent(w io.Writer, page listing.Page[model.Content]) {
	t := newTable(w)
	fmt.Fprintln(t, "ID\tSTATUS\tPRICE\tIMAGE")
	for _, c := range page.Items {
		fmt.Fprintf(t, "%s\t%s\t%s\t%s\n", c.ID, c.Status, money(c.Price), orDash(c.ImageURL))
	}
	t.Flush()
	renderFooter(w, page, "content items")
}

func renderImages(w io.Writer, page listing.Page[model.Image]) {
	t := newTable(w)
	fmt.Fprintln(t, "ID\tURL\tPRICE\tTAG")
	for _, i := range page.Items {
		fmt.Fprintf(t, "%s\t%s\t%s\t%s\n", i.ID, i.URL, money(i.Price), orDash(i.VersionTag))
	}
	t.Flush()
	renderFooter(w, page, "images")
}

func renderMessages(w io.Writer, page listing.Page[model.Message]) {
	t := newTable(w)
	fmt.Fprintln(t, "ID\tFROM\tTO\tSENT\tCONTENT")
	for _, m := range page.Items {
		sent := "-"
		if !m.CreatedAt.IsZero() {
			sent = m.CreatedAt.Format(time.DateTime)
		}
		fmt.Fprintf(t, "%s\t%s\t%s\t%s\t%s\n", m.ID, m.FromID, m.ToID, sent, m.Content)
	}
	t.Flush()
	renderFooter(w, page, "messages")
}

func renderProfile(w io.Writer, p model.UserProfile) {
	t := newTable(w)
	rows := [][2]string{
		{"ID", p.ID.String()},
		{"Email", p.Email},
		{"First name", deref(p.FirstName)},
		{"Last name", deref(p.LastName)},
		{"Avatar", deref(p.Avatar)},
		{"Bio", deref(p.Bio)},
		{"Job", deref(p.Job)},
		{"Phone", deref(p.Phone)},
		{"Country", deref(p.Country)},
		{"City", deref(p.City)},
		{"Postal code", deref(p.PostalCode)},
		{"Birthday", deref(p.Birthday)},
		{"Email notifications", onOff(p.Settings.EmailNotifications)},
		{"Push notifications", onOff(p.Settings.PushNotifications)},
		{"Marketing emails", onOff(p.Settings.MarketingEmails)},
		{"Security alerts", onOff(p.Settings.SecurityAlerts)},
		{"Facebook", deref(p.Social.Facebook)},
		{"Twitter", deref(p.Social.Twitter)},
		{"Instagram", deref(p.Social.Instagram)},
		{"LinkedIn", deref(p.Social.LinkedIn)},
	}
	for _, r := range rows {
		fmt.Fprintf(t, "%s:\t%s\n", r[0], r[1])
	}
	t.Flush()
}

func renderSession(w io.Writer, cur service.CurrentSession, now time.Time) {
	t := newTable(w)
	email, role := cur.Claims.Email, cur.Claims.Role
	if u := cur.Session.User; u != nil {
		email = firstNonEmpty(u.Email, email)
		role = firstNonEmpty(u.Role, role)
	}
	fmt.Fprintf(t, "Email:\t%s\n", orDash(email))
	fmt.Fprintf(t, "Role:\t%s\n", orDash(role))

	if cur.ClaimsErr != nil {
		fmt.Fprintf(t, "Token:\t%s\n", "opaque")
		t.Flush()
		return
	}
	fmt.Fprintf(t, "Account:\t%s\n", orDash(cur.Claims.Account()))

	expires := "never"
	switch exp := cur.Claims.Expiry(); {
	case cur.Expired:
		expires = "expired " + exp.Format(time.RFC3339)
	case !exp.IsZero():
		expires = fmt.Sprintf("%s (in %s)", exp.Format(time.RFC3339), cur.Claims.TTL(now).Round(time.Second))
	}
	fmt.Fprintf(t, "Expires:\t%s\n", expires)
	t.Flush()
}

func renderReport(w io.Writer, r service.Report) {
	header := "Dashboard, generated " + r.GeneratedAt.Format(time.DateTime)
	if !r.UpdatedAt.IsZero() {
		header += ", data from " + r.UpdatedAt.Format(time.DateTime)
	}
	fmt.Fprintln(w, header)
	if r.Loading {
		fmt.Fprintln(w, "Refreshing...")
	}
	if r.Err != nil {
		fmt.Fprintf(w, "Warning: %s\n", describeError(r.Err))
	}

	fmt.Fprintln(w, "\nALERTS")
	for _, al := range r.Alerts {
		fmt.Fprintf(w, "  [%s] %s: %s -> %s\n", al.Priority, al.Kind, al.Text, al.Action)
	}

	fmt.Fprintln(w, "\nPERFORMANCE")
	t := newTable(w)
	fmt.Fprintln(t, "  METRIC\tVALUE\tTREND")
	fmt.Fprintf(t, "  Revenue\t%s\t%s\n", number(r.Stats.Revenue.Value), trend(r.Stats.Revenue.Trend))
	fmt.Fprintf(t, "  Fans\t%s\t%s\n", number(r.Stats.Fans.Value), trend(r.Stats.Fans.Trend))
	fmt.Fprintf(t, "  Engagement\t%s\t%s\n", number(r.Stats.Engagement.Value), trend(r.Stats.Engagement.Trend))
	fmt.Fprintf(t, "  Messages\t%d\t\n", r.Stats.MessageCount)
	fmt.Fprintf(t, "  Avg performance\t%s\t\n", number(r.Stats.AvgPerformance))
	t.Flush()
	if r.Stats.Estimated {
		fmt.Fprintln(w, "  (trends are estimated)")
	}

	fmt.Fprintln(w, "\nSUMMARY")
	t = newTable(w)
	fmt.Fprintf(t, "  Income:\t%s\n", strconv.FormatFloat(r.Summary.Income, 'f', 2, 64))
	fmt.Fprintf(t, "  Media pushes:\t%d\n", r.Summary.MediaPushes)
	fmt.Fprintf(t, "  Tips (estimate):\t%d\n", r.Summary.TipsEstimate)
	fmt.Fprintf(t, "  Private media:\t%d\n", r.Summary.PrivateMedia)
	fmt.Fprintf(t, "  Lives:\t%d\n", r.Summary.Lives)
	fmt.Fprintf(t, "  Affiliates:\t%d\n", r.Summary.Affiliates)
	t.Flush()

	fmt.Fprintf(w, "\nINBOX (%d unread, %d VIP, %d urgent)\n", r.TriageCounts.Unread, r.TriageCounts.VIP, r.TriageCounts.Urgent)
	t = newTable(w)
	for _, m := range r.Triage {
		fmt.Fprintf(t, "  %s\t%s\t%s\n", m.Tier, m.From, m.Subject)
	}
	t.Flush()

	fmt.Fprintln(w, "\nRECENT FANS")
	t = newTable(w)
	for _, f := range r.RecentFans {
		fmt.Fprintf(t, "  %s\t%s\t%s\n", f.Fan.Name, f.Fan.Status, f.Label)
	}
	t.Flush()

	if len(r.Notices) > 0 {
		fmt.Fprintln(w, "\nNOTICES")
		for _, n := range r.Notices {
			fmt.Fprintf(w, "  %s\n", n.Text)
		}
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func deref(s *string) string {
	if s == nil {
		return "-"
	}
	return orDash(*s)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func money(a model.Amount) string {
	return strconv.FormatFloat(a.Float64(), 'f', 2, 64)
}

func number(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func trend(t float64) string {
	if t > 0 {
		return "+" + number(t) + "%"
	}
	return number(t) + "%"
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
