// Package app implements the interactive terminal frontend for the clinic API.
package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/vetclinic/clinic-system/internal/cli/client"
	"github.com/vetclinic/clinic-system/internal/cli/session"
)

const dateLayout = "2006-01-02 15:04"

// App drives the interactive menu loop. Errors from the server are printed
// and the loop continues; only EOF or an explicit quit ends the session.
type App struct {
	client   *client.Client
	sessions *session.Store
	in       *bufio.Scanner
	out      io.Writer
	current  *session.Session
}

// New wires the terminal app. A previously saved session is restored so a
// login survives restarts.
func New(c *client.Client, store *session.Store, in io.Reader, out io.Writer) *App {
	a := &App{
		client:   c,
		sessions: store,
		in:       bufio.NewScanner(in),
		out:      out,
	}
	if sess := store.Load(); sess != nil {
		a.current = sess
		c.SetToken(sess.Token)
	}
	return a
}

// Run executes the menu loop until quit or EOF.
func (a *App) Run(ctx context.Context) error {
	fmt.Fprintln(a.out, "Veterinary Clinic Terminal")

	for {
		a.printMenu()
		choice, ok := a.prompt("> ")
		if !ok {
			return nil
		}

		var err error
		switch choice {
		case "1":
			err = a.login(ctx)
		case "2":
			err = a.register(ctx)
		case "3":
			err = a.listAppointments(ctx)
		case "4":
			err = a.bookAppointment(ctx)
		case "5":
			err = a.transitionAppointment(ctx, "COMPLETED")
		case "6":
			err = a.cancelAppointment(ctx)
		case "7":
			err = a.showStats(ctx)
		case "8":
			err = a.listCatalog(ctx)
		case "9":
			err = a.logout()
		case "0", "q", "quit", "exit":
			fmt.Fprintln(a.out, "Goodbye.")
			return nil
		case "":
			continue
		default:
			fmt.Fprintln(a.out, "Unknown option.")
			continue
		}

		if err != nil {
			fmt.Fprintf(a.out, "Error: %v\n", err)
		}
	}
}

func (a *App) printMenu() {
	fmt.Fprintln(a.out)
	if a.current != nil {
		fmt.Fprintf(a.out, "Logged in as %s (%s)\n",
			a.current.Username, strings.Join(a.current.Roles, ", "))
	} else {
		fmt.Fprintln(a.out, "Not logged in.")
	}
	fmt.Fprintln(a.out, ` 1) Login
 2) Register
 3) List appointments
 4) Book appointment
 5) Complete appointment
 6) Cancel appointment
 7) Clinic statistics
 8) Browse catalog
 9) Logout
 0) Quit`)
}

func (a *App) prompt(label string) (string, bool) {
	fmt.Fprint(a.out, label)
	if !a.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(a.in.Text()), true
}

func (a *App) login(ctx context.Context) error {
	username, ok := a.prompt("Username: ")
	if !ok {
		return nil
	}
	password, ok := a.prompt("Password: ")
	if !ok {
		return nil
	}

	res, err := a.client.Login(ctx, username, password)
	if err != nil {
		return err
	}

	a.current = &session.Session{
		Username: username,
		Token:    res.AccessToken,
		Roles:    res.Roles,
	}
	if err := a.sessions.Save(a.current); err != nil {
		fmt.Fprintf(a.out, "Warning: session not saved: %v\n", err)
	}
	fmt.Fprintf(a.out, "Welcome, %s.\n", username)
	return nil
}

func (a *App) register(ctx context.Context) error {
	username, ok := a.prompt("Username: ")
	if !ok {
		return nil
	}
	email, ok := a.prompt("Email (optional): ")
	if !ok {
		return nil
	}
	password, ok := a.prompt("Password: ")
	if !ok {
		return nil
	}

	if err := a.client.Register(ctx, username, email, password); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Account created. You can log in now.")
	return nil
}

func (a *App) logout() error {
	a.current = nil
	a.client.SetToken("")
	if err := a.sessions.Clear(); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func (a *App) listAppointments(ctx context.Context) error {
	appts, err := a.client.Appointments(ctx)
	if err != nil {
		return err
	}
	if len(appts) == 0 {
		fmt.Fprintln(a.out, "No appointments.")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tSTATUS\tPET\tVET\tSERVICE")
	for _, ap := range appts {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			ap.ID, ap.AppointmentDate.Format(dateLayout), ap.Status,
			ap.PetName, ap.VetName, ap.ServiceName)
	}
	return w.Flush()
}

func (a *App) bookAppointment(ctx context.Context) error {
	dateStr, ok := a.prompt("Date (YYYY-MM-DD HH:MM): ")
	if !ok {
		return nil
	}
	date, err := time.ParseInLocation(dateLayout, dateStr, time.Local)
	if err != nil {
		return fmt.Errorf("invalid date, expected %s", dateLayout)
	}

	petID, ok := a.prompt("Pet id: ")
	if !ok {
		return nil
	}
	vetID, ok := a.prompt("Vet id: ")
	if !ok {
		return nil
	}
	serviceID, ok := a.prompt("Service id: ")
	if !ok {
		return nil
	}
	notes, ok := a.prompt("Notes (optional): ")
	if !ok {
		return nil
	}

	appt, err := a.client.CreateAppointment(ctx, client.CreateAppointmentInput{
		AppointmentDate: date,
		Notes:           notes,
		PetID:           petID,
		VetID:           vetID,
		ServiceID:       serviceID,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Booked appointment %s for %s with %s.\n",
		appt.ID, appt.PetName, appt.VetName)
	return nil
}

func (a *App) transitionAppointment(ctx context.Context, status string) error {
	id, ok := a.prompt("Appointment id: ")
	if !ok {
		return nil
	}

	appt, err := a.client.UpdateAppointmentStatus(ctx, id, status)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Appointment %s is now %s.\n", appt.ID, appt.Status)
	return nil
}

func (a *App) cancelAppointment(ctx context.Context) error {
	id, ok := a.prompt("Appointment id: ")
	if !ok {
		return nil
	}

	if err := a.client.CancelAppointment(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Appointment %s cancelled.\n", id)
	return nil
}

func (a *App) showStats(ctx context.Context) error {
	stats, err := a.client.Stats(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Vets\t%d\n", stats.TotalVets)
	fmt.Fprintf(w, "Patients\t%d\n", stats.TotalPatients)
	fmt.Fprintf(w, "Appointments\t%d\n", stats.TotalAppointments)
	fmt.Fprintf(w, "Active services\t%d\n", stats.ActiveServices)
	for status, n := range stats.AppointmentsByStatus {
		fmt.Fprintf(w, "  %s\t%d\n", status, n)
	}
	return w.Flush()
}

func (a *App) listCatalog(ctx context.Context) error {
	vets, err := a.client.Vets(ctx)
	if err != nil {
		return err
	}
	pets, err := a.client.Pets(ctx)
	if err != nil {
		return err
	}
	services, err := a.client.Services(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "VETS")
	fmt.Fprintln(w, "ID\tNAME\tSPECIALTY")
	for _, v := range vets {
		fmt.Fprintf(w, "%s\t%s %s\t%s\n", v.ID, v.FirstName, v.LastName, v.Specialty)
	}
	fmt.Fprintln(w, "\nPETS")
	fmt.Fprintln(w, "ID\tNAME\tSPECIES\tBREED")
	for _, p := range pets {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Species, p.Breed)
	}
	fmt.Fprintln(w, "\nSERVICES")
	fmt.Fprintln(w, "ID\tNAME\tPRICE\tACTIVE")
	for _, s := range services {
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%t\n", s.ID, s.Name, s.Price, s.Active)
	}
	return w.Flush()
}
