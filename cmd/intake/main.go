// Command intake is the terminal application form. It walks the six
// steps, autosaves progress to disk, and submits to the intake API.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	appconfig "github.com/dialastudent/stocktaker-intake/internal/config"
	"github.com/dialastudent/stocktaker-intake/internal/form"
	"github.com/dialastudent/stocktaker-intake/internal/form/field"
	"github.com/dialastudent/stocktaker-intake/internal/schedule"
	"github.com/dialastudent/stocktaker-intake/internal/session"
	"github.com/dialastudent/stocktaker-intake/internal/submitclient"
	"github.com/dialastudent/stocktaker-intake/pkg/logging"
)

func main() {
	_ = godotenv.Load()
	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	field.SetLogger(logger)

	sessionPath := cfg.SessionFile
	if sessionPath == "" {
		p, err := session.DefaultPath()
		if err != nil {
			logger.Error("cannot resolve session path", "error", err)
			os.Exit(1)
		}
		sessionPath = p
	}
	store := session.NewFileStore(sessionPath)

	sess := form.NewSession()
	if snap, err := store.Load(); err != nil {
		logger.Warn("could not read saved session, starting fresh", "error", err)
	} else if snap != nil {
		sess.Restore(snap)
		fmt.Printf("Resumed saved application (last saved %s).\n\n",
			snap.LastSaved.Local().Format("2 Jan 2006 15:04"))
	}

	saver := session.NewSaveScheduler(store, sess.Snapshot, session.DefaultSaveWindow, logger)
	defer saver.Close()
	sess.OnDirty(saver.Mark)

	var opts []submitclient.Option
	opts = append(opts, submitclient.WithLogger(logger))
	if cfg.TLSSkipVerify {
		opts = append(opts, submitclient.WithInsecureTLS())
	}
	client := submitclient.NewClient(cfg.APIBaseURL, opts...)
	flow := submitclient.NewFlow(client, store, logger)

	app := &app{
		cfg:    cfg,
		in:     bufio.NewScanner(os.Stdin),
		sess:   sess,
		store:  store,
		saver:  saver,
		client: client,
		flow:   flow,
		logger: logger,
		userID: userID(),
	}
	app.run()
}

// userID identifies the applicant across sessions. It comes from the
// environment when the caller has one, otherwise a fresh id is minted.
func userID() string {
	if id := strings.TrimSpace(os.Getenv("INTAKE_USER_ID")); id != "" {
		return id
	}
	return uuid.NewString()
}

type app struct {
	cfg    *appconfig.Config
	in     *bufio.Scanner
	sess   *form.Session
	store  session.Store
	saver  *session.SaveScheduler
	client *submitclient.Client
	flow   *submitclient.Flow
	logger *logging.Logger
	userID string

	calYear  int
	calMonth time.Month
}

func (a *app) run() {
	fmt.Println("Dial a Stocktaker — job application")
	fmt.Println("Commands: next, back, edit <field>, cal [+|-], status, submit, reset, quit")

	for {
		a.showStep()
		line, ok := a.readLine("> ")
		if !ok {
			a.saver.Flush()
			return
		}

		cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
		switch strings.ToLower(cmd) {
		case "":
		case "next":
			if !a.sess.Next() {
				fmt.Println("Please fix the errors shown before continuing.")
			}
		case "back":
			a.sess.Prev()
		case "edit":
			a.editField(strings.TrimSpace(arg))
		case "cal":
			a.showCalendar(strings.TrimSpace(arg))
		case "status":
			a.showStatus()
		case "submit":
			a.submit()
		case "reset":
			a.reset()
		case "quit", "exit":
			a.saver.Flush()
			fmt.Println("Progress saved. Run again to continue.")
			return
		default:
			fmt.Printf("Unknown command %q.\n", cmd)
		}
	}
}

func (a *app) showStep() {
	step := a.sess.Step()
	fmt.Printf("\n--- Step %d of %d: %s ---\n", int(step), form.StepCount, step.Title())

	if step == form.StepInterview {
		a.showSlots()
	}

	for _, spec := range form.Fields(step) {
		marker := " "
		if a.sess.Error(spec.Name) != "" {
			marker = "!"
		}
		value := a.sess.Value(spec.Name)
		if value == "" {
			value = "(empty)"
		}
		fmt.Printf("%s %-20s %s\n", marker, spec.Name, value)
		if msg := a.sess.Error(spec.Name); msg != "" {
			fmt.Printf("    %s\n", msg)
		}
	}
}

func (a *app) editField(name string) {
	spec, ok := form.Lookup(name)
	if !ok {
		fmt.Printf("No field named %q on this form.\n", name)
		return
	}

	fmt.Printf("%s", spec.Label)
	if len(spec.Options) > 0 {
		values := make([]string, len(spec.Options))
		for i, opt := range spec.Options {
			values[i] = opt.Value
		}
		fmt.Printf(" [%s]", strings.Join(values, " | "))
	}
	if spec.Placeholder != "" {
		fmt.Printf(" (e.g. %s)", spec.Placeholder)
	}
	fmt.Println()

	line, ok := a.readLine("value> ")
	if !ok {
		return
	}
	a.sess.Set(name, strings.TrimSpace(line))
	a.sess.Blur(name)
	if msg := a.sess.Error(name); msg != "" {
		fmt.Println(msg)
	}
}

func (a *app) showSlots() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	counts, err := a.client.BookedSlots(ctx)
	if err != nil {
		fmt.Println("Could not load live availability; dates may fill up.")
		a.logger.Warn("booked slots fetch failed", "error", err)
		counts = map[string]map[string]int{}
	}

	dates := schedule.SelectableDates(time.Now())
	show := dates
	if len(show) > 10 {
		show = show[:10]
	}
	fmt.Println("Next available interview dates:")
	for _, d := range show {
		var free int
		for _, slot := range schedule.Availability(d, counts) {
			if !slot.Full {
				free++
			}
		}
		fmt.Printf("  %s  (%d of %d times open)\n", d, free, len(schedule.Slots))
	}
	if date := a.sess.Value("interviewDate"); date != "" {
		fmt.Printf("Times on %s:\n", date)
		for _, slot := range schedule.Availability(date, counts) {
			state := fmt.Sprintf("%d left", slot.Remaining)
			if slot.Full {
				state = "full"
			}
			fmt.Printf("  %s  %s-%s  (%s)\n", slot.Slot.Value, slot.Slot.Start, slot.Slot.End, state)
		}
	}
}

// showCalendar prints a month of bookable dates; "+" and "-" page
// through months without touching the selectable window.
func (a *app) showCalendar(arg string) {
	now := time.Now()
	if a.calYear == 0 {
		a.calYear, a.calMonth = now.Year(), now.Month()
	}
	switch arg {
	case "+":
		a.calYear, a.calMonth = schedule.NextMonth(a.calYear, a.calMonth)
	case "-":
		a.calYear, a.calMonth = schedule.PrevMonth(a.calYear, a.calMonth)
	}

	grid := schedule.MonthGrid(a.calYear, a.calMonth,
		schedule.SelectableDateSet(now), a.sess.Value("interviewDate"))

	fmt.Printf("\n%s %d   ([ ] bookable, * chosen)\n", a.calMonth, a.calYear)
	fmt.Println(" Su  Mo  Tu  We  Th  Fr  Sa")
	for i, day := range grid {
		switch {
		case day.Blank:
			fmt.Print("    ")
		case day.Selected:
			fmt.Printf("*%2d ", day.Day)
		case day.Selectable:
			fmt.Printf("[%2d]", day.Day)
		default:
			fmt.Printf(" %2d ", day.Day)
		}
		if (i+1)%7 == 0 {
			fmt.Println()
		}
	}
	fmt.Println()
}

func (a *app) showStatus() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	status, err := a.client.GetStatus(ctx, a.userID)
	if err != nil {
		fmt.Println("Could not reach the server.")
		return
	}
	if status == nil || !status.Exists {
		fmt.Println("No application on record yet.")
		return
	}
	if status.User != nil && status.User.HasCompletedForm {
		fmt.Println("Your application has already been submitted.")
		return
	}
	fmt.Println("Application registered but not yet submitted.")
}

func (a *app) submit() {
	if !a.sess.CanSubmit() {
		fmt.Println("The form is not complete; fix the errors shown on each step first.")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	values := a.sess.Values()
	if err := a.client.UpsertUser(ctx, submitclient.UpsertRequest{
		UserID:    a.userID,
		Email:     values["email"],
		FirstName: values["firstnames"],
		LastName:  values["surname"],
	}); err != nil {
		fmt.Println("Could not register your details; try again shortly.")
		a.logger.Error("upsert failed", "error", err)
		return
	}

	a.saver.Flush()
	resp, err := a.flow.Run(ctx, a.userID, values)
	if err != nil {
		fmt.Printf("Submission failed: %v\n", err)
		fmt.Println("Your progress is still saved locally.")
		return
	}

	fmt.Println("\nApplication submitted. Thank you!")
	if resp.ApplicationID != "" {
		fmt.Printf("Your reference: %s\n", resp.ApplicationID)
	}
	if d, s := values["interviewDate"], values["interviewTime"]; d != "" && s != "" {
		fmt.Printf("Interview booked for %s at %s.\n", d, s)
	}

	// The flow already deleted the saved session; drop any pending save
	// so a defaults snapshot does not reappear on disk.
	a.saver.Discard()
	a.sess.Reset()
}

// reset wipes the form and its saved copy, after confirmation.
func (a *app) reset() {
	fmt.Println("This discards all your answers and deletes saved progress.")
	line, ok := a.readLine("Type 'yes' to confirm: ")
	if !ok || strings.ToLower(strings.TrimSpace(line)) != "yes" {
		fmt.Println("Reset cancelled.")
		return
	}

	a.saver.Discard()
	a.sess.Reset()
	if err := a.store.Clear(); err != nil {
		a.logger.Warn("could not delete saved session", "error", err)
	}
	fmt.Println("Form cleared.")
}

func (a *app) readLine(prompt string) (string, bool) {
	fmt.Print(prompt)
	if !a.in.Scan() {
		return "", false
	}
	return a.in.Text(), true
}
