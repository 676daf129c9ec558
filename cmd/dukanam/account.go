package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dukerupert/dukanam/internal/model"
)

func init() {
	register(command{name: "login", summary: "log in and remember the session", run: runLogin})
	register(command{name: "logout", summary: "end the session", run: runLogout})
	register(command{name: "whoami", summary: "show the logged-in user", run: runWhoami})
	register(command{name: "otp", summary: "send a registration code to an email or phone", run: runOTP})
	register(command{name: "signup", summary: "register a new account with a code", run: runSignup})
	register(command{name: "sessions", summary: "list login history", run: runSessions})
}

func runLogin(ctx context.Context, a *app, args []string) error {
	fs := subFlags("login", a)
	contact := fs.String("contact", "", "email or mobile number")
	password := fs.String("password", "", "password (read from stdin when empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *contact == "" {
		return errors.New("login: --contact is required")
	}
	if *password == "" {
		pw, err := readLine("Password: ")
		if err != nil {
			return err
		}
		*password = pw
	}

	u, err := a.client.Login(ctx, model.LoginRequest{ContactInfo: *contact, Password: *password})
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if err := a.saveSession(*u); err != nil {
		return err
	}
	a.printf("Logged in as %s (%s)\n", u.UserName, u.Role)
	return nil
}

func (a *app) saveSession(u model.AuthUser) error {
	if _, err := a.sessions.Save(u); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	a.users.Set(u)
	return nil
}

// runLogout records the logout on the server and clears the local
// session even when the server call fails.
func runLogout(ctx context.Context, a *app, args []string) error {
	u, ok := a.users.Get()
	if !ok {
		a.printf("Not logged in\n")
		return nil
	}
	if err := a.client.RecordLogout(ctx, u.UserID); err != nil {
		a.logger.Warn("record logout", "user_id", u.UserID, "error", err)
	}
	a.users.Clear()
	if err := a.sessions.Clear(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	a.printf("Logged out\n")
	return nil
}

func runWhoami(ctx context.Context, a *app, args []string) error {
	sess, err := a.sessions.Load()
	if err != nil {
		return errNotLoggedIn
	}
	a.printf("%s (user %d, %s)\n", sess.UserName, sess.UserID, sess.Role)
	if sess.StoreID != nil {
		a.printf("store: %d\n", *sess.StoreID)
	}
	if sess.ExpiresAt != nil {
		a.printf("expires: %s\n", sess.ExpiresAt.Local().Format("2006-01-02 15:04"))
	}
	// The backend may have no open session row; the local login still counts.
	active, err := a.client.ActiveLoginSession(ctx, sess.UserID)
	if err != nil {
		a.logger.Debug("active login session unavailable", "error", err)
		return nil
	}
	a.printf("signed in since %s from %s\n", active.LoginTime.Format("2006-01-02 15:04"), active.IPAddress)
	return nil
}

func runOTP(ctx context.Context, a *app, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: dukanam otp <email-or-mobile>")
	}
	if err := a.client.SendOTP(ctx, args[0]); err != nil {
		return fmt.Errorf("send code: %w", err)
	}
	a.printf("Code sent to %s\n", args[0])
	return nil
}

func runSignup(ctx context.Context, a *app, args []string) error {
	var req model.RegisterRequest
	var role string
	fs := subFlags("signup", a)
	fs.StringVar(&req.FirstName, "first", "", "first name")
	fs.StringVar(&req.LastName, "last", "", "last name")
	fs.StringVar(&req.Email, "email", "", "email address")
	fs.StringVar(&req.MobileNumber, "mobile", "", "mobile number")
	fs.StringVar(&req.Password, "password", "", "password")
	fs.StringVar(&req.OTP, "otp", "", "code from dukanam otp")
	fs.StringVar(&role, "role", string(model.RoleCustomer), "CUSTOMER or STORE_OWNER")
	if err := fs.Parse(args); err != nil {
		return err
	}
	req.Role = model.Role(strings.ToUpper(role))

	u, err := a.client.Register(ctx, req)
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}
	if err := a.saveSession(*u); err != nil {
		return err
	}
	a.printf("Registered and logged in as %s (%s)\n", u.UserName, u.Role)
	return nil
}

func runSessions(ctx context.Context, a *app, args []string) error {
	u, err := a.user()
	if err != nil {
		return err
	}
	list, err := a.client.LoginSessions(ctx, u.UserID)
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}

	w := a.table()
	fmt.Fprintln(w, "LOGIN\tLOGOUT\tDURATION\tIP")
	for _, s := range list {
		logout := "active"
		if s.LogoutTime != nil {
			logout = s.LogoutTime.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.LoginTime.Format("2006-01-02 15:04"), logout, s.FormattedDuration, s.IPAddress)
	}
	return w.Flush()
}

func readLine(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
