package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	domainauth "github.com/simbrella/cms-console/internal/domain/auth"
	"github.com/simbrella/cms-console/internal/domain/forms"
)

// Exit statuses beyond the generic failure (1).
const (
	exitDenied      = 3
	exitNotSignedIn = 4
)

var errNotSignedIn = exitError{code: exitNotSignedIn, msg: "not signed in; run cms-admin login"}

func newLoginCmd(opts *rootOptions) *cobra.Command {
	var (
		email    string
		password string
		remember bool
	)
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session locally",
		Long: `Sign in with email and password. When --password is omitted the password is read
from the first line of standard input.`,
		Args: cobra.NoArgs,
		RunE: runWith(opts, func(cmd *cobra.Command, a *app, _ []string) error {
			if password == "" {
				p, err := readLine(a.in)
				if err != nil {
					return fmt.Errorf("read password: %w", err)
				}
				password = p
			}
			in := forms.FromMap(map[string]string{"email": email, "password": password})
			if remember {
				in = in.Set("remember", "true")
			}

			res := a.svcs.Auth.Login(cmd.Context(), in)
			if !res.Success {
				return failure(res.Message, res.Error)
			}
			return a.printer.print(a.out, sessionView(a, res.Data))
		}),
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	cmd.Flags().BoolVar(&remember, "remember", false, "keep the session for the extended lifetime")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newLogoutCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored session",
		Args:  cobra.NoArgs,
		RunE: runWith(opts, func(cmd *cobra.Command, a *app, _ []string) error {
			id := ""
			if sess, err := a.store.Current(cmd.Context()); err == nil && sess != nil {
				id = sess.ID
			}
			res := a.svcs.Auth.Logout(cmd.Context(), id)
			if !res.Success {
				return failure(res.Message, res.Error)
			}
			_, err := fmt.Fprintln(a.out, res.Message)
			return err
		}),
	}
}

func newWhoamiCmd(opts *rootOptions) *cobra.Command {
	var refresh bool
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user and their permissions",
		Args:  cobra.NoArgs,
		RunE: runWith(opts, func(cmd *cobra.Command, a *app, _ []string) error {
			ctx := cmd.Context()
			sess, err := currentSession(ctx, a)
			if err != nil {
				return err
			}
			if refresh {
				res := a.svcs.Auth.RefreshSession(ctx, sess.ID)
				if !res.Success {
					return failure(res.Message, res.Error)
				}
				if sess, err = currentSession(ctx, a); err != nil {
					return err
				}
			}
			return a.printer.print(a.out, sessionView(a, sess))
		}),
	}
	cmd.Flags().BoolVar(&refresh, "refresh", false, "reload the profile from the content API first")
	return cmd
}

func newCanCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "can <permission>...",
		Short: "Check whether the signed-in user holds permissions",
		Long: `Check whether the signed-in user holds each named permission. Super admins hold
every permission. Exits with status 3 when any permission is missing.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runWith(opts, func(cmd *cobra.Command, a *app, args []string) error {
			sess, err := currentSession(cmd.Context(), a)
			if err != nil {
				return err
			}
			authz := a.svcs.Auth.Authorization(sess)

			rows := make([]permissionRow, 0, len(args))
			var missing []string
			for _, p := range args {
				ok := authz.HasPermission(p)
				rows = append(rows, permissionRow{Permission: p, Allowed: ok})
				if !ok {
					missing = append(missing, p)
				}
			}
			pr := a.printer.withColumns([]string{"permission", "allowed"}, nil)
			if err := pr.print(a.out, rows); err != nil {
				return err
			}
			if len(missing) > 0 {
				return exitError{code: exitDenied, msg: "missing permission: " + strings.Join(missing, ", ")}
			}
			return nil
		}),
	}
}

type permissionRow struct {
	Permission string `json:"permission"`
	Allowed    bool   `json:"allowed"`
}

// whoami is the printable summary of a session; the token is never shown.
type whoami struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	SuperAdmin  bool      `json:"super_admin"`
	Roles       []string  `json:"roles"`
	Permissions []string  `json:"permissions"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func sessionView(a *app, sess *domainauth.Session) whoami {
	authz := a.svcs.Auth.Authorization(sess)
	user, _ := authz.CurrentUser()
	name := user.FullName
	if name == "" {
		name = strings.TrimSpace(user.FirstName + " " + user.LastName)
	}
	roles := make([]string, 0, len(user.Roles))
	for _, r := range user.Roles {
		roles = append(roles, r.Name)
	}
	perms := authz.Capabilities()
	sort.Strings(perms)
	return whoami{
		ID:          user.ID,
		Name:        name,
		Email:       user.Email,
		SuperAdmin:  authz.IsSuperAdmin(),
		Roles:       roles,
		Permissions: perms,
		ExpiresAt:   sess.ExpiresAt,
	}
}

// currentSession returns the stored, unexpired session or errNotSignedIn.
func currentSession(ctx context.Context, a *app) (*domainauth.Session, error) {
	sess, err := a.store.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("read session file: %w", err)
	}
	if sess == nil {
		return nil, errNotSignedIn
	}
	return sess, nil
}

// requirePermission fails unless the stored session holds perm.
func requirePermission(ctx context.Context, a *app, perm string) error {
	sess, err := currentSession(ctx, a)
	if err != nil {
		return err
	}
	if perm != "" && !a.svcs.Auth.Authorization(sess).HasPermission(perm) {
		return exitError{code: exitDenied, msg: "insufficient permissions: " + perm + " required"}
	}
	return nil
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// failure turns a failed action result into an error listing its field messages.
func failure(message string, fields map[string][]string) error {
	if len(fields) == 0 {
		return errors.New(message)
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString(message)
	for _, k := range keys {
		fmt.Fprintf(&sb, "\n  %s: %s", k, strings.Join(fields[k], "; "))
	}
	return errors.New(sb.String())
}
