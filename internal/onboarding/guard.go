// Package onboarding decides where a principal may navigate. The guard is a
// pure function of (principal, onboarding profile, path) so the ordering
// invariants are testable without the HTTP layer; the server middleware and
// the /navigation/decision endpoint both call into it.
package onboarding

import (
	"strings"

	authdomain "github.com/crestline/irportal/internal/auth/domain"
	investordomain "github.com/crestline/irportal/internal/investor/domain"
)

const (
	PathHome     = "/"
	PathLogin    = "/login"
	PathSignup   = "/signup"
	PathKYC      = "/investor/kyc"
	PathNDA      = "/investor/nda"
	AdminHome    = "/admin/dashboard"
	InvestorHome = "/investor/dashboard"

	adminPrefix    = "/admin"
	investorPrefix = "/investor"
	invitePrefix   = "/invite"
)

// Decision is the outcome of one guard evaluation.
type Decision struct {
	Allow    bool   `json:"allow"`
	Redirect string `json:"redirect,omitempty"`
}

func allow() Decision               { return Decision{Allow: true} }
func redirect(target string) Decision { return Decision{Redirect: target} }

// HomeFor returns the landing path for a role.
func HomeFor(role authdomain.Role) string {
	if role == authdomain.RoleAdmin {
		return AdminHome
	}
	return InvestorHome
}

// Evaluate runs the guard rules in order; the first match wins. The caller
// must have resolved the session first: a nil user means unauthenticated, it
// never means "still loading".
func Evaluate(user *authdomain.User, profile *investordomain.Profile, path string) Decision {
	path = normalize(path)

	if user == nil {
		if isPublic(path) {
			return allow()
		}
		return redirect(PathLogin)
	}

	// Authenticated users do not revisit auth entry points.
	if isAuthEntry(path) {
		return redirect(HomeFor(user.Role))
	}

	// Hard role partition: no shared pages between roles.
	if user.Role == authdomain.RoleAdmin && hasPrefix(path, investorPrefix) {
		return redirect(AdminHome)
	}
	if user.Role == authdomain.RoleInvestor && hasPrefix(path, adminPrefix) {
		return redirect(InvestorHome)
	}

	if user.Role == authdomain.RoleInvestor && hasPrefix(path, investorPrefix) {
		return gate(profile, path)
	}

	return allow()
}

// gate applies the KYC-then-NDA ordering for investor destinations. The KYC
// and NDA pages themselves are exempt so the redirect target is always
// reachable.
func gate(profile *investordomain.Profile, path string) Decision {
	if path == PathKYC || path == PathNDA {
		return allow()
	}

	// Missing profile is treated as a fresh investor.
	if profile == nil || !profile.KYCStatus.Reached() {
		return redirect(PathKYC)
	}
	if profile.NDAStatus != investordomain.NDASigned {
		return redirect(PathNDA)
	}
	return allow()
}

func isPublic(path string) bool {
	switch path {
	case PathHome, PathLogin, PathSignup:
		return true
	}
	return hasPrefix(path, invitePrefix)
}

func isAuthEntry(path string) bool {
	switch path {
	case PathLogin, PathSignup:
		return true
	}
	return hasPrefix(path, invitePrefix)
}

// hasPrefix is the single prefix matcher shared by every rule, so a path can
// never be classified as both gated and gate target.
func hasPrefix(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

func normalize(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return PathHome
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	return path
}
