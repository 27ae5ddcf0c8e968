// Package repos reconciles the provider's repository listing with the
// enablement state stored in the visitor's session.
package repos

import "github.com/jrsteele09/repo-enabler/sessions"

// PageSize caps how many repositories are shown. There is no pagination yet.
const PageSize = 5

// Summary is the part of a provider repository the app needs. FullName
// (owner/name) identifies it.
type Summary struct {
	FullName string `json:"full_name"`
}

// Page is an ordered listing of at most PageSize repositories.
type Page []Summary

// NewPage keeps the first PageSize summaries in the order given.
func NewPage(summaries []Summary) Page {
	if len(summaries) > PageSize {
		summaries = summaries[:PageSize]
	}
	page := make(Page, len(summaries))
	copy(page, summaries)
	return page
}

// ViewRepo is a repository as rendered, marked when it is the enabled one.
type ViewRepo struct {
	FullName string
	Enabled  bool
}

type ViewList []ViewRepo

// Reconcile marks the enabled repository within page. Every entry is kept,
// in provider order, whether or not enabled matches one of them.
func Reconcile(page Page, enabled string) ViewList {
	view := make(ViewList, 0, len(page))
	for _, s := range page {
		view = append(view, ViewRepo{
			FullName: s.FullName,
			Enabled:  enabled != "" && s.FullName == enabled,
		})
	}
	return view
}

// SetEnabled records fullName as the session's only enabled repository,
// replacing whatever was enabled before.
func SetEnabled(s sessions.Session, fullName string) sessions.Session {
	s.EnabledRepo = fullName
	return s
}

// Enabled returns the enabled entry of the list, if any.
func (v ViewList) Enabled() (ViewRepo, bool) {
	for _, r := range v {
		if r.Enabled {
			return r, true
		}
	}
	return ViewRepo{}, false
}
