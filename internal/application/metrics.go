package application

import "expvar"

// Counters served on /api/debug/vars.
var (
	skillsAdded    = expvar.NewInt("skills_added")
	skillsDeleted  = expvar.NewInt("skills_deleted")
	passwordResets = expvar.NewInt("password_resets")
	contactsQueued = expvar.NewInt("contact_emails_queued")
)
