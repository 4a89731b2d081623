package phpldap

import "log/slog"

// Option names accepted by SetOption, as PHP spells them.
const (
	OptProtocolVersion = "LDAP_OPT_PROTOCOL_VERSION"
	OptReferrals       = "LDAP_OPT_REFERRALS"
)

// Options holds the mutable tunables of one session. PHP exposed these as
// process-wide constants; keeping them on the session avoids the data race
// and gives ldap_set_option's link argument a meaning.
type Options struct {
	// ProtocolVersion is 2 or 3. go-ldap only speaks version 3 on the
	// wire; the knob is recorded for compatibility and logged at bind.
	ProtocolVersion int
	// FollowReferrals asks the server to be followed on referrals.
	FollowReferrals bool
}

func defaultOptions() Options {
	return Options{ProtocolVersion: 3}
}

func (o *Options) set(name string, value int) bool {
	switch name {
	case OptProtocolVersion:
		if value != 2 && value != 3 {
			slog.Debug("Rejecting protocol version.", "value", value)
			return false
		}
		o.ProtocolVersion = value
		return true
	case OptReferrals:
		// PHP follows referrals iff the value is exactly 1.
		o.FollowReferrals = value == 1
		return true
	}
	// Unknown options and the read-only LDAP_DEREF_* constants.
	slog.Debug("Rejecting unknown option.", "option", name)
	return false
}
