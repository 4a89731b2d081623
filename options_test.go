package phpldap_test

import (
	"github.com/phpldap/phpldap"
)

func (suite *Suite) TestSetOptionProtocolVersion() {
	r := suite.Require()

	link := suite.connect()
	r.Equal(3, link.Options().ProtocolVersion)

	r.True(phpldap.SetOption(link, phpldap.OptProtocolVersion, 2))
	r.Equal(2, link.Options().ProtocolVersion)

	r.True(phpldap.SetOption(link, phpldap.OptProtocolVersion, 3))
	r.Equal(3, link.Options().ProtocolVersion)
}

func (suite *Suite) TestSetOptionBadProtocolVersion() {
	r := suite.Require()

	link := suite.connect()
	r.False(phpldap.SetOption(link, phpldap.OptProtocolVersion, 10))
	r.False(phpldap.SetOption(link, phpldap.OptProtocolVersion, 0))
	// Failed calls leave the option untouched.
	r.Equal(3, link.Options().ProtocolVersion)
}

func (suite *Suite) TestSetOptionReferrals() {
	r := suite.Require()

	link := suite.connect()
	r.False(link.Options().FollowReferrals)

	r.True(phpldap.SetOption(link, phpldap.OptReferrals, 1))
	r.True(link.Options().FollowReferrals)

	// Any value other than 1 disables following, but the call succeeds.
	r.True(phpldap.SetOption(link, phpldap.OptReferrals, 0))
	r.False(link.Options().FollowReferrals)
	r.True(phpldap.SetOption(link, phpldap.OptReferrals, 2))
	r.False(link.Options().FollowReferrals)
}

func (suite *Suite) TestSetOptionReadOnly() {
	r := suite.Require()

	link := suite.connect()
	r.False(phpldap.SetOption(link, "LDAP_DEREF_NEVER", 0))
	r.False(phpldap.SetOption(link, "LDAP_DEREF_ALWAYS", 3))
}

func (suite *Suite) TestSetOptionUnknown() {
	r := suite.Require()

	link := suite.connect()
	r.False(phpldap.SetOption(link, "LDAP_OPT_SIZELIMIT", 10))
	r.False(phpldap.SetOption(nil, phpldap.OptReferrals, 1))
}
