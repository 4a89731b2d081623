package phpldap_test

import (
	"github.com/phpldap/phpldap"
	"github.com/phpldap/phpldap/ldaptest"
)

func (suite *Suite) TestAnonymousBind() {
	r := suite.Require()

	link := suite.connect()
	r.True(phpldap.Bind(link, "", ""))
	r.True(link.Bound())
	r.True(phpldap.Unbind(link))
}

func (suite *Suite) TestAnonymousBindIgnoresPassword() {
	r := suite.Require()

	// PHP attempts the anonymous bind whatever the password contains.
	link := suite.connect()
	r.True(phpldap.Bind(link, "", "whatever"))
	r.True(phpldap.Unbind(link))
}

func (suite *Suite) TestAuthenticatedBind() {
	r := suite.Require()

	link := suite.connect()
	r.True(phpldap.Bind(link, ldaptest.ManagerDN, ldaptest.ManagerPassword))
	r.True(phpldap.Unbind(link))
}

func (suite *Suite) TestBadPasswordBind() {
	r := suite.Require()

	link := suite.connect()
	r.False(phpldap.Bind(link, ldaptest.ManagerDN, "s3kr1t"))
	r.False(link.Bound())
}

func (suite *Suite) TestPasswordlessBind() {
	r := suite.Require()

	// A DN without a password must fail before any network traffic, in
	// case the server would grant it an anonymous bind.
	before := len(suite.srv.BindAttempts())
	link := suite.connect()
	r.False(phpldap.Bind(link, "cn=foo,"+ldaptest.BaseDN, ""))
	r.Len(suite.srv.BindAttempts(), before)
}

func (suite *Suite) TestBindNilSession() {
	r := suite.Require()

	r.False(phpldap.Bind(nil, "", ""))
}

func (suite *Suite) TestBindUnreachableServer() {
	r := suite.Require()

	link := phpldap.Connect("127.0.0.1", 1)
	r.False(phpldap.Bind(link, "", ""))
	r.False(link.Bound())
}

func (suite *Suite) TestRebindReplacesContext() {
	r := suite.Require()

	link := suite.bind()
	r.True(phpldap.Bind(link, ldaptest.ManagerDN, ldaptest.ManagerPassword))
	r.True(link.Bound())
	r.True(phpldap.Unbind(link))
}

func (suite *Suite) TestFailedRebindUnbinds() {
	r := suite.Require()

	link := suite.bind()
	r.False(phpldap.Bind(link, ldaptest.ManagerDN, "wrong"))
	r.False(link.Bound())
	r.False(phpldap.Unbind(link))
}

func (suite *Suite) TestUnbindUnbound() {
	r := suite.Require()

	link := suite.connect()
	r.False(phpldap.Unbind(link))
	// Idempotent no-op.
	r.False(phpldap.Unbind(link))
}

func (suite *Suite) TestUnbindNilSession() {
	r := suite.Require()

	r.False(phpldap.Unbind(nil))
}

func (suite *Suite) TestUnbindTwice() {
	r := suite.Require()

	link := suite.bind()
	r.True(phpldap.Unbind(link))
	r.False(phpldap.Unbind(link))
}
