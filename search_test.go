package phpldap_test

import (
	"github.com/phpldap/phpldap"
	"github.com/phpldap/phpldap/ldaptest"
)

func (suite *Suite) TestSearchUnboundSession() {
	r := suite.Require()

	link := suite.connect()
	result := phpldap.Search(link, ldaptest.PeopleDN, "(uid=sally)", nil, false, 0, 0, phpldap.DerefNever)
	r.Nil(result)
}

func (suite *Suite) TestSearchNilSession() {
	r := suite.Require()

	r.Nil(phpldap.Search(nil, ldaptest.PeopleDN, "(uid=sally)", nil, false, 0, 0, phpldap.DerefNever))
	r.Nil(phpldap.Read(nil, ldaptest.PeopleDN, "(uid=sally)", nil, false, 0, 0, phpldap.DerefNever))
}

func (suite *Suite) TestSearchSally() {
	r := suite.Require()

	link := suite.bind()
	defer phpldap.Unbind(link)

	// PHP accepts the filter without its outer parenthesises.
	result := phpldap.Search(link, ldaptest.PeopleDN, "uid=sally", nil, false, 0, 0, phpldap.DerefNever)
	r.NotNil(result)

	entries := phpldap.GetEntries(link, result)
	r.NotNil(entries)
	r.Equal(1, entries.Count)

	sally := entries.Entry(0)
	r.Equal(ldaptest.SallyDN, sally.DN)
	r.Equal(11, sally.Count)
	r.Equal("objectclass", sally.Name(0))

	shell := sally.Attr("loginshell")
	r.Equal(1, shell.Count)
	r.Equal("/bin/tcsh", shell.Value(0))
	// Lookup matches any case.
	r.Equal(shell, sally.Attr("loginShell"))

	r.Equal(2, sally.Attr("mail").Count)

	// A non-existent attribute reads as zero values, not a fault.
	r.Equal(0, sally.Attr("foo").Count)
	r.Equal("", sally.Attr("foo").Value(0))
}

func (suite *Suite) TestSearchNoMatch() {
	r := suite.Require()

	link := suite.bind()
	defer phpldap.Unbind(link)

	result := phpldap.Search(link, ldaptest.PeopleDN, "(uid=fred)", nil, false, 0, 0, phpldap.DerefNever)
	r.NotNil(result)

	entries := phpldap.GetEntries(link, result)
	r.NotNil(entries)
	r.Equal(0, entries.Count)
}

func (suite *Suite) TestSearchExplicitAttributes() {
	r := suite.Require()

	link := suite.bind()
	defer phpldap.Unbind(link)

	result := phpldap.Search(link, ldaptest.PeopleDN, "(uid=sally)", []string{"mail"}, false, 0, 0, phpldap.DerefNever)
	entries := phpldap.GetEntries(link, result)
	r.Equal(1, entries.Count)

	sally := entries.Entry(0)
	// The DN comes back even though the caller did not ask for it.
	r.Equal(ldaptest.SallyDN, sally.DN)
	r.Equal(1, sally.Count)
	r.Equal("mail", sally.Name(0))
	r.Equal(2, sally.Attr("mail").Count)
}

func (suite *Suite) TestSearchAttrsOnly() {
	r := suite.Require()

	link := suite.bind()
	defer phpldap.Unbind(link)

	result := phpldap.Search(link, ldaptest.PeopleDN, "(uid=sally)", nil, true, 0, 0, phpldap.DerefNever)
	entries := phpldap.GetEntries(link, result)
	r.Equal(1, entries.Count)

	sally := entries.Entry(0)
	r.Equal(11, sally.Count)
	for _, name := range sally.Names {
		r.Equal(0, sally.Attr(name).Count, name)
		r.Empty(sally.Attr(name).Vals, name)
	}
}

func (suite *Suite) TestSearchSubtreeScope() {
	r := suite.Require()

	link := suite.bind()
	defer phpldap.Unbind(link)

	result := phpldap.Search(link, ldaptest.PeopleDN, "(objectclass=*)", nil, false, 0, 0, phpldap.DerefNever)
	entries := phpldap.GetEntries(link, result)
	// The organizational unit itself plus sally and bob.
	r.Equal(3, entries.Count)
}

func (suite *Suite) TestReadBaseScope() {
	r := suite.Require()

	link := suite.bind()
	defer phpldap.Unbind(link)

	result := phpldap.Read(link, ldaptest.PeopleDN, "(objectclass=*)", nil, false, 0, 0, phpldap.DerefNever)
	entries := phpldap.GetEntries(link, result)
	r.Equal(1, entries.Count)
	r.Equal(ldaptest.PeopleDN, entries.Entry(0).DN)
}

func (suite *Suite) TestSearchOneLevelScope() {
	r := suite.Require()

	link := suite.bind()
	defer phpldap.Unbind(link)

	result := link.Search(ldaptest.BaseDN, "(objectclass=*)", nil, false, 0, 0, phpldap.DerefNever, phpldap.ScopeOne)
	entries := phpldap.GetEntries(link, result)
	r.Equal(2, entries.Count)
}

func (suite *Suite) TestSearchGroups() {
	r := suite.Require()

	// Make sure searching fails right away when not bound.
	link := suite.connect()
	result := phpldap.Search(link, ldaptest.GroupsDN, "objectClass=groupOfUniqueNames", nil, false, 0, 0, phpldap.DerefNever)
	r.Nil(result)

	r.True(phpldap.Bind(link, "", ""))
	defer phpldap.Unbind(link)
	result = phpldap.Search(link, ldaptest.GroupsDN, "objectClass=groupOfUniqueNames", nil, false, 0, 0, phpldap.DerefNever)
	r.NotNil(result)
	entries := phpldap.GetEntries(link, result)
	r.Equal(1, entries.Count)
	r.Equal(2, entries.Entry(0).Attr("uniquemember").Count)
}

func (suite *Suite) TestSearchSizeLimit() {
	r := suite.Require()

	link := suite.bind()
	defer phpldap.Unbind(link)

	result := phpldap.Search(link, ldaptest.PeopleDN, "(objectclass=*)", nil, false, 1, 0, phpldap.DerefNever)
	entries := phpldap.GetEntries(link, result)
	r.Equal(1, entries.Count)
}

func (suite *Suite) TestGetEntriesNilResult() {
	r := suite.Require()

	link := suite.bind()
	defer phpldap.Unbind(link)

	r.Nil(phpldap.GetEntries(link, nil))
	r.Nil(phpldap.GetEntries(nil, nil))
}
