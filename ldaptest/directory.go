package ldaptest

import "github.com/nmcclain/ldap"

// directory builds the served entries. Sally carries eleven attributes,
// one of them multi-valued, which search tests lean on.
func directory() []*ldap.Entry {
	return []*ldap.Entry{
		{
			DN: BaseDN,
			Attributes: []*ldap.EntryAttribute{
				{Name: "objectClass", Values: []string{"dcObject", "organization"}},
				{Name: "dc", Values: []string{"example"}},
				{Name: "o", Values: []string{"Example Org"}},
			},
		},
		{
			DN: PeopleDN,
			Attributes: []*ldap.EntryAttribute{
				{Name: "objectClass", Values: []string{"organizationalUnit"}},
				{Name: "ou", Values: []string{"People"}},
			},
		},
		{
			DN: SallyDN,
			Attributes: []*ldap.EntryAttribute{
				{Name: "objectClass", Values: []string{"posixAccount", "inetOrgPerson"}},
				{Name: "uid", Values: []string{"sally"}},
				{Name: "cn", Values: []string{"Sally Jones"}},
				{Name: "sn", Values: []string{"Jones"}},
				{Name: "givenName", Values: []string{"Sally"}},
				{Name: "uidNumber", Values: []string{"5001"}},
				{Name: "gidNumber", Values: []string{"5000"}},
				{Name: "homeDirectory", Values: []string{"/home/sally"}},
				{Name: "loginShell", Values: []string{"/bin/tcsh"}},
				{Name: "mail", Values: []string{"sally@example.com", "sjones@example.com"}},
				{Name: "gecos", Values: []string{"Sally Jones"}},
			},
		},
		{
			DN: "uid=bob,ou=People,dc=example,dc=com",
			Attributes: []*ldap.EntryAttribute{
				{Name: "objectClass", Values: []string{"posixAccount"}},
				{Name: "uid", Values: []string{"bob"}},
				{Name: "cn", Values: []string{"Bob Smith"}},
				{Name: "sn", Values: []string{"Smith"}},
				{Name: "uidNumber", Values: []string{"5002"}},
				{Name: "gidNumber", Values: []string{"5000"}},
				{Name: "homeDirectory", Values: []string{"/home/bob"}},
				{Name: "loginShell", Values: []string{"/bin/sh"}},
				{Name: "mail", Values: []string{"bob@example.com"}},
			},
		},
		{
			DN: GroupsDN,
			Attributes: []*ldap.EntryAttribute{
				{Name: "objectClass", Values: []string{"organizationalUnit"}},
				{Name: "ou", Values: []string{"Groups"}},
			},
		},
		{
			DN: "cn=admins,ou=Groups,dc=example,dc=com",
			Attributes: []*ldap.EntryAttribute{
				{Name: "objectClass", Values: []string{"groupOfUniqueNames"}},
				{Name: "cn", Values: []string{"admins"}},
				{Name: "uniqueMember", Values: []string{SallyDN, ManagerDN}},
			},
		},
	}
}
