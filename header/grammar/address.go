package grammar

import (
	"strings"

	"github.com/zostay/go-addr/pkg/addr"
)

// AddressList is a list of addresses from an address field like To or From.
type AddressList struct {
	node
	raw  string
	list addr.AddressList
}

// Addresses returns the parsed addresses.
func (a *AddressList) Addresses() addr.AddressList {
	return a.list
}

// Raw returns the value the tree was parsed from.
func (a *AddressList) Raw() string {
	return a.raw
}

// String returns the addresses formatted as a comma-separated list.
func (a *AddressList) String() string {
	if len(a.list) == 0 {
		return ""
	}
	return a.list.String()
}

// ParseAddressList parses an address-list. A strict RFC 5322 parse is tried
// first. If that fails, a very lenient parse is used instead and an
// InvalidHeaderDefect records why the strict parse failed. The lenient parse
// returns something for any input, though the result can only be described
// as "weird" for some of them.
func ParseAddressList(value string) *AddressList {
	a := &AddressList{raw: value}
	if strings.TrimSpace(value) == "" {
		a.addDefect(newDefect(MissingValueDefect, "expected address-list but found nothing"))
		return a
	}

	al, err := addr.ParseEmailAddressList(value)
	if err != nil {
		a.addDefect(newDefect(InvalidHeaderDefect, "address-list could not be parsed strictly: %v", err))
		al = parseLenientAddressList(value)
	}

	a.list = al
	return a
}

// ParseSingleAddress parses a field that must hold exactly one address, such
// as Sender. Any other number of addresses is an InvalidHeaderDefect.
func ParseSingleAddress(value string) *AddressList {
	a := ParseAddressList(value)
	if n := len(a.list); n > 1 {
		a.addDefect(newDefect(InvalidHeaderDefect, "expected a single address but found %d", n))
	}
	return a
}

// parseLenientAddressList is the fallback for address parsing. The strict
// parser is what you want for validating input, but when working with the mess
// that is the Internet, you want something useful even when it is technically
// wrong.
//
// It works as follows:
//
// 1. Split the string up by commas.
// 2. Strip and hold the comments of each piece.
// 3. Treat all the words before the last as the display name.
// 4. Treat the last word as the email address, minus any angle brackets.
//
// Groups are assumed never to happen.
func parseLenientAddressList(v string) addr.AddressList {
	extractComments := func(s string) (string, string) {
		var clean, comment strings.Builder
		nestLevel := 0
		for _, c := range s {
			switch {
			case c == '(':
				nestLevel++
				if nestLevel > 1 {
					comment.WriteRune(c)
				}
			case c == ')':
				nestLevel--
				switch {
				case nestLevel == 0:
				case nestLevel < 0:
					nestLevel = 0
					clean.WriteRune(c)
				default:
					comment.WriteRune(c)
				}
			case nestLevel > 0:
				comment.WriteRune(c)
			default:
				clean.WriteRune(c)
			}
		}

		return clean.String(), comment.String()
	}

	mbs := strings.Split(v, ",")
	as := make(addr.AddressList, 0, len(mbs))
	for _, orig := range mbs {
		mb, com := extractComments(orig)
		com = strings.TrimSpace(com)

		parts := strings.Fields(mb)
		if len(parts) == 0 {
			continue
		}

		dn := strings.Trim(strings.Join(parts[:len(parts)-1], " "), `"`)
		email := strings.Trim(parts[len(parts)-1], "<>")
		if email == "" {
			continue
		}

		var addrSpec *addr.AddrSpec
		if i := strings.LastIndex(email, "@"); i > -1 {
			addrSpec = addr.NewAddrSpecParsed(email[:i], email[i+1:], email)
		} else {
			addrSpec = addr.NewAddrSpecParsed(email, "", email)
		}

		mailbox, err := addr.NewMailboxParsed(dn, addrSpec, com, orig)
		if err != nil {
			mailbox, _ = addr.NewMailboxParsed(dn, addrSpec, "", orig)
		}

		as = append(as, mailbox)
	}

	return as
}
