// Package reserved fills the standard item template parameters a wizard host
// provides next to the macro placeholders: GUIDs, timestamps and item names.
package reserved

import (
	"fmt"
	"os"
	"os/user"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/cpcf/macrowiz/macro"
)

// GUIDCount is the number of $guidN$ keys written by Fill.
const GUIDCount = 10

const (
	KeyTime          = "$time$"
	KeyYear          = "$year$"
	KeyItemName      = "$itemname$"
	KeySafeItemName  = "$safeitemname$"
	KeyRootNamespace = "$rootnamespace$"
	KeyUserName      = "$username$"
	KeyMachineName   = "$machinename$"
)

const timeLayout = "2006-01-02 15:04:05"

// GUIDKey returns the placeholder for the n-th GUID, starting at 1.
func GUIDKey(n int) string {
	return "$guid" + strconv.Itoa(n) + "$"
}

type Options struct {
	ItemName      string
	RootNamespace string
	UserName      string
	MachineName   string
	Now           func() time.Time
	NewGUID       func() uuid.UUID
}

func (o Options) withDefaults() Options {
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.NewGUID == nil {
		o.NewGUID = uuid.New
	}
	if o.UserName == "" {
		if u, err := user.Current(); err == nil {
			o.UserName = u.Username
		}
	}
	if o.MachineName == "" {
		if host, err := os.Hostname(); err == nil {
			o.MachineName = host
		}
	}
	return o
}

// Fill writes the reserved parameters into r, overwriting existing values.
func Fill(r macro.Replacements, opts Options) {
	opts = opts.withDefaults()

	for i := 1; i <= GUIDCount; i++ {
		r[GUIDKey(i)] = opts.NewGUID().String()
	}

	now := opts.Now()
	r[KeyTime] = now.Format(timeLayout)
	r[KeyYear] = strconv.Itoa(now.Year())

	r[KeyItemName] = opts.ItemName
	r[KeySafeItemName] = SafeIdentifier(opts.ItemName)
	r[KeyRootNamespace] = opts.RootNamespace
	r[KeyUserName] = opts.UserName
	r[KeyMachineName] = opts.MachineName
}

// SafeIdentifier turns name into an identifier: characters other than
// letters, digits and '_' become '_', and a leading digit gets a '_' prefix.
// File extensions are dropped.
func SafeIdentifier(name string) string {
	if i := strings.IndexByte(name, '.'); i > 0 {
		name = name[:i]
	}

	var b strings.Builder
	for i, r := range name {
		switch {
		case unicode.IsLetter(r) || r == '_':
			b.WriteRune(r)
		case unicode.IsDigit(r):
			if i == 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// Describe lists the reserved keys with a short explanation, in a stable order.
func Describe() [][2]string {
	keys := [][2]string{
		{KeyItemName, "item name as entered"},
		{KeySafeItemName, "item name as an identifier"},
		{KeyRootNamespace, "root namespace of the project"},
		{KeyTime, "generation time (" + timeLayout + ")"},
		{KeyYear, "generation year"},
		{KeyUserName, "current user"},
		{KeyMachineName, "host name"},
	}
	for i := 1; i <= GUIDCount; i++ {
		keys = append(keys, [2]string{GUIDKey(i), fmt.Sprintf("random GUID #%d", i)})
	}
	return keys
}
