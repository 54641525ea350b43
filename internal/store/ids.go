package store

import (
	"crypto/rand"
	"encoding/base32"
	"strconv"
	"strings"
)

// newRandomID returns prefix-<suffix> where suffix is 8 chars of base32 (lowercase, no padding).
// 8 chars base32 ~= 40 bits (~1 trillion) of space.
func newRandomID(prefix string) (string, error) {
	var b [5]byte // 40 bits -> 8 base32 chars
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	enc := base32.StdEncoding.WithPadding(base32.NoPadding)
	suffix := strings.ToLower(enc.EncodeToString(b[:]))
	return prefix + "-" + suffix, nil
}

// NewItemID mints an item id that is not yet used anywhere in db.
func (db *DB) NewItemID() string {
	for attempt := 0; ; attempt++ {
		id, err := newRandomID("itm")
		if err != nil {
			id = "itm-" + strconv.Itoa(len(db.Items)+attempt)
		}
		if _, exists := db.FindItem(id); !exists {
			return id
		}
	}
}

// NewItemIDs mints n distinct ids that are unused in db and distinct from each other.
func (db *DB) NewItemIDs(n int) []string {
	out := make([]string, 0, n)
	taken := map[string]bool{}
	for len(out) < n {
		id := db.NewItemID()
		if taken[id] {
			continue
		}
		taken[id] = true
		out = append(out, id)
	}
	return out
}
