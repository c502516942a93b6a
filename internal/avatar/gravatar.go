package avatar

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
)

// URL derives a deterministic Gravatar URI from an email address. Pure
// transform: no network call is made. Size 200, rating pg, identicon-style
// "mm" default for addresses without a Gravatar account.
func URL(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	sum := md5.Sum([]byte(normalized))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%s?s=200&r=pg&d=mm", hex.EncodeToString(sum[:]))
}
