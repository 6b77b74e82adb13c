// Package auth verifies Telegram Mini App init data: the signed payload
// the Telegram client hands to the web app, which is the only identity
// claim the backend trusts.
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/url"
	"sort"
	"strings"
)

// ErrInvalidInitData is returned for any verification failure. Callers
// must not learn which check failed.
var ErrInvalidInitData = errors.New("invalid init data")

type initDataUser struct {
	ID int64 `json:"id"`
}

// Verifier checks init data signatures against a secret derived from
// the bot token.
type Verifier struct {
	secret []byte
}

// NewVerifier derives the per-bot secret key: HMAC-SHA256 of the bot
// token keyed with the fixed string "WebAppData".
func NewVerifier(botToken string) *Verifier {
	mac := hmac.New(sha256.New, []byte("WebAppData"))
	mac.Write([]byte(botToken))
	return &Verifier{secret: mac.Sum(nil)}
}

// Verify checks the signature of a raw init data string and returns the
// embedded Telegram user ID. The payload is query-string shaped:
// &-separated key=value pairs, one of which is the hash to check.
//
// The data-check-string is every field except hash, sorted by key, with
// values percent-decoded, joined by newlines as "key=value". Its
// HMAC-SHA256 under the derived secret must equal the supplied hash.
func (v *Verifier) Verify(initData string) (int64, error) {
	if initData == "" {
		return 0, ErrInvalidInitData
	}

	fields := make(map[string]string)
	for _, pair := range strings.Split(initData, "&") {
		idx := strings.IndexByte(pair, '=')
		if idx <= 0 {
			return 0, ErrInvalidInitData
		}
		fields[pair[:idx]] = pair[idx+1:]
	}

	receivedHash, ok := fields["hash"]
	if !ok || receivedHash == "" {
		return 0, ErrInvalidInitData
	}
	delete(fields, "hash")

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for i, k := range keys {
		decoded, err := url.PathUnescape(fields[k])
		if err != nil {
			return 0, ErrInvalidInitData
		}
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(decoded)
	}

	mac := hmac.New(sha256.New, v.secret)
	mac.Write([]byte(sb.String()))
	calculated := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(calculated), []byte(receivedHash)) {
		return 0, ErrInvalidInitData
	}

	userJSON, err := url.PathUnescape(fields["user"])
	if err != nil {
		return 0, ErrInvalidInitData
	}
	var user initDataUser
	if err := json.Unmarshal([]byte(userJSON), &user); err != nil {
		return 0, ErrInvalidInitData
	}
	if user.ID == 0 {
		return 0, ErrInvalidInitData
	}
	return user.ID, nil
}
