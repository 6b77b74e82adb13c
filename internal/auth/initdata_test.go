package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBotToken = "123456:ABC-DEF1234ghIkl-zyx57W2v1u123ew11"

// signInitData builds an init data string the way the Telegram client
// does: fields percent-encoded, plus a hash over the sorted decoded
// pairs.
func signInitData(botToken string, fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+fields[k])
	}
	dataCheckString := strings.Join(pairs, "\n")

	secretMac := hmac.New(sha256.New, []byte("WebAppData"))
	secretMac.Write([]byte(botToken))
	secret := secretMac.Sum(nil)

	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(dataCheckString))
	hash := hex.EncodeToString(mac.Sum(nil))

	encoded := make([]string, 0, len(keys)+1)
	for _, k := range keys {
		encoded = append(encoded, k+"="+percentEncode(fields[k]))
	}
	encoded = append(encoded, "hash="+hash)
	return strings.Join(encoded, "&")
}

// percentEncode escapes every byte outside the unreserved set, which is
// stricter than what Telegram sends but decodes identically.
func percentEncode(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		b := s[i]
		if (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9') ||
			b == '-' || b == '_' || b == '.' || b == '~' {
			sb.WriteByte(b)
		} else {
			sb.WriteString(fmt.Sprintf("%%%02X", b))
		}
	}
	return sb.String()
}

func validFields(userID int64) map[string]string {
	return map[string]string{
		"auth_date": "1693000000",
		"query_id":  "AAHdF6IQAAAAAN0XohDhrOrc",
		"user":      fmt.Sprintf(`{"id":%d,"first_name":"Анна","language_code":"ru"}`, userID),
	}
}

func TestVerifyValidInitData(t *testing.T) {
	v := NewVerifier(testBotToken)

	initData := signInitData(testBotToken, validFields(99887766))

	userID, err := v.Verify(initData)
	require.NoError(t, err)
	assert.Equal(t, int64(99887766), userID)
}

func TestVerifyTamperedHash(t *testing.T) {
	v := NewVerifier(testBotToken)

	initData := signInitData(testBotToken, validFields(42))

	// flip the last hex digit of the hash
	last := initData[len(initData)-1]
	replacement := byte('0')
	if last == '0' {
		replacement = '1'
	}
	tampered := initData[:len(initData)-1] + string(replacement)

	_, err := v.Verify(tampered)
	assert.ErrorIs(t, err, ErrInvalidInitData)
}

func TestVerifyTamperedField(t *testing.T) {
	v := NewVerifier(testBotToken)

	initData := signInitData(testBotToken, validFields(42))
	tampered := strings.Replace(initData, "auth_date=1693000000", "auth_date=1693000001", 1)

	_, err := v.Verify(tampered)
	assert.ErrorIs(t, err, ErrInvalidInitData)
}

func TestVerifyWrongBotToken(t *testing.T) {
	v := NewVerifier("999999:other-bot-token")

	initData := signInitData(testBotToken, validFields(42))

	_, err := v.Verify(initData)
	assert.ErrorIs(t, err, ErrInvalidInitData)
}

func TestVerifyRejectsMalformedPayloads(t *testing.T) {
	v := NewVerifier(testBotToken)

	cases := map[string]string{
		"empty":             "",
		"no hash":           "auth_date=1693000000&user=%7B%22id%22%3A1%7D",
		"empty hash":        "auth_date=1693000000&hash=",
		"pair without key":  "=value&hash=abc",
		"pair without eq":   "authdate&hash=abc",
		"garbage percent":   "user=%ZZ&auth_date=1&hash=abc",
		"hash only":         "hash=abc",
		"stray hash string": "hash",
	}

	for name, initData := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := v.Verify(initData)
			assert.ErrorIs(t, err, ErrInvalidInitData)
		})
	}
}

func TestVerifyRequiresUserID(t *testing.T) {
	v := NewVerifier(testBotToken)

	// correctly signed but no usable user field
	fields := map[string]string{
		"auth_date": "1693000000",
		"user":      `{"first_name":"Анна"}`,
	}
	initData := signInitData(testBotToken, fields)

	_, err := v.Verify(initData)
	assert.ErrorIs(t, err, ErrInvalidInitData)
}

func TestVerifyMissingUserField(t *testing.T) {
	v := NewVerifier(testBotToken)

	fields := map[string]string{"auth_date": "1693000000"}
	initData := signInitData(testBotToken, fields)

	_, err := v.Verify(initData)
	assert.ErrorIs(t, err, ErrInvalidInitData)
}
