package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"regexp"
)

// MentionUser renders a user ID as an in-channel mention
func MentionUser(userID string) string {
	return "<@" + userID + ">"
}

// Escaped mention as Slack sends it in command text: <@U123|display name>
var mentionPattern = regexp.MustCompile(`^<@([A-Z0-9]+)(?:\|[^>]*)?>$`)

// ParseMention extracts the user ID from an escaped mention token
func ParseMention(text string) (string, bool) {
	m := mentionPattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// VerifySignature checks a Slack v0 request signature: HMAC-SHA256 of
// "v0:<timestamp>:<body>" keyed with the signing secret
func VerifySignature(signingSecret, timestamp, body, signature string) bool {
	mac := hmac.New(sha256.New, []byte(signingSecret))
	mac.Write([]byte("v0:" + timestamp + ":" + body))
	expected := "v0=" + hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
