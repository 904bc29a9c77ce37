package okx

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strings"
	"time"

	"github.com/samvad-hq/prettyrest/pkg/rest"
)

const (
	headerAccessKey        = "OK-ACCESS-KEY"
	headerAccessSign       = "OK-ACCESS-SIGN"
	headerAccessTimestamp  = "OK-ACCESS-TIMESTAMP"
	headerAccessPassphrase = "OK-ACCESS-PASSPHRASE"
	headerSimulated        = "x-simulated-trading"

	timestampLayout = "2006-01-02T15:04:05.000Z"
)

// Credentials are the API key triple issued by OKX.
type Credentials struct {
	APIKey     string
	SecretKey  string
	Passphrase string
}

// Complete reports whether all three parts are present.
func (c Credentials) Complete() bool {
	return strings.TrimSpace(c.APIKey) != "" &&
		strings.TrimSpace(c.SecretKey) != "" &&
		strings.TrimSpace(c.Passphrase) != ""
}

// Sign returns base64(HMAC-SHA256(secret, timestamp+method+requestPath+body)).
func Sign(secret, timestamp, method, requestPath, body string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp + method + requestPath + body))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// SignHook sets the JSON content type on every call, the demo-trading flag when
// simulated, and the OK-ACCESS-* headers when creds are complete. now may be nil.
func SignHook(creds Credentials, simulated bool, now func() time.Time) rest.HeaderHook {
	if now == nil {
		now = time.Now
	}
	return func(b *rest.HeaderBuilder) error {
		if err := b.ContentType("application/json"); err != nil {
			return err
		}
		if simulated {
			if err := b.Set(headerSimulated, "1"); err != nil {
				return err
			}
		}
		if !creds.Complete() {
			return nil
		}

		ts := now().UTC().Format(timestampLayout)
		sig := Sign(creds.SecretKey, ts, b.Method().String(), b.URL().RequestURI(), b.Body())

		for _, kv := range [][2]string{
			{headerAccessKey, creds.APIKey},
			{headerAccessSign, sig},
			{headerAccessTimestamp, ts},
			{headerAccessPassphrase, creds.Passphrase},
		} {
			if err := b.Set(kv[0], kv[1]); err != nil {
				return err
			}
		}
		return nil
	}
}
