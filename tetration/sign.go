package tetration

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"net/http"
	"time"
)

// timestampLayout is the UTC timestamp form the platform verifies
// against. The offset is literal text, so the time must already be UTC.
const timestampLayout = "2006-01-02T15:04:05+0000"

// signer stamps requests with the platform's HMAC authentication
// headers. The digest covers method, request URI, body checksum,
// content type and timestamp, each terminated by a newline.
type signer struct {
	creds *Credentials
	now   func() time.Time
}

func newSigner(creds *Credentials) *signer {
	return &signer{creds: creds, now: time.Now}
}

func (s *signer) sign(req *http.Request, body []byte) {
	timestamp := s.now().UTC().Format(timestampLayout)

	var checksum string
	if len(body) > 0 {
		sum := sha256.Sum256(body)
		checksum = hex.EncodeToString(sum[:])
		req.Header.Set("X-Tetration-Cksum", checksum)
	}

	canonical := req.Method + "\n" +
		req.URL.RequestURI() + "\n" +
		checksum + "\n" +
		req.Header.Get("Content-Type") + "\n" +
		timestamp + "\n"

	mac := hmac.New(sha256.New, []byte(s.creds.APISecret))
	mac.Write([]byte(canonical))

	req.Header.Set("Id", s.creds.APIKey)
	req.Header.Set("Timestamp", timestamp)
	req.Header.Set("Authorization", base64.StdEncoding.EncodeToString(mac.Sum(nil)))
}
