package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Vallabhkejgir/Location-Tracker/pkg/logger"
)

const defaultBaseURL = "https://api.twilio.com"

// TwilioDialer places a voice call through the Twilio REST API. The call
// plays the TwiML document at twimlURL to the configured number.
type TwilioDialer struct {
	httpClient *http.Client
	baseURL    string
	accountSID string
	authToken  string
	fromNumber string
	toNumber   string
	twimlURL   string
}

func NewTwilioDialer(accountSID, authToken, fromNumber, toNumber, twimlURL, baseURL string) *TwilioDialer {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &TwilioDialer{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
		accountSID: accountSID,
		authToken:  authToken,
		fromNumber: fromNumber,
		toNumber:   toNumber,
		twimlURL:   twimlURL,
	}
}

// PlaceCall creates the outbound call. Best effort: the caller decides what
// to do with the error, typically log and move on.
func (d *TwilioDialer) PlaceCall(ctx context.Context) error {
	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Calls.json", d.baseURL, d.accountSID)
	form := url.Values{}
	form.Set("To", d.toNumber)
	form.Set("From", d.fromNumber)
	form.Set("Url", d.twimlURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(d.accountSID, d.authToken)

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("twilio call request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("twilio call endpoint returned %d: %s", resp.StatusCode, string(b))
	}
	logger.Infof("placed arrival call to %s", d.toNumber)
	return nil
}

// NoopDialer stands in when Twilio credentials are not configured; calls are
// skipped with a log line instead of failing tracking requests.
type NoopDialer struct{}

func (NoopDialer) PlaceCall(ctx context.Context) error {
	logger.Warnf("twilio not configured; skipping arrival call")
	return nil
}
