package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/mail"
	"regexp"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	twilio "github.com/twilio/twilio-go"
	twilioclient "github.com/twilio/twilio-go/client"
	lookupsv2 "github.com/twilio/twilio-go/rest/lookups/v2"
)

// -----------------------------------------------------------------------
// 1) PHONE NUMBER VALIDATION
// -----------------------------------------------------------------------

var e164Regex = regexp.MustCompile(`^\+[1-9]\d{7,14}$`) // ITU-T E.164

// IsE164 reports basic E.164 compliance.
func IsE164(number string) bool { return e164Regex.MatchString(number) }

// ValidatePhoneNumber validates `number`.
//
//   - If validateWithTwilio == true and a non-nil Twilio RestClient is
//     provided, a Twilio Lookups V2 fetch (free basic tier) is performed.
//   - Otherwise only the E.164 syntax check runs.
func ValidatePhoneNumber(
	ctx context.Context,
	number string,
	validateWithTwilio bool,
	tw *twilio.RestClient,
) (bool, error) {
	if !IsE164(number) {
		return false, nil
	}

	if validateWithTwilio && tw != nil {
		params := &lookupsv2.FetchPhoneNumberParams{}
		_, err := tw.LookupsV2.FetchPhoneNumber(number, params)
		if err == nil {
			return true, nil
		}

		if restErr, ok := err.(*twilioclient.TwilioRestError); ok {
			if restErr.Status == 404 { // unable to find that phone number
				return false, nil
			}
			return false, fmt.Errorf("twilio lookup failed: %d %s",
				restErr.Status, restErr.Error())
		}
		return false, err
	}

	return true, nil
}

// -----------------------------------------------------------------------
// 2) EMAIL VALIDATION
// -----------------------------------------------------------------------

// isValidEmailSyntax does RFC-5322-ish syntax only (no DNS).
func isValidEmailSyntax(e string) bool {
	_, err := mail.ParseAddress(e)
	return err == nil
}

func hasMX(ctx context.Context, domain string) bool {
	mx, err := net.DefaultResolver.LookupMX(ctx, domain)
	return err == nil && len(mx) > 0
}

// ValidateEmail validates `email`.
//
//   - If validateWithSendGrid == true, the domain's MX record is checked
//     and the SendGrid deliverability verdict must be "valid" or "risky".
//     Any SendGrid/network error is returned so the caller can decide.
//   - Otherwise only the syntax check runs (no DNS, no network).
func ValidateEmail(ctx context.Context, apiKey string, email string, validateWithSendGrid bool) (bool, error) {
	if !isValidEmailSyntax(email) {
		return false, nil
	}

	parts := strings.SplitN(email, "@", 2)
	if len(parts) != 2 {
		return false, nil
	}

	if validateWithSendGrid {
		if !hasMX(ctx, parts[1]) {
			return false, nil
		}

		req := sendgrid.GetRequest(apiKey, "/v3/validations/email", "https://api.sendgrid.com")
		req.Method = "POST"
		req.Body = []byte(fmt.Sprintf(`{"email":"%s"}`, email))

		resp, err := sendgrid.API(req)
		if err != nil {
			return false, err
		}

		switch resp.StatusCode {
		case 200:
			var sg struct {
				Result struct {
					Verdict string `json:"verdict"`
				} `json:"result"`
			}
			if jsonErr := json.Unmarshal([]byte(resp.Body), &sg); jsonErr != nil {
				return false, fmt.Errorf("sendgrid JSON decode: %w", jsonErr)
			}
			verdict := strings.ToLower(sg.Result.Verdict)
			return verdict == "valid" || verdict == "risky", nil

		case 400: // SendGrid treats syntactically bad addresses as 400
			return false, nil
		default:
			return false, fmt.Errorf("sendgrid validation failed: status %d – %s", resp.StatusCode, resp.Body)
		}
	}

	return true, nil
}
