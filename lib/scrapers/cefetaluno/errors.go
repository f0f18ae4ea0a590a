package cefetaluno

import "errors"

var (
	// ErrCpaBlocked means the portal is diverting logins to the CPA
	// survey system. Not retryable until the survey period ends or the
	// student validates their id there.
	ErrCpaBlocked = errors.New("login diverted to the CPA survey system")

	// ErrMissingIdentity means an authenticated page lacked the
	// enrollment id. That signals upstream markup drift, not bad
	// credentials, so retrying the same submission is pointless.
	ErrMissingIdentity = errors.New("authenticated page is missing the enrollment id")

	// ErrTransientUpstream means login looked clean but the portal
	// never issued a session cookie, even after retrying. Safe to try
	// again later.
	ErrTransientUpstream = errors.New("portal did not issue a session cookie")
)

// InvalidCredentialsError carries the portal's own rejection message,
// scraped from the notification script of the login response.
type InvalidCredentialsError struct {
	Message string
}

func (e *InvalidCredentialsError) Error() string {
	return e.Message
}

// CpaManualError means the automated CPA handshake could not finish and
// the student has to fill the survey by hand at CpaUrl.
type CpaManualError struct {
	Reason string
	CpaUrl string
}

func (e *CpaManualError) Error() string {
	return e.Reason
}
