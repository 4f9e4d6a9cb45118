package application

import (
	"context"
	"errors"

	"ultracare-admin/internal/apiclient"
	"ultracare-admin/internal/observability/metrics"
)

var (
	// ErrNotConfirmed rejects a write the operator did not confirm.
	ErrNotConfirmed = errors.New("application: mutation not confirmed")
	// ErrSelfDisable rejects an admin disabling their own account.
	ErrSelfDisable = errors.New("application: admin cannot disable own account")
	// ErrMissingID rejects a write against a row without a backend id.
	ErrMissingID = errors.New("application: row has no id")
	// ErrDraftUnchanged rejects applying a draft equal to the committed value.
	ErrDraftUnchanged = errors.New("application: no subscription changes to save")
)

// Mutation is one operator write.
type Mutation struct {
	Action    string
	Confirmed bool
	Write     func(ctx context.Context) error
	Success   string
	Failure   string
}

// Outcome reports a mutation to the operator.
type Outcome struct {
	OK            bool
	Message       string
	LoginRedirect bool
}

// Mutate runs confirm, write, notice and refetch. A failed write leaves the
// committed rows untouched and skips the refetch. Only ErrNotConfirmed is
// returned as an error; write failures become a failure Outcome.
func Mutate[T any](ctx context.Context, c *Controller[T], m Mutation) (Outcome, error) {
	if !m.Confirmed {
		return Outcome{}, ErrNotConfirmed
	}
	if err := m.Write(ctx); err != nil {
		if apiclient.IsUnauthorized(err) {
			metrics.IncMutation(m.Action, metrics.ResultUnauthorized)
			c.redirectToLogin()
			return Outcome{LoginRedirect: true}, nil
		}
		metrics.IncMutation(m.Action, metrics.ResultError)
		c.logger.Warn().Err(err).Str("action", m.Action).Msg("mutation failed")
		return Outcome{Message: apiclient.ErrorMessage(err, m.Failure)}, nil
	}
	metrics.IncMutation(m.Action, metrics.ResultSuccess)
	c.logger.Info().Str("action", m.Action).Msg("mutation applied")

	outcome := Outcome{OK: true, Message: m.Success}
	if snapshot := c.Load(ctx); snapshot.State == StateLoginRedirect {
		outcome.LoginRedirect = true
	}
	return outcome, nil
}

var rejectionMessages = map[error]string{
	ErrSelfDisable:    "You can't disable yourself",
	ErrMissingID:      "This row has no id and cannot be changed.",
	ErrDraftUnchanged: "No subscription changes to save.",
	ErrNotConfirmed:   "Action cancelled.",
}

// Rejected builds the failure outcome for a guard error.
func Rejected(err error) Outcome {
	for target, message := range rejectionMessages {
		if errors.Is(err, target) {
			return Outcome{Message: message}
		}
	}
	return Outcome{Message: err.Error()}
}
