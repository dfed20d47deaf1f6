package service

import (
	"errors"
	"log/slog"

	"github.com/phrazzld/jobmatch-api/internal/domain"
	"github.com/phrazzld/jobmatch-api/internal/redact"
	"github.com/phrazzld/jobmatch-api/internal/store"
)

// Generic client-facing details.
const (
	MsgDatabaseConflict = "Database conflict occurred"
	MsgInvalidReference = "Referenced entity does not exist"
	MsgUnexpected       = "An unexpected error occurred"
)

// Translate converts a store or validation error into a *domain.Error.
// Errors that already carry a kind pass through unchanged; store sentinels
// map to NotFound, Conflict or BadRequest; anything else is Internal and is
// logged with its redacted cause.
func Translate(log *slog.Logger, err error, notFoundDetail string) error {
	if err == nil {
		return nil
	}

	var de *domain.Error
	if errors.As(err, &de) {
		return de
	}

	switch {
	case store.IsNotFoundError(err):
		return &domain.Error{Kind: domain.KindNotFound, Detail: notFoundDetail, Err: err}
	case store.IsDuplicateError(err):
		return &domain.Error{Kind: domain.KindConflict, Detail: MsgDatabaseConflict, Err: err}
	case errors.Is(err, store.ErrInvalidEntity):
		return &domain.Error{Kind: domain.KindBadRequest, Detail: MsgInvalidReference, Err: err}
	}

	if log != nil {
		log.Error("unexpected service error", redact.ErrorAttr(err))
	}
	return domain.Internal(MsgUnexpected, err)
}
