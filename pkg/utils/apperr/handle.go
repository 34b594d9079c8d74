package apperr

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// Handle logs an error that cannot be returned to a caller. Values attached with
// goerr.V are flattened into the log record.
func Handle(ctx context.Context, err error) {
	if err == nil {
		return
	}

	attrs := []any{"error", err.Error()}
	if gerr := goerr.Unwrap(err); gerr != nil {
		for k, v := range gerr.Values() {
			attrs = append(attrs, k, v)
		}
	}
	ctxlog.From(ctx).Error("application error", attrs...)
}
